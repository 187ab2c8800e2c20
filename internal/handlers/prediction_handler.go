package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"airquality-service/internal/logging"
	"airquality-service/internal/metrics"
	"airquality-service/internal/models"
	"airquality-service/internal/services"
)

// PredictionHandler exposes the batch prediction pipeline over HTTP.
type PredictionHandler struct {
	Service *services.PredictionService
	Metrics *metrics.Metrics
}

// NewPredictionHandler creates a PredictionHandler with the given service and metrics.
func NewPredictionHandler(service *services.PredictionService, m *metrics.Metrics) *PredictionHandler {
	return &PredictionHandler{Service: service, Metrics: m}
}

// PredictAirQuality handles POST /predict to estimate pollutant levels for a batch of coordinates.
// @Summary Predict air pollutant concentrations
// @Description Accepts a list of Latitude/Longitude pairs and returns the predicted concentrations of PM2.5, PM10, O3, NO2, CO and SO2 for each location, in input order
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body models.PredictBatchRequest true "Batch of locations"
// @Success 200 {array} models.PollutantEstimate "One estimate per input location"
// @Failure 400 {object} map[string]interface{} "Malformed request body"
// @Failure 422 {object} map[string]interface{} "Missing or non-finite coordinate field"
// @Failure 500 {object} map[string]interface{} "Inference or internal error"
// @Router /predict [post]
func (h *PredictionHandler) PredictAirQuality(c *fiber.Ctx) error {
	log := logging.GetLogger()
	reqID := uuid.New().String()
	c.Set("X-Request-ID", reqID)

	var req models.PredictBatchRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warnf("request %s: invalid body: %v", reqID, err)
		h.Metrics.RecordOutcome("validation_error")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body: " + err.Error(),
		})
	}

	start := time.Now()
	estimates, err := h.Service.PredictBatch(req.Locations)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			h.Metrics.RecordOutcome("validation_error")
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": true, "message": verr.Error(), "index": verr.Index, "field": verr.Field,
			})
		}
		log.Errorf("request %s: prediction failed: %v", reqID, err)
		h.Metrics.RecordOutcome("inference_error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	h.Metrics.RecordOutcome("ok")
	h.Metrics.ObserveBatchSize(len(req.Locations))
	h.Metrics.ObserveLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	log.Infof("request %s: predicted %d locations in %s", reqID, len(estimates), time.Since(start))
	return c.JSON(estimates)
}
