package services

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"airquality-service/internal/inference"
	"airquality-service/internal/logging"
	"airquality-service/internal/models"
)

// Input column order is fixed; it must match the feature order the
// artifact was trained with.
const (
	FeatureLatitude  = "Latitude"
	FeatureLongitude = "Longitude"
)

const pollutantCount = 6

// Predictor is the narrow capability the pipeline needs from the loaded
// model. *inference.Handle satisfies it.
type Predictor interface {
	Predict(f inference.Frame) ([][]float64, error)
}

// ValidationError reports a request element that fails the input schema.
// The handler maps it to a client error.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("locations[%d].%s %s", e.Index, e.Field, e.Reason)
}

// PredictionService adapts between the batch request/response shape and the
// model's tabular contract. It is stateless; one instance serves all
// requests concurrently.
type PredictionService struct {
	predictor Predictor
}

// NewPredictionService creates a PredictionService backed by the given model.
func NewPredictionService(predictor Predictor) *PredictionService {
	return &PredictionService{predictor: predictor}
}

// PredictBatch validates the batch, assembles the input frame, invokes the
// model and maps the output matrix back to pollutant estimates. The output
// has the same length and order as the input. Validation is all-or-nothing:
// the first invalid element fails the batch before the model is invoked.
func (s *PredictionService) PredictBatch(locations []models.LocationInput) ([]models.PollutantEstimate, error) {
	log := logging.GetLogger()

	for i, loc := range locations {
		if verr := validateLocation(i, loc); verr != nil {
			log.Warnf("rejecting prediction batch: %v", verr)
			return nil, verr
		}
	}

	// Some regressors reject zero-row input, so an empty batch never reaches
	// the model.
	if len(locations) == 0 {
		return []models.PollutantEstimate{}, nil
	}

	rows := make([][]float64, len(locations))
	for i, loc := range locations {
		rows[i] = []float64{*loc.Latitude, *loc.Longitude}
	}
	frame := inference.Frame{
		Columns: []string{FeatureLatitude, FeatureLongitude},
		Rows:    rows,
	}
	if len(frame.Columns) != 2 || frame.Columns[0] != FeatureLatitude || frame.Columns[1] != FeatureLongitude {
		// Unreachable with the assembly above; a deviation is a bug, not bad input.
		log.Errorf("assembled frame columns deviate from (%s, %s): %v", FeatureLatitude, FeatureLongitude, frame.Columns)
		return nil, errors.Errorf("assembled input columns %v deviate from expected order", frame.Columns)
	}

	preds, err := s.predictor.Predict(frame)
	if err != nil {
		log.Errorf("inference failed for batch of %d locations: %v", len(locations), err)
		return nil, errors.Wrap(err, "inference failed")
	}

	if len(preds) != len(locations) {
		log.Errorf("model returned %d rows for %d locations", len(preds), len(locations))
		return nil, errors.Errorf("model returned %d rows for %d locations", len(preds), len(locations))
	}
	estimates := make([]models.PollutantEstimate, len(preds))
	for i, row := range preds {
		if len(row) != pollutantCount {
			log.Errorf("model returned %d values in row %d, want %d", len(row), i, pollutantCount)
			return nil, errors.Errorf("model returned %d values in row %d, want %d", len(row), i, pollutantCount)
		}
		estimates[i] = models.PollutantEstimate{
			PM25: row[0],
			PM10: row[1],
			O3:   row[2],
			NO2:  row[3],
			CO:   row[4],
			SO2:  row[5],
		}
	}
	return estimates, nil
}

func validateLocation(index int, loc models.LocationInput) *ValidationError {
	if loc.Latitude == nil {
		return &ValidationError{Index: index, Field: "Latitude", Reason: "is required"}
	}
	if loc.Longitude == nil {
		return &ValidationError{Index: index, Field: "Longitude", Reason: "is required"}
	}
	if !isFinite(*loc.Latitude) {
		return &ValidationError{Index: index, Field: "Latitude", Reason: "must be a finite number"}
	}
	if !isFinite(*loc.Longitude) {
		return &ValidationError{Index: index, Field: "Longitude", Reason: "must be a finite number"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
