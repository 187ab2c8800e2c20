package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"airquality-service/internal/inference"
	"airquality-service/internal/metrics"
	"airquality-service/internal/services"
)

// Prometheus collectors register globally, so the test app shares one set.
var testMetrics = metrics.NewMetrics()

type stubPredictor struct {
	calls int
	fn    func(f inference.Frame) ([][]float64, error)
}

func (p *stubPredictor) Predict(f inference.Frame) ([][]float64, error) {
	p.calls++
	return p.fn(f)
}

func newTestApp(stub *stubPredictor) *fiber.App {
	svc := services.NewPredictionService(stub)
	h := NewPredictionHandler(svc, testMetrics)
	app := fiber.New()
	app.Post("/predict", h.PredictAirQuality)
	return app
}

func postPredict(t *testing.T, app *fiber.App, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestPredictSingleLocation(t *testing.T) {
	app := newTestApp(&stubPredictor{fn: func(f inference.Frame) ([][]float64, error) {
		return [][]float64{{12.3, 20.1, 5.4, 3.2, 0.8, 1.1}}, nil
	}})

	resp, body := postPredict(t, app, `{"locations":[{"Latitude":40.71,"Longitude":-74.00}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}

	var out []map[string]float64
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", body, err)
	}
	if len(out) != 1 {
		t.Fatalf("results = %d, want 1", len(out))
	}
	want := map[string]float64{
		"PM2_5": 12.3, "PM10": 20.1, "O3": 5.4, "NO2": 3.2, "CO": 0.8, "SO2": 1.1,
	}
	for k, v := range want {
		got, ok := out[0][k]
		if !ok {
			t.Fatalf("missing field %s in %s", k, body)
		}
		if got != v {
			t.Fatalf("%s = %v, want %v", k, got, v)
		}
	}
}

func TestPredictEmptyBatch(t *testing.T) {
	stub := &stubPredictor{fn: func(f inference.Frame) ([][]float64, error) {
		return nil, errors.New("model must not be invoked for an empty batch")
	}}
	app := newTestApp(stub)

	resp, body := postPredict(t, app, `{"locations":[]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("body = %s, want []", body)
	}
	if stub.calls != 0 {
		t.Fatalf("predictor calls = %d, want 0", stub.calls)
	}
}

func TestPredictMissingFieldRejected(t *testing.T) {
	stub := &stubPredictor{fn: func(f inference.Frame) ([][]float64, error) {
		return nil, errors.New("model must not be invoked for an invalid batch")
	}}
	app := newTestApp(stub)

	resp, body := postPredict(t, app, `{"locations":[{"Latitude":40.71,"Longitude":-74.00},{"Latitude":48.85}]}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", body, err)
	}
	if out["field"] != "Longitude" {
		t.Fatalf("field = %v, want Longitude", out["field"])
	}
	if out["index"] != float64(1) {
		t.Fatalf("index = %v, want 1", out["index"])
	}
}

func TestPredictNonNumericFieldRejected(t *testing.T) {
	stub := &stubPredictor{fn: func(f inference.Frame) ([][]float64, error) {
		return nil, errors.New("model must not be invoked for a malformed body")
	}}
	app := newTestApp(stub)

	resp, body := postPredict(t, app, `{"locations":[{"Latitude":"forty","Longitude":-74.00}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if stub.calls != 0 {
		t.Fatalf("predictor calls = %d, want 0", stub.calls)
	}
}

func TestPredictInferenceFailure(t *testing.T) {
	app := newTestApp(&stubPredictor{fn: func(f inference.Frame) ([][]float64, error) {
		return nil, errors.New("incompatible matrix shape")
	}})

	resp, body := postPredict(t, app, `{"locations":[{"Latitude":40.71,"Longitude":-74.00}]}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	msg, _ := out["message"].(string)
	if !strings.Contains(msg, "matrix shape") {
		t.Fatalf("message = %q, want underlying error surfaced", msg)
	}
}
