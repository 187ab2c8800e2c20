package models

// LocationInput is a single coordinate to predict pollutant levels for.
// Fields are pointers so a missing key can be told apart from a zero value
// after JSON decoding.
type LocationInput struct {
	Latitude  *float64 `json:"Latitude"`
	Longitude *float64 `json:"Longitude"`
}

// PredictBatchRequest is the body of POST /predict.
type PredictBatchRequest struct {
	Locations []LocationInput `json:"locations"`
}

// PollutantEstimate holds the six predicted pollutant concentrations for one
// location. Field order matches the output order of the regression artifact:
// PM2.5, PM10, O3, NO2, CO, SO2.
type PollutantEstimate struct {
	PM25 float64 `json:"PM2_5"` // ug/m3
	PM10 float64 `json:"PM10"`  // ug/m3
	O3   float64 `json:"O3"`    // ppb
	NO2  float64 `json:"NO2"`   // ppb
	CO   float64 `json:"CO"`    // ppm
	SO2  float64 `json:"SO2"`   // ppb
}
