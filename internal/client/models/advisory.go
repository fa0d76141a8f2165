package models

import "encoding/json"

// YieldPredictionRequest is the form payload POSTed for a yield forecast.
type YieldPredictionRequest struct {
	Crop         string  `json:"crop"`
	AreaHectares float64 `json:"area_hectares"`
	Nitrogen     float64 `json:"nitrogen"`
	Phosphorus   float64 `json:"phosphorus"`
	Potassium    float64 `json:"potassium"`
	PH           float64 `json:"ph"`
	RainfallMM   float64 `json:"rainfall_mm"`
}

// YieldPrediction is the forecast extracted from the backend's {data} wrapper
// and handed off to the results view through the store.
type YieldPrediction struct {
	Crop        string  `json:"crop,omitempty"`
	YieldTonnes float64 `json:"yield"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// IrrigationSchedule is the list of already-scheduled irrigation tasks.
type IrrigationSchedule struct {
	Schedule []IrrigationTask `json:"schedule"`
}

type IrrigationTask struct {
	ID              string `json:"id"`
	Field           string `json:"field"`
	StartAt         string `json:"start_at"`
	DurationMinutes int    `json:"duration_minutes"`
}

// IrrigationRecommendation is returned by the recommendation endpoint; the
// attached weather data is passed through opaquely.
type IrrigationRecommendation struct {
	Success        bool            `json:"success"`
	Recommendation string          `json:"recommendation"`
	WeatherData    json.RawMessage `json:"weather_data"`
}

// FertilizerRequest is the soil-health form payload for a fertilizer pick.
type FertilizerRequest struct {
	Crop       string  `json:"crop"`
	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
	PH         float64 `json:"ph"`
}
