package models

// WeatherSnapshot is the weather view of the dashboard. It is also the
// payload cached under the weatherData key between runs.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	RainfallMM  float64 `json:"rainfall_mm"`
	Condition   string  `json:"condition"`
	Location    string  `json:"location,omitempty"`
}

// SoilSnapshot carries the field-level soil metrics shown on the dashboard
// and the soil-health view.
type SoilSnapshot struct {
	PH            float64 `json:"ph"`
	MoisturePct   float64 `json:"moisture"`
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	OrganicMatter float64 `json:"organic_matter"`
}

// Analytics is the market + profitable-crops payload.
type Analytics struct {
	MarketData      []MarketEntry `json:"marketData"`
	ProfitableCrops []CropProfit  `json:"profitableCrops"`
}

type MarketEntry struct {
	Crop  string  `json:"crop"`
	Price float64 `json:"price"`
	Trend string  `json:"trend"`
}

type CropProfit struct {
	Name          string  `json:"name"`
	Season        string  `json:"season"`
	Profitability float64 `json:"profitability"`
}

// Overview carries the alerts list shown by the pest-detection view.
type Overview struct {
	Alerts []Alert `json:"alerts"`
}

type Alert struct {
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}
