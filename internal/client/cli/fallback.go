package cli

import "github.com/agrivision/agrivision/internal/client/models"

// Deterministic placeholder datasets keep the dashboard, market and alert
// views populated when a fetch fails. A fallback never suppresses the error
// banner; it only provides content.

func fallbackWeather() models.WeatherSnapshot {
	return models.WeatherSnapshot{
		Temperature: 27.0,
		Humidity:    62.0,
		WindSpeed:   8.5,
		RainfallMM:  0,
		Condition:   "partly cloudy",
		Location:    "(sample data)",
	}
}

func fallbackAnalytics() models.Analytics {
	return models.Analytics{
		MarketData: []models.MarketEntry{
			{Crop: "wheat", Price: 2125, Trend: "steady"},
			{Crop: "rice", Price: 2203, Trend: "up"},
			{Crop: "maize", Price: 1962, Trend: "down"},
		},
		ProfitableCrops: []models.CropProfit{
			{Name: "soybean", Season: "kharif", Profitability: 0.82},
			{Name: "wheat", Season: "rabi", Profitability: 0.74},
			{Name: "chickpea", Season: "rabi", Profitability: 0.69},
		},
	}
}

func fallbackAlerts() []models.Alert {
	return []models.Alert{
		{Severity: "info", Title: "Sample alert", Message: "Live alerts are unavailable; showing sample data."},
	}
}
