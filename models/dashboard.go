package models

// Details are the secondary readings shown next to a forecast entry
type Details struct {
	Visibility  string `json:"visibility"`  // "10km" or "N/A"
	AirPressure string `json:"airPressure"` // "1013 hPa"
	Humidity    string `json:"humidity"`    // "64%"
	WindSpeed   string `json:"windSpeed"`   // "6km/h"
	Sunrise     string `json:"sunrise"`     // "6:42"
	Sunset      string `json:"sunset"`      // "17:08"
}

// Current is the current-conditions panel, built from the first sample
type Current struct {
	Day         string  `json:"day"`  // weekday name
	Date        string  `json:"date"` // dd.MM.yyyy
	Temp        int     `json:"temp"` // Celsius
	FeelsLike   int     `json:"feelsLike"`
	TempMin     int     `json:"tempMin"`
	TempMax     int     `json:"tempMax"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	IconURL     string  `json:"iconUrl"`
	Details     Details `json:"details"`
}

// TimelineEntry is one slot of the near-term timeline
type TimelineEntry struct {
	Time    string `json:"time"` // h:mm AM/PM
	Icon    string `json:"icon"`
	IconURL string `json:"iconUrl"`
	Temp    int    `json:"temp"`
}

// DayForecast is one row of the multi-day forecast. Available is false
// when no representative sample exists for the date.
type DayForecast struct {
	Available   bool    `json:"available"`
	Date        string  `json:"date"` // dd.MM
	Day         string  `json:"day"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	IconURL     string  `json:"iconUrl"`
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feelsLike"`
	TempMin     int     `json:"tempMin"`
	TempMax     int     `json:"tempMax"`
	Details     Details `json:"details"`
}

// Dashboard is everything a renderer needs for one snapshot
type Dashboard struct {
	Status   string          `json:"status"`
	Location string          `json:"location"` // selected location
	City     string          `json:"city"`     // name reported by the provider
	Loading  bool            `json:"loading"`
	Error    string          `json:"error,omitempty"`
	Current  *Current        `json:"current,omitempty"`
	Timeline []TimelineEntry `json:"timeline,omitempty"`
	Forecast []DayForecast   `json:"forecast,omitempty"`
}
