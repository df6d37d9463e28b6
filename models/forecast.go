package models

import (
	"time"
)

// Condition is one weather descriptor attached to a forecast sample
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`        // category, e.g. "Rain"
	Description string `json:"description"` // short text description
	Icon        string `json:"icon"`        // provider icon id, e.g. "10d"
}

// Readings holds the "main" block of a sample. Temperatures are in Kelvin.
type Readings struct {
	Temp      Measure `json:"temp"`
	FeelsLike Measure `json:"feels_like"`
	TempMin   Measure `json:"temp_min"`
	TempMax   Measure `json:"temp_max"`
	Pressure  Measure `json:"pressure"`   // hPa
	SeaLevel  Measure `json:"sea_level"`  // hPa
	GrndLevel Measure `json:"grnd_level"` // hPa
	Humidity  Measure `json:"humidity"`   // percentage
	TempKf    Measure `json:"temp_kf"`
}

// Wind holds wind measurements in m/s and degrees
type Wind struct {
	Speed Measure `json:"speed"`
	Deg   Measure `json:"deg"`
	Gust  Measure `json:"gust"`
}

// ForecastSample is a single 3-hour forecast point
type ForecastSample struct {
	Dt      int64       `json:"dt"`     // epoch seconds
	DtTxt   string      `json:"dt_txt"` // provider formatted timestamp (UTC)
	Main    Readings    `json:"main"`
	Weather []Condition `json:"weather"`
	Clouds  struct {
		All Measure `json:"all"` // cloudiness percentage
	} `json:"clouds"`
	Wind       Wind            `json:"wind"`
	Visibility OptionalMeasure `json:"visibility"` // meters
	Pop        Measure         `json:"pop"`        // probability of precipitation
	Sys        struct {
		Pod string `json:"pod"` // part of day reported by the provider
	} `json:"sys"`
}

// Time returns the sample timestamp in loc
func (s ForecastSample) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(s.Dt, 0).In(loc)
}

// PrimaryCondition returns the first weather descriptor, or a zero value
// when the provider sent none.
func (s ForecastSample) PrimaryCondition() Condition {
	if len(s.Weather) == 0 {
		return Condition{}
	}
	return s.Weather[0]
}

// Coord is a geographic coordinate
type Coord struct {
	Lat Measure `json:"lat"`
	Lon Measure `json:"lon"`
}

// City describes the location a forecast response was generated for
type City struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Coord      Coord  `json:"coord"`
	Country    string `json:"country"`
	Population int64  `json:"population"`
	Timezone   int    `json:"timezone"` // shift in seconds from UTC
	Sunrise    int64  `json:"sunrise"`  // epoch seconds
	Sunset     int64  `json:"sunset"`   // epoch seconds
}

// ForecastResponse is the provider's forecast document. List is ordered
// by Dt ascending at the provider's sampling interval.
type ForecastResponse struct {
	Cod     Code             `json:"cod"`
	Message Measure          `json:"message"`
	Cnt     int              `json:"cnt"`
	List    []ForecastSample `json:"list"`
	City    City             `json:"city"`
}

// Location returns the zone forecast times are displayed in. With
// useCityTimezone the provider's fixed offset is honoured, otherwise the
// process local zone is used.
func (r *ForecastResponse) Location(useCityTimezone bool) *time.Location {
	if r == nil || !useCityTimezone {
		return time.Local
	}
	name := r.City.Name
	if name == "" {
		name = "city"
	}
	return time.FixedZone(name, r.City.Timezone)
}

// First returns the earliest sample, or nil for an empty response
func (r *ForecastResponse) First() *ForecastSample {
	if r == nil || len(r.List) == 0 {
		return nil
	}
	return &r.List[0]
}

// DayBucket is the representative sample chosen for one calendar date.
// Sample is nil when no sample of that date qualified.
type DayBucket struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Sample *ForecastSample `json:"sample,omitempty"`
}
