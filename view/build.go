// Package view turns dashboard snapshots into display models and renders
// them as HTML or plain text.
package view

import (
	"time"

	"weather-dashboard/dashboard"
	"weather-dashboard/forecast"
	"weather-dashboard/models"
)

// Values shown when the provider left a field out
const (
	fallbackTempKelvin      = 296.37
	fallbackWindSpeed       = 1.64
	fallbackSunTime   int64 = 1702517657
)

// Options control what Build includes
type Options struct {
	UseCityTimezone bool
	ForecastDays    int // <= 0 means every day in the response
	TimelineLength  int // <= 0 means every sample
}

// DefaultOptions matches the stock dashboard: a 24 hour timeline and six
// forecast days in the city's own timezone.
func DefaultOptions() Options {
	return Options{
		UseCityTimezone: true,
		ForecastDays:    6,
		TimelineLength:  8,
	}
}

// Build derives the display model for snap. Only a successful snapshot
// yields forecast data; loading and error snapshots never carry any.
func Build(snap dashboard.Snapshot, opts Options) models.Dashboard {
	d := models.Dashboard{
		Status:   string(snap.Status),
		Location: snap.Location,
	}

	switch snap.Status {
	case dashboard.StatusLoading:
		d.Loading = true
		return d
	case dashboard.StatusError:
		d.Error = snap.Error
		return d
	case dashboard.StatusSuccess:
	default:
		return d
	}

	resp := snap.Response
	if resp == nil {
		return d
	}

	loc := resp.Location(opts.UseCityTimezone)
	d.City = resp.City.Name
	d.Current = buildCurrent(resp, loc)
	d.Timeline = buildTimeline(resp.List, loc, opts.TimelineLength)
	d.Forecast = buildForecast(resp, loc, opts.ForecastDays)
	return d
}

func buildCurrent(resp *models.ForecastResponse, loc *time.Location) *models.Current {
	var sample models.ForecastSample
	first := resp.First()
	if first != nil {
		sample = *first
	} else {
		sample.Main.Temp = fallbackTempKelvin
		sample.Wind.Speed = fallbackWindSpeed
	}

	cond := sample.PrimaryCondition()
	current := &models.Current{
		Temp:        forecast.KelvinToCelsius(sample.Main.Temp.Float64()),
		FeelsLike:   forecast.KelvinToCelsius(sample.Main.FeelsLike.Float64()),
		TempMin:     forecast.KelvinToCelsius(sample.Main.TempMin.Float64()),
		TempMax:     forecast.KelvinToCelsius(sample.Main.TempMax.Float64()),
		Description: cond.Description,
		Icon:        forecast.DefaultIcon,
		Details:     buildDetails(sample, resp.City, loc),
	}

	if first != nil {
		t := first.Time(loc)
		current.Day = forecast.FormatWeekday(t)
		current.Date = forecast.FormatDate(t)
		current.Icon = forecast.DayOrNightIcon(cond.Icon, t)
	}
	current.IconURL = forecast.IconURL(current.Icon)
	return current
}

func buildDetails(sample models.ForecastSample, city models.City, loc *time.Location) models.Details {
	return models.Details{
		Visibility:  forecast.FormatVisibility(sample.Visibility),
		AirPressure: forecast.FormatPressure(sample.Main.Pressure.Float64()),
		Humidity:    forecast.FormatHumidity(sample.Main.Humidity.Float64()),
		WindSpeed:   forecast.FormatWindSpeed(sample.Wind.Speed.Float64()),
		Sunrise:     forecast.FormatHourMinute(forecast.FromUnix(orFallback(city.Sunrise), loc)),
		Sunset:      forecast.FormatHourMinute(forecast.FromUnix(orFallback(city.Sunset), loc)),
	}
}

func buildTimeline(samples []models.ForecastSample, loc *time.Location, length int) []models.TimelineEntry {
	if length > 0 && length < len(samples) {
		samples = samples[:length]
	}

	entries := make([]models.TimelineEntry, 0, len(samples))
	for _, s := range samples {
		t := s.Time(loc)
		icon := forecast.DayOrNightIcon(s.PrimaryCondition().Icon, t)
		entries = append(entries, models.TimelineEntry{
			Time:    forecast.FormatClock(t),
			Icon:    icon,
			IconURL: forecast.IconURL(icon),
			Temp:    forecast.KelvinToCelsius(s.Main.Temp.Float64()),
		})
	}
	return entries
}

func buildForecast(resp *models.ForecastResponse, loc *time.Location, days int) []models.DayForecast {
	buckets := forecast.DailyRepresentatives(resp.List, loc)
	if days > 0 && days < len(buckets) {
		buckets = buckets[:days]
	}

	rows := make([]models.DayForecast, 0, len(buckets))
	for _, b := range buckets {
		if b.Sample == nil {
			rows = append(rows, unavailableDay(b.Date, loc))
			continue
		}

		s := *b.Sample
		t := s.Time(loc)
		cond := s.PrimaryCondition()
		icon := forecast.DayOrNightIcon(cond.Icon, t)
		rows = append(rows, models.DayForecast{
			Available:   true,
			Date:        forecast.FormatShortDate(t),
			Day:         forecast.FormatWeekday(t),
			Description: cond.Description,
			Icon:        icon,
			IconURL:     forecast.IconURL(icon),
			Temp:        forecast.KelvinToCelsius(s.Main.Temp.Float64()),
			FeelsLike:   forecast.KelvinToCelsius(s.Main.FeelsLike.Float64()),
			TempMin:     forecast.KelvinToCelsius(s.Main.TempMin.Float64()),
			TempMax:     forecast.KelvinToCelsius(s.Main.TempMax.Float64()),
			Details:     buildDetails(s, resp.City, loc),
		})
	}
	return rows
}

func unavailableDay(date string, loc *time.Location) models.DayForecast {
	row := models.DayForecast{
		Icon:    forecast.DefaultIcon,
		IconURL: forecast.IconURL(forecast.DefaultIcon),
	}
	if t, err := time.ParseInLocation("2006-01-02", date, loc); err == nil {
		row.Date = forecast.FormatShortDate(t)
		row.Day = forecast.FormatWeekday(t)
	}
	return row
}

func orFallback(sec int64) int64 {
	if sec == 0 {
		return fallbackSunTime
	}
	return sec
}
