package forecast

import (
	"fmt"
	"math"
	"time"

	"weather-dashboard/models"
)

const (
	// Unavailable is shown instead of a value the provider did not send
	Unavailable = "N/A"

	kelvinOffset = 273.15
	msToKmh      = 3.6
)

// KelvinToCelsius converts and rounds to the nearest whole degree.
// Non-finite input yields 0.
func KelvinToCelsius(kelvin float64) int {
	return roundInt(kelvin - kelvinOffset)
}

// WindSpeedKmh converts meters per second to whole kilometers per hour
func WindSpeedKmh(metersPerSecond float64) int {
	return roundInt(metersPerSecond * msToKmh)
}

// FormatWindSpeed renders a wind speed given in m/s, e.g. "6km/h"
func FormatWindSpeed(metersPerSecond float64) string {
	return fmt.Sprintf("%dkm/h", WindSpeedKmh(metersPerSecond))
}

// MetersToKilometers converts a distance to whole kilometers
func MetersToKilometers(meters float64) int {
	return roundInt(meters / 1000)
}

// FormatVisibility renders a visibility reading, e.g. "10km". Missing,
// negative or non-finite readings render as Unavailable.
func FormatVisibility(visibility models.OptionalMeasure) string {
	if !visibility.Valid || !isFinite(visibility.Value) || visibility.Value < 0 {
		return Unavailable
	}
	return fmt.Sprintf("%dkm", MetersToKilometers(visibility.Value))
}

// FormatPressure renders a pressure reading in hPa
func FormatPressure(hpa float64) string {
	return fmt.Sprintf("%d hPa", roundInt(hpa))
}

// FormatHumidity renders a relative humidity percentage
func FormatHumidity(percent float64) string {
	return fmt.Sprintf("%d%%", roundInt(percent))
}

// FromUnix converts epoch seconds to a time in loc
func FromUnix(sec int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(sec, 0).In(loc)
}

// FormatWeekday renders the full weekday name, e.g. "Monday"
func FormatWeekday(t time.Time) string {
	return t.Format("Monday")
}

// FormatDate renders dd.MM.yyyy
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatShortDate renders dd.MM
func FormatShortDate(t time.Time) string {
	return t.Format("02.01")
}

// FormatClock renders a 12-hour clock, e.g. "3:00 PM"
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatHourMinute renders a 24-hour clock without a leading zero, e.g. "6:42"
func FormatHourMinute(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

func roundInt(v float64) int {
	if !isFinite(v) {
		return 0
	}
	return int(math.Round(v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
