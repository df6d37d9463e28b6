// Package forecast holds the pure data-shaping logic of the dashboard:
// picking one representative sample per day, converting provider units
// for display and choosing day or night icons.
package forecast

import (
	"time"

	"weather-dashboard/models"
)

// RepresentativeHour is the earliest local hour a sample may have to
// stand for its whole day.
const RepresentativeHour = 6

// DateKey formats t as a calendar date key (YYYY-MM-DD)
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DailyRepresentatives returns one bucket per distinct calendar date in
// samples, in order of first appearance. Each bucket holds the first
// sample of that date whose local hour is at least RepresentativeHour, or
// nil when none qualifies (typically a partial first day). Dates and
// hours are evaluated in loc.
func DailyRepresentatives(samples []models.ForecastSample, loc *time.Location) []models.DayBucket {
	buckets := make([]models.DayBucket, 0)
	index := make(map[string]int)

	for i := range samples {
		t := samples[i].Time(loc)
		date := DateKey(t)

		pos, seen := index[date]
		if !seen {
			pos = len(buckets)
			index[date] = pos
			buckets = append(buckets, models.DayBucket{Date: date})
		}

		if buckets[pos].Sample == nil && t.Hour() >= RepresentativeHour {
			buckets[pos].Sample = &samples[i]
		}
	}

	return buckets
}
