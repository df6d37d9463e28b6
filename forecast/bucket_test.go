package forecast

import (
	"testing"
	"time"

	"weather-dashboard/models"
)

func sampleAt(t time.Time) models.ForecastSample {
	return models.ForecastSample{
		Dt:    t.Unix(),
		DtTxt: t.UTC().Format("2006-01-02 15:04:05"),
	}
}

func TestDailyRepresentativesPartialFirstDay(t *testing.T) {
	loc := time.UTC
	day1 := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	day2 := day1.AddDate(0, 0, 1)

	samples := []models.ForecastSample{
		sampleAt(day1.Add(3 * time.Hour)),
		sampleAt(day1.Add(9 * time.Hour)),
		sampleAt(day2),
		sampleAt(day2.Add(6 * time.Hour)),
		sampleAt(day2.Add(12 * time.Hour)),
	}

	buckets := DailyRepresentatives(samples, loc)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	if buckets[0].Date != "2024-03-10" || buckets[1].Date != "2024-03-11" {
		t.Fatalf("unexpected dates: %s, %s", buckets[0].Date, buckets[1].Date)
	}
	if buckets[0].Sample == nil || buckets[0].Sample.Time(loc).Hour() != 9 {
		t.Errorf("first day should be represented by the 09:00 sample, got %+v", buckets[0].Sample)
	}
	if buckets[1].Sample == nil || buckets[1].Sample.Time(loc).Hour() != 6 {
		t.Errorf("second day should be represented by the 06:00 sample, got %+v", buckets[1].Sample)
	}
}

func TestDailyRepresentativesHourBoundary(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)

	onlyFive := DailyRepresentatives([]models.ForecastSample{sampleAt(day.Add(5 * time.Hour))}, loc)
	if len(onlyFive) != 1 || onlyFive[0].Sample != nil {
		t.Errorf("a 05:00 sample must not represent its day, got %+v", onlyFive)
	}

	five := sampleAt(day.Add(5 * time.Hour))
	six := sampleAt(day.Add(6 * time.Hour))
	got := DailyRepresentatives([]models.ForecastSample{five, six}, loc)
	if len(got) != 1 || got[0].Sample == nil || got[0].Sample.Dt != six.Dt {
		t.Errorf("the 06:00 sample should represent the day, got %+v", got)
	}
}

func TestDailyRepresentativesGap(t *testing.T) {
	loc := time.UTC
	late := time.Date(2024, 3, 10, 3, 0, 0, 0, loc)
	next := time.Date(2024, 3, 11, 6, 0, 0, 0, loc)

	got := DailyRepresentatives([]models.ForecastSample{sampleAt(late), sampleAt(next)}, loc)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Sample != nil {
		t.Errorf("expected a gap for the first date, got %+v", got[0].Sample)
	}
	if got[1].Sample == nil {
		t.Errorf("expected a representative for the second date")
	}
}

func TestDailyRepresentativesEmpty(t *testing.T) {
	got := DailyRepresentatives(nil, time.UTC)
	if got == nil || len(got) != 0 {
		t.Errorf("expected an empty, non-nil result, got %#v", got)
	}
}

func TestDailyRepresentativesFullResponse(t *testing.T) {
	loc := time.UTC
	start := time.Date(2024, 3, 10, 15, 0, 0, 0, loc)

	var samples []models.ForecastSample
	for i := 0; i < 56; i++ {
		samples = append(samples, sampleAt(start.Add(time.Duration(i)*3*time.Hour)))
	}

	buckets := DailyRepresentatives(samples, loc)

	var dates []string
	seen := map[string]bool{}
	for _, s := range samples {
		d := DateKey(s.Time(loc))
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	if len(buckets) > len(dates) {
		t.Fatalf("more buckets (%d) than distinct dates (%d)", len(buckets), len(dates))
	}
	for i, b := range buckets {
		if b.Date != dates[i] {
			t.Errorf("bucket %d: expected date %s, got %s", i, dates[i], b.Date)
		}
		if b.Sample != nil && b.Sample.Time(loc).Hour() < RepresentativeHour {
			t.Errorf("bucket %d represented by a sample before 06:00", i)
		}
	}
}

func TestDailyRepresentativesUsesLocation(t *testing.T) {
	// 02:00 UTC is 07:00 at UTC+5, so the same instant qualifies there
	instant := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	samples := []models.ForecastSample{sampleAt(instant)}

	if got := DailyRepresentatives(samples, time.UTC); got[0].Sample != nil {
		t.Errorf("expected a gap in UTC")
	}

	plusFive := time.FixedZone("UTC+5", 5*3600)
	got := DailyRepresentatives(samples, plusFive)
	if got[0].Sample == nil {
		t.Errorf("expected a representative at UTC+5")
	}
}
