package forecast

import (
	"fmt"
	"strings"
	"time"
)

// DefaultIcon is used for empty or unrecognised condition codes
const DefaultIcon = "01d"

const (
	dayStartHour = 6
	dayEndHour   = 18
)

// knownIcons are the provider's base icon codes, without the d/n suffix
var knownIcons = map[string]bool{
	"01": true, // clear sky
	"02": true, // few clouds
	"03": true, // scattered clouds
	"04": true, // broken clouds
	"09": true, // shower rain
	"10": true, // rain
	"11": true, // thunderstorm
	"13": true, // snow
	"50": true, // mist
}

// IsDaytime reports whether t falls in [06:00, 18:00)
func IsDaytime(t time.Time) bool {
	h := t.Hour()
	return h >= dayStartHour && h < dayEndHour
}

// DayOrNightIcon returns the icon variant of code matching the time of
// day of t. The code may carry a d/n suffix already; it is replaced.
func DayOrNightIcon(code string, t time.Time) string {
	base := strings.TrimSpace(code)
	if n := len(base); n == 3 && (base[2] == 'd' || base[2] == 'n') {
		base = base[:2]
	}
	if !knownIcons[base] {
		return DefaultIcon
	}

	if IsDaytime(t) {
		return base + "d"
	}
	return base + "n"
}

// IconURL maps an icon id to its image
func IconURL(icon string) string {
	if icon == "" {
		icon = DefaultIcon
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}
