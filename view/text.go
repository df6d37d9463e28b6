package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"weather-dashboard/models"
)

// RenderText writes the dashboard for a terminal
func RenderText(w io.Writer, d models.Dashboard) error {
	switch {
	case d.Error != "":
		_, err := fmt.Fprintf(w, "Error: %s\n", d.Error)
		return err
	case d.Loading:
		_, err := fmt.Fprintf(w, "Loading %s...\n", d.Location)
		return err
	case d.Current == nil:
		_, err := fmt.Fprintln(w, "No location selected.")
		return err
	}

	c := d.Current
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", firstNonEmpty(d.City, d.Location))
	fmt.Fprintf(&b, "%s (%s)\n", c.Day, c.Date)
	fmt.Fprintf(&b, "  %d°  feels like %d°  %d°↓ %d°↑  %s [%s]\n",
		c.Temp, c.FeelsLike, c.TempMin, c.TempMax, c.Description, c.Icon)
	fmt.Fprintf(&b, "  visibility %s  humidity %s  wind %s  pressure %s  sunrise %s  sunset %s\n",
		c.Details.Visibility, c.Details.Humidity, c.Details.WindSpeed,
		c.Details.AirPressure, c.Details.Sunrise, c.Details.Sunset)

	if len(d.Timeline) > 0 {
		b.WriteString("\nNext hours\n")
		for _, e := range d.Timeline {
			fmt.Fprintf(&b, "  %-8s %4d°  [%s]\n", e.Time, e.Temp, e.Icon)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if len(d.Forecast) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nForecast (%d days)\n", len(d.Forecast)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  DAY\tDATE\tTEMP\tFEELS\tMIN/MAX\tCONDITIONS\tWIND\tVISIBILITY")
	for _, f := range d.Forecast {
		if !f.Available {
			fmt.Fprintf(tw, "  %s\t%s\t-\t-\t-\tno forecast available\t-\t-\n", f.Day, f.Date)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d°\t%d°\t%d°/%d°\t%s\t%s\t%s\n",
			f.Day, f.Date, f.Temp, f.FeelsLike, f.TempMin, f.TempMax,
			f.Description, f.Details.WindSpeed, f.Details.Visibility)
	}
	return tw.Flush()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
