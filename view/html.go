package view

import (
	"embed"
	"html/template"
	"io"

	"weather-dashboard/forecast"
	"weather-dashboard/models"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			"iconURL": forecast.IconURL,
			"seq": func(n int) []int {
				return make([]int, n)
			},
		}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

// RenderHTML writes the dashboard page
func RenderHTML(w io.Writer, d models.Dashboard) error {
	return pageTemplate.Execute(w, d)
}
