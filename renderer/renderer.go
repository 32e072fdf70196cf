// Package renderer turns the tracker views into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderDashboard renders the home view.
func RenderDashboard(d *Dashboard) string {
	partials := map[string]string{
		"dashboard_prices":   "dashboard_prices.md",
		"dashboard_progress": "dashboard_progress.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// RenderPlanner renders the calendar of a month and its report.
func RenderPlanner(p *Planner) string {
	partials := map[string]string{
		"planner_report": "planner_report.md",
	}
	return renderTemplate("planner", "planner.md", partials, p)
}

// RenderStorage renders the locked monthly records and their net balance.
func RenderStorage(s *Storage) string {
	return renderTemplate("storage", "storage.md", nil, s)
}

// renderTemplate renders a main template that depends on several partials.
// Failures are rendered in place of the view.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
