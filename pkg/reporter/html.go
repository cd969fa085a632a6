package reporter

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// HTML reports a build as a standalone HTML page with per-target
// timing tables.
type HTML struct {
	tmpl *template.Template
}

// NewHTML creates an HTML reporter.
func NewHTML() *HTML {
	tmpl := template.Must(template.New("report.html.tmpl").
		Funcs(template.FuncMap{
			"seconds": func(d float64) string { return fmt.Sprintf("%.2fs", d) },
		}).
		ParseFS(templateFS, "templates/report.html.tmpl"))
	return &HTML{tmpl: tmpl}
}

// Report renders the tree through the embedded template.
func (h *HTML) Report(root buildstep.BuildStep) (string, error) {
	var sb strings.Builder
	if err := h.tmpl.Execute(&sb, root); err != nil {
		return "", fmt.Errorf("rendering html report: %w", err)
	}
	return sb.String(), nil
}
