package report

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

//go:embed report.html.tmpl
var reportTmpl string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ", ") },
	"inc":  func(i int) int { return i + 1 },
}).Parse(reportTmpl))

// Renderer adapts the package functions to analysis.ReportRenderer.
type Renderer struct{}

func (Renderer) Render(rec *analysis.Record, recs []analysis.CampaignRecommendation) ([]byte, error) {
	return Render(rec, recs)
}

func (Renderer) Subject(url string) string { return Subject(url) }

// Subject is the email subject for a report on url.
func Subject(url string) string {
	return "Website Analysis Report for " + url
}

type view struct {
	URL             string
	Title           string
	Analysis        analysis.WebsiteAnalysis
	Recommendations []analysis.CampaignRecommendation
}

// Render builds the export report for one analysed URL.
func Render(rec *analysis.Record, recs []analysis.CampaignRecommendation) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, view{
		URL:             rec.WebsiteURL,
		Title:           rec.Title,
		Analysis:        rec.Analysis,
		Recommendations: recs,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
