// Package render produces the human-facing deliverables (branded HTML and
// PDF) from a validated plan.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"macroplan/internal/plan"
)

//go:embed plan_template.html
var planTemplate string

// DefaultBrandName is used when the renderer is not given a brand.
const DefaultBrandName = "Macroplan Nutrition"

// Deliverables holds the paths of the rendered artifacts.
type Deliverables struct {
	HTMLPath string `json:"html_path"`
	PDFPath  string `json:"pdf_path"`
}

// Renderer writes plan deliverables into an output directory.
type Renderer struct {
	outDir    string
	brandName string
	tmpl      *template.Template
}

// NewRenderer creates a Renderer and ensures the output directory exists.
func NewRenderer(outDir, brandName string) (*Renderer, error) {
	if brandName == "" {
		brandName = DefaultBrandName
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}
	tmpl, err := template.New("plan").Parse(planTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan template: %w", err)
	}
	return &Renderer{outDir: outDir, brandName: brandName, tmpl: tmpl}, nil
}

type templateData struct {
	BrandName string
	Plan      *plan.ValidatedPlan
}

// Render writes the HTML and PDF deliverables for a validated plan and
// returns their paths. File names are keyed by plan ID.
func (r *Renderer) Render(p *plan.ValidatedPlan) (*Deliverables, error) {
	htmlPath := filepath.Join(r.outDir, fmt.Sprintf("plan_%s.html", p.ID))
	if err := r.renderHTML(p, htmlPath); err != nil {
		return nil, err
	}

	pdfPath := filepath.Join(r.outDir, fmt.Sprintf("plan_%s.pdf", p.ID))
	if err := r.renderPDF(p, pdfPath); err != nil {
		return nil, err
	}

	return &Deliverables{HTMLPath: htmlPath, PDFPath: pdfPath}, nil
}

// RenderHTMLString renders the HTML deliverable to a string, used by the
// renderer itself and by callers that serve the document directly.
func (r *Renderer) RenderHTMLString(p *plan.ValidatedPlan) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, templateData{BrandName: r.brandName, Plan: p}); err != nil {
		return "", fmt.Errorf("failed to render plan HTML: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderHTML(p *plan.ValidatedPlan, path string) error {
	html, err := r.RenderHTMLString(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML deliverable: %w", err)
	}
	return nil
}
