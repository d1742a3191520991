// Package export renders prompt selections into portable formats and
// pushes them to external destinations.
package export

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/promptvault/promptvault/internal/models"
)

// RenderPDF produces one page per prompt: underlined title, optional
// description, tag/category/folder lines and the prompt body.
func RenderPDF(prompts []models.Prompt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)

	if len(prompts) == 0 {
		pdf.AddPage()
	}

	for _, p := range prompts {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "U", 18)
		pdf.MultiCell(0, 9, p.Title, "", "L", false)

		if p.Description != "" {
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "", 12)
			pdf.MultiCell(0, 6, p.Description, "", "L", false)
		}

		pdf.Ln(3)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "Tags: "+strings.Join(p.Tags, ", "), "", "L", false)
		if p.Category != "" {
			pdf.MultiCell(0, 5, "Category: "+p.Category, "", "L", false)
		}
		if p.Folder != "" {
			pdf.MultiCell(0, 5, "Folder: "+p.Folder, "", "L", false)
		}

		pdf.Ln(3)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, "Prompt:", "", "L", false)
		pdf.Ln(2)
		pdf.SetFont("Times", "", 12)
		pdf.MultiCell(0, 6, p.Text, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
