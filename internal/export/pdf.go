package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	// WrapWidth is the longest line, in characters, drawn without wrapping.
	WrapWidth = 90

	pdfFontFamily = "Helvetica"
	pdfFontSize   = 11.0
	pdfLeading    = 13.2
	pdfLeft       = 40.0
	pdfTop        = 42.0
)

// PDFRenderer draws the text on a single US Letter page. Content longer than
// one page is not paginated; lines past the bottom edge are clipped.
type PDFRenderer struct {
	enabled  bool
	compress bool
}

func NewPDFRenderer(enabled bool) *PDFRenderer {
	return &PDFRenderer{enabled: enabled, compress: true}
}

func (r *PDFRenderer) Format() Format { return FormatPDF }

func (r *PDFRenderer) Supported() bool { return r.enabled }

func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	if !r.enabled {
		return nil, ErrUnavailable
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	if doc.Meta != nil {
		pdf.SetTitle("Lesson Plan: "+doc.Meta.Topic, true)
	}
	pdf.SetCreator("lesson-planner", true)
	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "", pdfFontSize)

	// Core fonts are cp1252; translate so accented input renders.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := pdfTop
	for _, line := range WrapLines(doc.Text, WrapWidth) {
		pdf.Text(pdfLeft, y, tr(line))
		y += pdfLeading
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WrapLines splits text into lines and hard-wraps every line longer than
// width runes into width-sized chunks, breaking mid-word when needed. Blank
// lines are kept.
func WrapLines(text string, width int) []string {
	var out []string
	for _, line := range splitLines(text) {
		runes := []rune(line)
		if len(runes) <= width {
			out = append(out, line)
			continue
		}
		for start := 0; start < len(runes); start += width {
			end := start + width
			if end > len(runes) {
				end = len(runes)
			}
			out = append(out, string(runes[start:end]))
		}
	}
	return out
}
