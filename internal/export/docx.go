package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

// DOCXRenderer writes a Word document with one paragraph per line of text.
type DOCXRenderer struct {
	enabled bool
}

func NewDOCXRenderer(enabled bool) *DOCXRenderer {
	return &DOCXRenderer{enabled: enabled}
}

func (r *DOCXRenderer) Format() Format { return FormatDOCX }

func (r *DOCXRenderer) Supported() bool { return r.enabled }

func (r *DOCXRenderer) Render(doc Document) ([]byte, error) {
	if !r.enabled {
		return nil, ErrUnavailable
	}

	document, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create docx: %w", err)
	}

	if doc.Meta != nil {
		if _, err := document.AddHeading("Lesson Plan: "+doc.Meta.Topic, 1); err != nil {
			return nil, fmt.Errorf("failed to add heading: %w", err)
		}
		addLine(document, "Subject: "+doc.Meta.Subject)
		addLine(document, "Grade: "+doc.Meta.Grade)
		addLine(document, fmt.Sprintf("Duration: %d minutes", doc.Meta.Duration))
		addLine(document, "")
	}

	for _, line := range splitLines(doc.Text) {
		addLine(document, line)
	}

	var buf bytes.Buffer
	if err := document.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// addLine appends a paragraph. Whitespace-only text becomes an empty
// paragraph so vertical spacing survives.
func addLine(document *docx.RootDoc, text string) {
	if strings.TrimSpace(text) == "" {
		document.AddEmptyParagraph()
		return
	}
	document.AddParagraph(text)
}
