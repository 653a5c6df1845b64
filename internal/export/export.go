// Package export converts synthesized lesson plan text into downloadable
// documents. Each output format is produced by a Renderer; when a renderer
// is missing or reports itself unsupported the Exporter degrades to a plain
// text attachment instead of failing.
package export

import (
	"errors"
	"fmt"
	"strings"

	"lesson-planner/internal/logger"

	"go.uber.org/zap"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeText = "text/plain; charset=utf-8"
)

// ErrUnavailable is returned by a Renderer whose backing capability is not
// usable in this runtime.
var ErrUnavailable = errors.New("export: renderer unavailable")

// Metadata is the structured record used for document headings.
type Metadata struct {
	Subject  string
	Grade    string
	Topic    string
	Duration int
}

// Document is the input of every renderer.
type Document struct {
	ID   uint
	Text string
	// Meta is optional; renderers that emit headings skip them when nil.
	Meta *Metadata
}

// Renderer produces one output format.
type Renderer interface {
	Format() Format
	Supported() bool
	Render(doc Document) ([]byte, error)
}

// Artifact is a rendered file ready to be sent as an attachment.
type Artifact struct {
	Body        []byte
	ContentType string
	Extension   string
	FileName    string
	// Degraded is set when the requested format could not be produced and
	// the plain text fallback was returned instead.
	Degraded bool
}

type Exporter struct {
	renderers map[Format]Renderer
}

func NewExporter(renderers ...Renderer) *Exporter {
	e := &Exporter{renderers: make(map[Format]Renderer, len(renderers))}
	for _, r := range renderers {
		if r != nil {
			e.renderers[r.Format()] = r
		}
	}
	return e
}

// Supported reports whether format can be rendered natively.
func (e *Exporter) Supported(format Format) bool {
	if format == FormatText {
		return true
	}
	r, ok := e.renderers[format]
	return ok && r.Supported()
}

// Export renders doc in the requested format. An unavailable renderer is not
// an error: the plain text artifact is returned with Degraded set.
func (e *Exporter) Export(format Format, doc Document) (*Artifact, error) {
	if format == FormatText {
		return textArtifact(doc, false), nil
	}

	r, ok := e.renderers[format]
	if !ok || !r.Supported() {
		logger.Warn("Export renderer unavailable, falling back to plain text",
			zap.String("format", string(format)),
			zap.Uint("lesson_plan_id", doc.ID),
			zap.String("event", "export_fallback"),
		)
		return textArtifact(doc, true), nil
	}

	body, err := r.Render(doc)
	if errors.Is(err, ErrUnavailable) {
		logger.Warn("Export renderer failed as unavailable, falling back to plain text",
			zap.String("format", string(format)),
			zap.Uint("lesson_plan_id", doc.ID),
			zap.Error(err),
			zap.String("event", "export_fallback"),
		)
		return textArtifact(doc, true), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", format, err)
	}

	return &Artifact{
		Body:        body,
		ContentType: contentType(format),
		Extension:   string(format),
		FileName:    FileName(doc.ID, format),
	}, nil
}

// FileName returns the attachment name for a lesson plan export.
func FileName(id uint, format Format) string {
	return fmt.Sprintf("lessonplan_%d.%s", id, format)
}

func textArtifact(doc Document, degraded bool) *Artifact {
	return &Artifact{
		Body:        []byte(doc.Text),
		ContentType: ContentTypeText,
		Extension:   string(FormatText),
		FileName:    FileName(doc.ID, FormatText),
		Degraded:    degraded,
	}
}

func contentType(format Format) string {
	switch format {
	case FormatPDF:
		return ContentTypePDF
	case FormatDOCX:
		return ContentTypeDOCX
	default:
		return ContentTypeText
	}
}

// splitLines splits text on line breaks the way a reader would see them:
// CRLF and CR count as breaks and a single trailing break does not start an
// extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
