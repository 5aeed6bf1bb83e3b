// Package extractor turns uploaded documents into plain text.
package extractor

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// DocumentKind is a supported upload format.
type DocumentKind string

const (
	KindText DocumentKind = "txt"
	KindPDF  DocumentKind = "pdf"
	KindDOCX DocumentKind = "docx"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ParseKind maps a file extension, file name or MIME type to a DocumentKind.
func ParseKind(declaredType string) (DocumentKind, bool) {
	t := strings.ToLower(strings.TrimSpace(declaredType))
	if mediaType, _, err := mime.ParseMediaType(t); err == nil && strings.Contains(mediaType, "/") {
		t = mediaType
	} else if ext := filepath.Ext(t); ext != "" {
		t = ext
	}
	t = strings.TrimPrefix(t, ".")

	switch t {
	case "txt", "text", "text/plain":
		return KindText, true
	case "pdf", "application/pdf":
		return KindPDF, true
	case "docx", docxMIME:
		return KindDOCX, true
	default:
		return "", false
	}
}

// DocumentExtractor implements domain.TextExtractor for plain text, PDF and DOCX uploads.
type DocumentExtractor struct{}

func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// Extract returns the document text. Paragraphs and pages are separated by newlines.
func (e *DocumentExtractor) Extract(ctx context.Context, data []byte, declaredType string) (string, error) {
	kind, ok := ParseKind(declaredType)
	if !ok {
		return "", domain.NewUnsupportedTypeError(declaredType)
	}
	if err := ctx.Err(); err != nil {
		return "", domain.NewExtractionFailedError(string(kind), err)
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindText:
		text, err = extractText(data)
	case KindPDF:
		text, err = extractPDF(data)
	case KindDOCX:
		text, err = extractDOCX(data)
	default:
		return "", domain.NewUnsupportedTypeError(declaredType)
	}
	if err != nil {
		logger.Get().Warn("Document extraction failed",
			zap.String("kind", string(kind)),
			zap.Int("size", len(data)),
			zap.Error(err))
		return "", domain.NewExtractionFailedError(string(kind), err)
	}

	if strings.TrimSpace(text) == "" {
		return "", domain.NewExtractionFailedError(string(kind), fmt.Errorf("document contains no text"))
	}

	logger.Get().Debug("Document text extracted",
		zap.String("kind", string(kind)),
		zap.Int("size", len(data)),
		zap.Int("text_length", len(text)))
	return text, nil
}

var _ domain.TextExtractor = (*DocumentExtractor)(nil)
