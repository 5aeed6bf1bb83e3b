package domain

import (
	"context"
)

// GenerationClient is the text-generation backend: opaque prompt in, opaque text out.
// Implementations make exactly one backend call per Generate and return
// BACKEND_ERROR or GENERATION_TIMEOUT domain errors on failure.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextExtractor turns an uploaded document into plain text.
// declaredType is a file extension or MIME type. Failures are
// UNSUPPORTED_TYPE or EXTRACTION_FAILED domain errors.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, declaredType string) (string, error)
}
