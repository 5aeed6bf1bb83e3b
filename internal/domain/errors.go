package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Extraction errors
	CodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	CodeUnsupportedType  ErrorCode = "UNSUPPORTED_TYPE"

	// Generation errors
	CodeBackendError         ErrorCode = "BACKEND_ERROR"
	CodeGenerationTimeout    ErrorCode = "GENERATION_TIMEOUT"
	CodeGenerationInProgress ErrorCode = "GENERATION_IN_PROGRESS"
	CodeGenerationAbandoned  ErrorCode = "GENERATION_ABANDONED"

	// Validation errors
	CodeMalformedPayload ErrorCode = "MALFORMED_PAYLOAD"
	CodeSchemaViolation  ErrorCode = "SCHEMA_VIOLATION"

	// Session errors
	CodeNoSession        ErrorCode = "NO_SESSION"
	CodeAlreadySubmitted ErrorCode = "ALREADY_SUBMITTED"
	CodeIndexOutOfRange  ErrorCode = "INDEX_OUT_OF_RANGE"
	CodeInvalidAnswer    ErrorCode = "INVALID_ANSWER"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair surfaced to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err wraps a DomainError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewExtractionFailedError(declaredType string, err error) *DomainError {
	return NewError(CodeExtractionFailed, fmt.Sprintf("failed to extract text from %s document", declaredType), err).
		WithContext("declared_type", declaredType)
}

func NewUnsupportedTypeError(declaredType string) *DomainError {
	return NewError(CodeUnsupportedType, fmt.Sprintf("unsupported document type: %q", declaredType), nil).
		WithContext("declared_type", declaredType)
}

func NewBackendError(err error) *DomainError {
	return NewError(CodeBackendError, "generation backend request failed", err)
}

func NewGenerationTimeoutError(err error) *DomainError {
	return NewError(CodeGenerationTimeout, "generation backend did not answer in time", err)
}

func NewGenerationInProgressError() *DomainError {
	return NewError(CodeGenerationInProgress, "a quiz is already being generated", nil)
}

func NewGenerationAbandonedError(sequence uint64) *DomainError {
	return NewError(CodeGenerationAbandoned, "generation was abandoned before the backend answered", nil).
		WithContext("sequence", sequence)
}

// NewMalformedPayloadError keeps the parser diagnostic in the message.
func NewMalformedPayloadError(err error) *DomainError {
	return NewError(CodeMalformedPayload, fmt.Sprintf("generated quiz is not valid JSON: %v", err), err)
}

func NewSchemaViolationError(detail string) *DomainError {
	return NewError(CodeSchemaViolation, detail, nil).WithContext("detail", detail)
}

func NewNoSessionError() *DomainError {
	return NewError(CodeNoSession, "no quiz has been generated yet", nil)
}

func NewAlreadySubmittedError() *DomainError {
	return NewError(CodeAlreadySubmitted, "quiz has already been submitted", nil)
}

func NewIndexOutOfRangeError(index, length int) *DomainError {
	return NewError(CodeIndexOutOfRange, fmt.Sprintf("question index %d out of range [0, %d)", index, length), nil).
		WithContext("index", index).
		WithContext("length", length)
}

func NewInvalidAnswerError(message string) *DomainError {
	return NewError(CodeInvalidAnswer, message, nil)
}
