package validation

import (
	"strconv"
	"strings"

	"quiz-forge/internal/domain"
)

// Validator provides request validation functionality
type Validator struct {
	maxUploadBytes int
}

// NewValidator creates a new validator instance
func NewValidator(maxUploadBytes int) *Validator {
	return &Validator{maxUploadBytes: maxUploadBytes}
}

// GenerateParams is the validated form of a quiz generation request.
type GenerateParams struct {
	Mode          domain.DifficultyMode
	QuestionCount int
}

// ValidateGenerateRequest validates the mode, count and upload size of a generation request.
// An empty count leaves QuestionCount at zero, which selects the configured default.
func (v *Validator) ValidateGenerateRequest(mode, count string, fileSize int64, fileName string) (GenerateParams, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	var params GenerateParams

	if strings.TrimSpace(mode) == "" {
		errors = append(errors, domain.NewMissingFieldError("mode"))
	} else if m, err := domain.ParseDifficultyMode(mode); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("mode", mode))
	} else {
		params.Mode = m
	}

	if strings.TrimSpace(count) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(count))
		switch {
		case err != nil:
			errors = append(errors, domain.NewInvalidFormatError("count", count))
		case n < 1 || n > domain.MaxQuestionCount:
			errors = append(errors, domain.NewOutOfRangeError("count", n, 1, domain.MaxQuestionCount))
		default:
			params.QuestionCount = n
		}
	}

	if strings.TrimSpace(fileName) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
	} else if fileSize <= 0 {
		errors = append(errors, domain.NewOutOfRangeError("file", fileSize, 1, v.maxUploadBytes))
	} else if v.maxUploadBytes > 0 && fileSize > int64(v.maxUploadBytes) {
		errors = append(errors, domain.NewOutOfRangeError("file", fileSize, 1, v.maxUploadBytes))
	}

	return params, errors
}

// ValidateAnswerIndex parses a question index path parameter.
func (v *Validator) ValidateAnswerIndex(index string) (int, domain.ValidationErrors) {
	if strings.TrimSpace(index) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("index")}
	}
	n, err := strconv.Atoi(index)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("index", index)}
	}
	return n, nil
}
