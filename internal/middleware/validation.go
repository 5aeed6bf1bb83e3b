package middleware

import (
	"errors"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const (
	// LocalGenerateParams holds the validation.GenerateParams of a generation request.
	LocalGenerateParams = "validated_generate_params"
	// LocalAnswerIndex holds the parsed question index of an answer request.
	LocalAnswerIndex = "validated_answer_index"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(maxUploadBytes int) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(maxUploadBytes),
	}
}

// ValidateGenerateRequest validates the multipart upload, mode and count fields.
func (vm *ValidationMiddleware) ValidateGenerateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			fileName string
			fileSize int64
		)
		fh, err := c.FormFile("file")
		switch {
		case err == nil:
			fileName, fileSize = fh.Filename, fh.Size
		case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
		default:
			return domain.NewInvalidInputError("request must be multipart/form-data with a file field")
		}

		params, errs := vm.validator.ValidateGenerateRequest(c.FormValue("mode"), c.FormValue("count"), fileSize, fileName)
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}

		c.Locals(LocalGenerateParams, params)
		return c.Next()
	}
}

// ValidateAnswerIndex validates the :index path parameter.
func (vm *ValidationMiddleware) ValidateAnswerIndex() fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, errs := vm.validator.ValidateAnswerIndex(c.Params("index"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(LocalAnswerIndex, index)
		return c.Next()
	}
}
