package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a document
// @Description Extracts the text of the uploaded document and asks the model for a quiz. Replaces the active session on success.
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document (txt, pdf or docx)"
// @Param mode formData string true "true_false, multiple_choice or fill_blank"
// @Param count formData int false "Number of questions"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 504 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	params, ok := c.Locals(middleware.LocalGenerateParams).(validation.GenerateParams)
	if !ok {
		return domain.NewInternalError("generate request was not validated", nil)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}

	declaredType := filepath.Ext(fh.Filename)
	if declaredType == "" {
		declaredType = fh.Header.Get(fiber.HeaderContentType)
	}

	logger.Get().Info("Quiz generation requested",
		zap.String("file", fh.Filename),
		zap.Int64("size", fh.Size),
		zap.String("mode", params.Mode.String()),
		zap.Int("count", params.QuestionCount))

	snap, err := h.service.Generate(c.UserContext(), service.GenerateInput{
		Data:          data,
		DeclaredType:  declaredType,
		Mode:          params.Mode,
		QuestionCount: params.QuestionCount,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSessionResponse(snap))
}

// GetSession godoc
// @Summary Get the active quiz session
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/session [get]
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	snap, err := h.service.Session()
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(snap))
}

// RecordAnswer godoc
// @Summary Record an answer
// @Description Stores the answer for one question; a later answer for the same question replaces it.
// @Tags quiz
// @Accept json
// @Produce json
// @Param index path int true "Question index"
// @Param answer body dto.AnswerRequest true "Answer"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /quiz/session/answers/{index} [put]
func (h *QuizHandler) RecordAnswer(c *fiber.Ctx) error {
	index, ok := c.Locals(middleware.LocalAnswerIndex).(int)
	if !ok {
		return domain.NewInternalError("answer index was not validated", nil)
	}

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if len(req.Value) == 0 {
		return domain.ValidationErrors{domain.NewMissingFieldError("value")}
	}

	snap, err := h.service.Session()
	if err != nil {
		return err
	}
	answer, err := decodeAnswer(snap.Mode, req.Value)
	if err != nil {
		return err
	}

	snap, err = h.service.RecordAnswer(index, answer)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(snap))
}

// decodeAnswer reads value as the answer variant of mode: a JSON boolean for
// true/false, a string otherwise.
func decodeAnswer(mode domain.DifficultyMode, value json.RawMessage) (domain.Answer, error) {
	switch mode {
	case domain.ModeTrueFalse:
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return domain.Answer{}, domain.NewInvalidAnswerError("true/false answer must be a boolean")
		}
		return domain.TrueFalseAnswer(b), nil
	case domain.ModeMultipleChoice:
		var key string
		if err := json.Unmarshal(value, &key); err != nil {
			return domain.Answer{}, domain.NewInvalidAnswerError("multiple choice answer must be an option key")
		}
		return domain.OptionAnswer(key), nil
	case domain.ModeFillBlank:
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return domain.Answer{}, domain.NewInvalidAnswerError("fill-in-the-blank answer must be a string")
		}
		return domain.TextAnswer(text), nil
	default:
		return domain.Answer{}, domain.NewInternalError(fmt.Sprintf("session has unknown mode %s", mode), nil)
	}
}

// SubmitQuiz godoc
// @Summary Submit the active quiz
// @Description Locks the session. Unanswered questions are allowed.
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quiz/session/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	snap, err := h.service.Submit()
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(snap))
}

// AbandonGeneration godoc
// @Summary Abandon the in-flight generation
// @Description The outstanding generation's result is discarded when it arrives.
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.AbandonResponse
// @Router /quiz/generation [delete]
func (h *QuizHandler) AbandonGeneration(c *fiber.Ctx) error {
	return c.JSON(dto.AbandonResponse{Abandoned: h.service.Abandon()})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Generating: h.service.InFlight()})
}
