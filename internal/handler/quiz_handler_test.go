package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateFunc     func(ctx context.Context, in service.GenerateInput) (domain.SessionSnapshot, error)
	SessionFunc      func() (domain.SessionSnapshot, error)
	RecordAnswerFunc func(index int, answer domain.Answer) (domain.SessionSnapshot, error)
	SubmitFunc       func() (domain.SessionSnapshot, error)
	AbandonFunc      func() bool
	InFlightFunc     func() bool
}

func (m *MockQuizService) Generate(ctx context.Context, in service.GenerateInput) (domain.SessionSnapshot, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, in)
	}
	panic("MockQuizService.GenerateFunc not implemented")
}
func (m *MockQuizService) Session() (domain.SessionSnapshot, error) {
	if m.SessionFunc != nil {
		return m.SessionFunc()
	}
	panic("MockQuizService.SessionFunc not implemented")
}
func (m *MockQuizService) RecordAnswer(index int, answer domain.Answer) (domain.SessionSnapshot, error) {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(index, answer)
	}
	panic("MockQuizService.RecordAnswerFunc not implemented")
}
func (m *MockQuizService) Submit() (domain.SessionSnapshot, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc()
	}
	panic("MockQuizService.SubmitFunc not implemented")
}
func (m *MockQuizService) Abandon() bool {
	if m.AbandonFunc != nil {
		return m.AbandonFunc()
	}
	panic("MockQuizService.AbandonFunc not implemented")
}
func (m *MockQuizService) InFlight() bool {
	if m.InFlightFunc != nil {
		return m.InFlightFunc()
	}
	panic("MockQuizService.InFlightFunc not implemented")
}

const maxUpload = 1024

func setupApp(svc service.QuizService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewQuizHandler(svc)
	vm := middleware.NewValidationMiddleware(maxUpload)

	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Post("/quiz", vm.ValidateGenerateRequest(), h.GenerateQuiz)
	api.Get("/quiz/session", h.GetSession)
	api.Put("/quiz/session/answers/:index", vm.ValidateAnswerIndex(), h.RecordAnswer)
	api.Post("/quiz/session/submit", h.SubmitQuiz)
	api.Delete("/quiz/generation", h.AbandonGeneration)
	return app
}

func multipartRequest(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/quiz", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func readJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), string(body))
}

func multipleChoiceSnapshot() domain.SessionSnapshot {
	quiz := domain.NewQuiz(domain.ModeMultipleChoice, []domain.Question{
		{Text: "Which organelle makes ATP?", Options: []domain.Option{{Key: "A", Text: "Nucleus"}, {Key: "B", Text: "Mitochondria"}}},
	}, 1, nil)
	return domain.NewQuizSession("01SESSION", quiz).Snapshot()
}

func trueFalseSnapshot() domain.SessionSnapshot {
	quiz := domain.NewQuiz(domain.ModeTrueFalse, []domain.Question{{Text: "Water boils at 100C at sea level."}}, 1, nil)
	return domain.NewQuizSession("01SESSION", quiz).Snapshot()
}

func TestGenerateQuiz(t *testing.T) {
	var got service.GenerateInput
	svc := &MockQuizService{
		GenerateFunc: func(ctx context.Context, in service.GenerateInput) (domain.SessionSnapshot, error) {
			got = in
			return multipleChoiceSnapshot(), nil
		},
	}
	app := setupApp(svc)

	req := multipartRequest(t, map[string]string{"mode": "multiple_choice", "count": "3"}, "cells.txt", []byte("Cells are small."))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.SessionResponse
	readJSON(t, resp, &body)
	assert.Equal(t, "01SESSION", body.SessionID)
	assert.Equal(t, "multiple_choice", body.Mode)
	require.Len(t, body.Questions, 1)
	assert.Equal(t, []dto.OptionResponse{{Key: "A", Text: "Nucleus"}, {Key: "B", Text: "Mitochondria"}}, body.Questions[0].Options)

	assert.Equal(t, []byte("Cells are small."), got.Data)
	assert.Equal(t, ".txt", got.DeclaredType)
	assert.Equal(t, domain.ModeMultipleChoice, got.Mode)
	assert.Equal(t, 3, got.QuestionCount)
}

func TestGenerateQuiz_ValidationErrors(t *testing.T) {
	app := setupApp(&MockQuizService{})

	tests := []struct {
		name    string
		fields  map[string]string
		file    string
		content []byte
	}{
		{"missing mode", map[string]string{}, "a.txt", []byte("x")},
		{"bad count", map[string]string{"mode": "easy", "count": "many"}, "a.txt", []byte("x")},
		{"missing file", map[string]string{"mode": "easy"}, "", nil},
		{"file too large", map[string]string{"mode": "easy"}, "a.txt", bytes.Repeat([]byte("x"), maxUpload+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(multipartRequest(t, tt.fields, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body middleware.ValidationErrorResponse
			readJSON(t, resp, &body)
			assert.Equal(t, string(domain.CodeValidation), body.Code)
			assert.NotEmpty(t, body.Errors)
		})
	}
}

func TestGenerateQuiz_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.NewGenerationInProgressError(), fiber.StatusConflict},
		{domain.NewUnsupportedTypeError(".png"), fiber.StatusUnsupportedMediaType},
		{domain.NewSchemaViolationError("question 2 missing options"), fiber.StatusUnprocessableEntity},
		{domain.NewGenerationTimeoutError(context.DeadlineExceeded), fiber.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		svc := &MockQuizService{
			GenerateFunc: func(ctx context.Context, in service.GenerateInput) (domain.SessionSnapshot, error) {
				return domain.SessionSnapshot{}, tt.err
			},
		}
		resp, err := setupApp(svc).Test(multipartRequest(t, map[string]string{"mode": "hard"}, "a.txt", []byte("x")), -1)
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode)
	}
}

func TestGetSession(t *testing.T) {
	svc := &MockQuizService{
		SessionFunc: func() (domain.SessionSnapshot, error) {
			return domain.SessionSnapshot{}, domain.NewNoSessionError()
		},
	}
	resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/quiz/session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	svc.SessionFunc = func() (domain.SessionSnapshot, error) { return trueFalseSnapshot(), nil }
	resp, err = setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/quiz/session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.SessionResponse
	readJSON(t, resp, &body)
	assert.Equal(t, "true_false", body.Mode)
	assert.Equal(t, "Easy (True/False)", body.ModeLabel)
	assert.Nil(t, body.Questions[0].Answer)
}

func TestRecordAnswer(t *testing.T) {
	var recorded domain.Answer
	var recordedIndex int
	svc := &MockQuizService{
		SessionFunc: func() (domain.SessionSnapshot, error) { return trueFalseSnapshot(), nil },
		RecordAnswerFunc: func(index int, answer domain.Answer) (domain.SessionSnapshot, error) {
			recordedIndex, recorded = index, answer
			snap := trueFalseSnapshot()
			snap.Answers = map[int]domain.Answer{index: answer}
			return snap, nil
		},
	}
	app := setupApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/quiz/session/answers/0", `{"value": false}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, recordedIndex)
	assert.Equal(t, domain.TrueFalseAnswer(false), recorded)

	var body dto.SessionResponse
	readJSON(t, resp, &body)
	assert.Equal(t, 1, body.Answered)
	assert.Equal(t, false, body.Questions[0].Answer)
}

func TestRecordAnswer_Errors(t *testing.T) {
	svc := &MockQuizService{
		SessionFunc: func() (domain.SessionSnapshot, error) { return multipleChoiceSnapshot(), nil },
		RecordAnswerFunc: func(index int, answer domain.Answer) (domain.SessionSnapshot, error) {
			if index >= 1 {
				return domain.SessionSnapshot{}, domain.NewIndexOutOfRangeError(index, 1)
			}
			return domain.SessionSnapshot{}, domain.NewAlreadySubmittedError()
		},
	}
	app := setupApp(svc)

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"index not a number", "/api/quiz/session/answers/first", `{"value":"A"}`, fiber.StatusBadRequest},
		{"missing value", "/api/quiz/session/answers/0", `{}`, fiber.StatusBadRequest},
		{"wrong variant", "/api/quiz/session/answers/0", `{"value":true}`, fiber.StatusBadRequest},
		{"malformed body", "/api/quiz/session/answers/0", `{"value":`, fiber.StatusBadRequest},
		{"out of range", "/api/quiz/session/answers/4", `{"value":"A"}`, fiber.StatusUnprocessableEntity},
		{"already submitted", "/api/quiz/session/answers/0", `{"value":"B"}`, fiber.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPut, tt.target, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestSubmitQuiz(t *testing.T) {
	calls := 0
	svc := &MockQuizService{
		SubmitFunc: func() (domain.SessionSnapshot, error) {
			calls++
			if calls > 1 {
				return domain.SessionSnapshot{}, domain.NewAlreadySubmittedError()
			}
			snap := trueFalseSnapshot()
			snap.Submitted = true
			return snap, nil
		},
	}
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/quiz/session/submit", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body dto.SessionResponse
	readJSON(t, resp, &body)
	assert.True(t, body.Submitted)
	assert.NotNil(t, body.SubmittedAt)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/quiz/session/submit", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAbandonGenerationAndHealth(t *testing.T) {
	svc := &MockQuizService{
		AbandonFunc:  func() bool { return true },
		InFlightFunc: func() bool { return false },
	}
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/quiz/generation", nil))
	require.NoError(t, err)
	var abandoned dto.AbandonResponse
	readJSON(t, resp, &abandoned)
	assert.True(t, abandoned.Abandoned)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	var health dto.HealthResponse
	readJSON(t, resp, &health)
	assert.Equal(t, "ok", health.Status)
	assert.False(t, health.Generating)
}
