package dto

import (
	"encoding/json"
	"sort"
	"time"

	"quiz-forge/internal/domain"
)

// OptionResponse is one multiple choice alternative.
type OptionResponse struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// QuestionResponse represents a generated question in the API response
// @Description Generated question; options are only present in multiple_choice mode
type QuestionResponse struct {
	Index    int              `json:"index"`
	Question string           `json:"question"`
	Options  []OptionResponse `json:"options,omitempty"`
	Answer   interface{}      `json:"answer,omitempty"`
}

// AdvisoryResponse is a non-fatal remark about the generated quiz.
type AdvisoryResponse struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// SessionResponse represents the active quiz session
// @Description Active quiz session with recorded answers
type SessionResponse struct {
	SessionID      string             `json:"session_id"`
	Mode           string             `json:"mode"`
	ModeLabel      string             `json:"mode_label"`
	Questions      []QuestionResponse `json:"questions"`
	Answered       int                `json:"answered"`
	Submitted      bool               `json:"submitted"`
	RequestedCount int                `json:"requested_count"`
	Advisories     []AdvisoryResponse `json:"advisories,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	SubmittedAt    *time.Time         `json:"submitted_at,omitempty"`
}

// AnswerRequest represents a user's answer in the API request
// @Description Request body for recording an answer: a boolean for true_false, an option key for multiple_choice, free text for fill_blank
type AnswerRequest struct {
	Value json.RawMessage `json:"value" swaggertype:"string"`
}

// AbandonResponse reports whether an in-flight generation was discarded.
type AbandonResponse struct {
	Abandoned bool `json:"abandoned"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status     string `json:"status"`
	Generating bool   `json:"generating"`
}

// NewSessionResponse converts a domain snapshot into its API representation.
func NewSessionResponse(s domain.SessionSnapshot) SessionResponse {
	questions := make([]QuestionResponse, len(s.Questions))
	for i, q := range s.Questions {
		qr := QuestionResponse{Index: i, Question: q.Text}
		for _, o := range q.Options {
			qr.Options = append(qr.Options, OptionResponse{Key: o.Key, Text: o.Text})
		}
		if a, ok := s.Answers[i]; ok {
			qr.Answer = a.Value()
		}
		questions[i] = qr
	}

	var advisories []AdvisoryResponse
	for _, a := range s.Advisories {
		advisories = append(advisories, AdvisoryResponse{Kind: string(a.Kind), Index: a.Index, Message: a.Message})
	}
	sort.SliceStable(advisories, func(i, j int) bool { return advisories[i].Index < advisories[j].Index })

	resp := SessionResponse{
		SessionID:      s.ID,
		Mode:           s.Mode.String(),
		ModeLabel:      s.Mode.Label(),
		Questions:      questions,
		Answered:       s.Answered(),
		Submitted:      s.Submitted,
		RequestedCount: s.RequestedCount,
		Advisories:     advisories,
		CreatedAt:      s.CreatedAt,
	}
	if s.Submitted {
		t := s.SubmittedAt
		resp.SubmittedAt = &t
	}
	return resp
}
