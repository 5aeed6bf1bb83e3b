package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultQuestionCount is used when a caller does not ask for a specific count.
	DefaultQuestionCount = 5
	// MaxQuestionCount bounds a single generation request.
	MaxQuestionCount = 50
	// MaxSourceRunes is the longest source text a request may carry.
	// Backends reject oversized prompts, so longer documents are truncated
	// by the caller before a request is built.
	MaxSourceRunes = 120_000
)

// DifficultyMode selects both the prompt schema and the question shape.
type DifficultyMode int

const (
	ModeTrueFalse DifficultyMode = iota + 1
	ModeMultipleChoice
	ModeFillBlank
)

// AllModes lists every supported mode in display order.
var AllModes = []DifficultyMode{ModeTrueFalse, ModeMultipleChoice, ModeFillBlank}

// ParseDifficultyMode accepts the wire names as well as the easy/medium/hard labels.
func ParseDifficultyMode(s string) (DifficultyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true_false", "truefalse", "true-false", "easy":
		return ModeTrueFalse, nil
	case "multiple_choice", "multiplechoice", "multiple-choice", "medium":
		return ModeMultipleChoice, nil
	case "fill_blank", "fillblank", "fill-blank", "fill_in_the_blank", "hard":
		return ModeFillBlank, nil
	default:
		return 0, NewInvalidInputError(fmt.Sprintf("unknown difficulty mode: %q", s))
	}
}

// String returns the wire name of the mode.
func (m DifficultyMode) String() string {
	switch m {
	case ModeTrueFalse:
		return "true_false"
	case ModeMultipleChoice:
		return "multiple_choice"
	case ModeFillBlank:
		return "fill_blank"
	default:
		return fmt.Sprintf("DifficultyMode(%d)", int(m))
	}
}

// Label is the human facing difficulty name.
func (m DifficultyMode) Label() string {
	switch m {
	case ModeTrueFalse:
		return "Easy (True/False)"
	case ModeMultipleChoice:
		return "Medium (Multiple Choice)"
	case ModeFillBlank:
		return "Hard (Fill in the Blanks)"
	default:
		return m.String()
	}
}

func (m DifficultyMode) Valid() bool {
	switch m {
	case ModeTrueFalse, ModeMultipleChoice, ModeFillBlank:
		return true
	default:
		return false
	}
}

// QuizRequest is constructed once per generation attempt and never modified.
type QuizRequest struct {
	SourceText    string
	Mode          DifficultyMode
	QuestionCount int
}

// NewQuizRequest validates its input. A count of zero selects DefaultQuestionCount.
func NewQuizRequest(sourceText string, mode DifficultyMode, questionCount int) (QuizRequest, error) {
	if strings.TrimSpace(sourceText) == "" {
		return QuizRequest{}, NewInvalidInputError("source text is empty")
	}
	if n := utf8.RuneCountInString(sourceText); n > MaxSourceRunes {
		return QuizRequest{}, NewInvalidInputError(fmt.Sprintf("source text has %d characters, limit is %d", n, MaxSourceRunes))
	}
	if !mode.Valid() {
		return QuizRequest{}, NewInvalidInputError(fmt.Sprintf("unknown difficulty mode: %d", int(mode)))
	}
	if questionCount == 0 {
		questionCount = DefaultQuestionCount
	}
	if questionCount < 1 || questionCount > MaxQuestionCount {
		return QuizRequest{}, NewInvalidInputError(fmt.Sprintf("question count must be between 1 and %d, got %d", MaxQuestionCount, questionCount))
	}
	return QuizRequest{
		SourceText:    sourceText,
		Mode:          mode,
		QuestionCount: questionCount,
	}, nil
}

// Option is one multiple choice alternative, kept in document order.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a single generated question. Options is only set for multiple choice.
type Question struct {
	Text    string   `json:"question"`
	Options []Option `json:"options,omitempty"`
}

// HasOption reports whether key names one of the question's options.
func (q Question) HasOption(key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

func (q Question) clone() Question {
	c := Question{Text: q.Text}
	if q.Options != nil {
		c.Options = append([]Option(nil), q.Options...)
	}
	return c
}

// AdvisoryKind classifies non-fatal findings recorded during validation.
type AdvisoryKind string

const (
	AdvisoryCountMismatch      AdvisoryKind = "count_mismatch"
	AdvisoryMissingBlankMarker AdvisoryKind = "missing_blank_marker"
)

// Advisory is a non-fatal validation finding. Index is -1 when it applies to the whole quiz.
type Advisory struct {
	Kind    AdvisoryKind `json:"kind"`
	Index   int          `json:"index"`
	Message string       `json:"message"`
}

// Quiz is a validated, immutable question sequence.
type Quiz struct {
	mode           DifficultyMode
	questions      []Question
	requestedCount int
	advisories     []Advisory
}

// NewQuiz copies questions so later changes by the caller cannot leak in.
func NewQuiz(mode DifficultyMode, questions []Question, requestedCount int, advisories []Advisory) *Quiz {
	qs := make([]Question, len(questions))
	for i, q := range questions {
		qs[i] = q.clone()
	}
	return &Quiz{
		mode:           mode,
		questions:      qs,
		requestedCount: requestedCount,
		advisories:     append([]Advisory(nil), advisories...),
	}
}

func (q *Quiz) Mode() DifficultyMode { return q.mode }

func (q *Quiz) Len() int { return len(q.questions) }

func (q *Quiz) RequestedCount() int { return q.requestedCount }

// Question returns a copy of the question at index i.
func (q *Quiz) Question(i int) (Question, bool) {
	if i < 0 || i >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[i].clone(), true
}

// Questions returns a copy of all questions in generation order.
func (q *Quiz) Questions() []Question {
	out := make([]Question, len(q.questions))
	for i, question := range q.questions {
		out[i] = question.clone()
	}
	return out
}

func (q *Quiz) Advisories() []Advisory {
	return append([]Advisory(nil), q.advisories...)
}
