package domain

import (
	"fmt"
	"time"
)

// Answer mirrors the question variant of the session's mode.
// Exactly one of Bool, Option or Text is meaningful, selected by Mode.
type Answer struct {
	Mode   DifficultyMode
	Bool   bool
	Option string
	Text   string
}

func TrueFalseAnswer(v bool) Answer {
	return Answer{Mode: ModeTrueFalse, Bool: v}
}

func OptionAnswer(key string) Answer {
	return Answer{Mode: ModeMultipleChoice, Option: key}
}

// TextAnswer may be empty; an empty fill-in answer is still a recorded answer.
func TextAnswer(s string) Answer {
	return Answer{Mode: ModeFillBlank, Text: s}
}

// Value returns the answer as a bool or string, matching its mode.
func (a Answer) Value() interface{} {
	switch a.Mode {
	case ModeTrueFalse:
		return a.Bool
	case ModeMultipleChoice:
		return a.Option
	case ModeFillBlank:
		return a.Text
	default:
		return nil
	}
}

// QuizSession holds the validated quiz and the user's answers for one interaction.
// It is created on a successful validation and replaced wholesale by the next one.
// QuizSession is not safe for concurrent use; its owner serialises access.
type QuizSession struct {
	id          string
	quiz        *Quiz
	answers     map[int]Answer
	submitted   bool
	createdAt   time.Time
	submittedAt time.Time
	now         func() time.Time
}

// NewQuizSession starts an empty session over quiz.
func NewQuizSession(id string, quiz *Quiz) *QuizSession {
	s := &QuizSession{
		id:      id,
		quiz:    quiz,
		answers: make(map[int]Answer),
		now:     time.Now,
	}
	s.createdAt = s.now()
	return s
}

func (s *QuizSession) ID() string { return s.id }

func (s *QuizSession) Quiz() *Quiz { return s.quiz }

func (s *QuizSession) Mode() DifficultyMode { return s.quiz.Mode() }

func (s *QuizSession) Submitted() bool { return s.submitted }

// Record stores answer for the question at index, replacing any earlier answer.
// On error the session is left unchanged.
func (s *QuizSession) Record(index int, answer Answer) error {
	if s.submitted {
		return NewAlreadySubmittedError()
	}
	question, ok := s.quiz.Question(index)
	if !ok {
		return NewIndexOutOfRangeError(index, s.quiz.Len())
	}
	if answer.Mode != s.quiz.Mode() {
		return NewInvalidAnswerError(fmt.Sprintf("answer of kind %s does not fit a %s quiz", answer.Mode, s.quiz.Mode())).
			WithContext("index", index)
	}
	if answer.Mode == ModeMultipleChoice && !question.HasOption(answer.Option) {
		return NewInvalidAnswerError(fmt.Sprintf("question %d has no option %q", index, answer.Option)).
			WithContext("index", index)
	}
	s.answers[index] = answer
	return nil
}

// Submit marks the session as submitted. It succeeds exactly once; answers may be incomplete.
func (s *QuizSession) Submit() error {
	if s.submitted {
		return NewAlreadySubmittedError()
	}
	s.submitted = true
	s.submittedAt = s.now()
	return nil
}

// SessionSnapshot is a read-only copy of a session for the rendering layer.
type SessionSnapshot struct {
	ID             string
	Mode           DifficultyMode
	Questions      []Question
	Answers        map[int]Answer
	Submitted      bool
	CreatedAt      time.Time
	SubmittedAt    time.Time
	RequestedCount int
	Advisories     []Advisory
}

// Answered reports how many questions carry an answer.
func (s SessionSnapshot) Answered() int { return len(s.Answers) }

func (s *QuizSession) Snapshot() SessionSnapshot {
	answers := make(map[int]Answer, len(s.answers))
	for i, a := range s.answers {
		answers[i] = a
	}
	return SessionSnapshot{
		ID:             s.id,
		Mode:           s.quiz.Mode(),
		Questions:      s.quiz.Questions(),
		Answers:        answers,
		Submitted:      s.submitted,
		CreatedAt:      s.createdAt,
		SubmittedAt:    s.submittedAt,
		RequestedCount: s.quiz.RequestedCount(),
		Advisories:     s.quiz.Advisories(),
	}
}
