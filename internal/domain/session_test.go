package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrueFalseSession(n int) *QuizSession {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{Text: "Statement?"}
	}
	return NewQuizSession("01HZXTESTSESSION0000000000", NewQuiz(ModeTrueFalse, questions, n, nil))
}

func newMultipleChoiceSession() *QuizSession {
	quiz := NewQuiz(ModeMultipleChoice, []Question{{
		Text:    "Capital of France?",
		Options: []Option{{Key: "a", Text: "Paris"}, {Key: "b", Text: "Rome"}},
	}}, 1, nil)
	return NewQuizSession("01HZXTESTSESSION0000000001", quiz)
}

func TestQuizSession_RecordLastWriteWins(t *testing.T) {
	s := newTrueFalseSession(5)

	require.NoError(t, s.Record(0, TrueFalseAnswer(true)))
	require.NoError(t, s.Record(0, TrueFalseAnswer(false)))

	snap := s.Snapshot()
	assert.Equal(t, TrueFalseAnswer(false), snap.Answers[0])
	assert.Equal(t, 1, snap.Answered())
}

func TestQuizSession_RecordOutOfRange(t *testing.T) {
	s := newTrueFalseSession(5)
	require.NoError(t, s.Record(1, TrueFalseAnswer(true)))
	before := s.Snapshot()

	err := s.Record(99, TrueFalseAnswer(true))
	assert.True(t, HasCode(err, CodeIndexOutOfRange))
	assert.True(t, HasCode(s.Record(-1, TrueFalseAnswer(true)), CodeIndexOutOfRange))

	assert.Equal(t, before, s.Snapshot())
}

func TestQuizSession_RecordRejectsWrongVariant(t *testing.T) {
	s := newTrueFalseSession(2)

	err := s.Record(0, TextAnswer("photosynthesis"))
	assert.True(t, HasCode(err, CodeInvalidAnswer))
	assert.Empty(t, s.Snapshot().Answers)
}

func TestQuizSession_RecordOptionMustExist(t *testing.T) {
	s := newMultipleChoiceSession()

	assert.True(t, HasCode(s.Record(0, OptionAnswer("z")), CodeInvalidAnswer))
	require.NoError(t, s.Record(0, OptionAnswer("b")))
	assert.Equal(t, "b", s.Snapshot().Answers[0].Value())
}

func TestQuizSession_FillBlankAcceptsEmptyText(t *testing.T) {
	quiz := NewQuiz(ModeFillBlank, []Question{{Text: "Water boils at ___ degrees."}}, 1, nil)
	s := NewQuizSession("id", quiz)

	require.NoError(t, s.Record(0, TextAnswer("")))
	got, ok := s.Snapshot().Answers[0]
	require.True(t, ok)
	assert.Equal(t, "", got.Value())
}

func TestQuizSession_SubmitTwice(t *testing.T) {
	s := newTrueFalseSession(5)
	fixed := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	require.NoError(t, s.Record(2, TrueFalseAnswer(true)))

	require.NoError(t, s.Submit())
	first := s.Snapshot()
	assert.True(t, first.Submitted)
	assert.Equal(t, fixed, first.SubmittedAt)

	s.now = func() time.Time { return fixed.Add(time.Hour) }
	err := s.Submit()
	assert.True(t, HasCode(err, CodeAlreadySubmitted))

	second := s.Snapshot()
	assert.True(t, second.Submitted)
	assert.Equal(t, first.Answers, second.Answers)
	assert.Equal(t, fixed, second.SubmittedAt)
}

func TestQuizSession_PartialSubmitAndLockedAnswers(t *testing.T) {
	s := newTrueFalseSession(3)
	require.NoError(t, s.Submit())

	err := s.Record(0, TrueFalseAnswer(true))
	assert.True(t, HasCode(err, CodeAlreadySubmitted))
	assert.Empty(t, s.Snapshot().Answers)
}

func TestQuizSession_SnapshotIsACopy(t *testing.T) {
	s := newTrueFalseSession(2)
	require.NoError(t, s.Record(0, TrueFalseAnswer(true)))

	snap := s.Snapshot()
	snap.Answers[1] = TrueFalseAnswer(false)
	snap.Questions[0].Text = "mutated"

	fresh := s.Snapshot()
	assert.Len(t, fresh.Answers, 1)
	assert.Equal(t, "Statement?", fresh.Questions[0].Text)
	assert.Equal(t, ModeTrueFalse, fresh.Mode)
	assert.Equal(t, "01HZXTESTSESSION0000000000", fresh.ID)
}
