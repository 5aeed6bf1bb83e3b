package service

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/prompt"
	"quiz-forge/internal/sanitize"
	"quiz-forge/internal/util"
	"quiz-forge/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// GenerateInput is one upload to turn into a quiz.
type GenerateInput struct {
	Data          []byte
	DeclaredType  string
	Mode          domain.DifficultyMode
	QuestionCount int
}

// QuizService runs the generation pipeline and owns the single active quiz session.
type QuizService interface {
	Generate(ctx context.Context, in GenerateInput) (domain.SessionSnapshot, error)
	Session() (domain.SessionSnapshot, error)
	RecordAnswer(index int, answer domain.Answer) (domain.SessionSnapshot, error)
	Submit() (domain.SessionSnapshot, error)
	// Abandon discards the outstanding generation, if any, and reports whether there was one.
	Abandon() bool
	InFlight() bool
}

// completionForgetter is implemented by generation clients that cache completions.
type completionForgetter interface {
	Forget(ctx context.Context, prompt string)
}

type quizService struct {
	extractor domain.TextExtractor
	client    domain.GenerationClient
	cfg       config.QuizConfig
	newID     func() string

	guard *semaphore.Weighted

	mu      sync.Mutex
	seq     uint64
	active  uint64
	cancel  context.CancelFunc
	session *domain.QuizSession
}

// NewQuizService creates a new instance of quizService
func NewQuizService(extractor domain.TextExtractor, client domain.GenerationClient, cfg config.QuizConfig) QuizService {
	return &quizService{
		extractor: extractor,
		client:    client,
		cfg:       cfg,
		newID:     util.NewULID,
		guard:     semaphore.NewWeighted(1),
	}
}

// Generate runs extract, prompt, generate, sanitize and validate, then replaces the
// active session. Any failure leaves the previous session in place.
func (s *quizService) Generate(ctx context.Context, in GenerateInput) (domain.SessionSnapshot, error) {
	if !s.guard.TryAcquire(1) {
		return domain.SessionSnapshot{}, domain.NewGenerationInProgressError()
	}
	defer s.guard.Release(1)

	ctx, seq := s.begin(ctx)
	defer s.finish(seq)

	l := logger.Get().With(zap.Uint64("sequence", seq), zap.String("mode", in.Mode.String()))
	started := time.Now()

	text, err := s.extractor.Extract(ctx, in.Data, in.DeclaredType)
	if err != nil {
		return domain.SessionSnapshot{}, s.discardIfStale(seq, err)
	}
	text = s.truncate(text, l)

	count := in.QuestionCount
	if count == 0 {
		count = s.cfg.DefaultCount
	}
	req, err := domain.NewQuizRequest(text, in.Mode, count)
	if err != nil {
		return domain.SessionSnapshot{}, err
	}

	p, err := prompt.Build(req)
	if err != nil {
		return domain.SessionSnapshot{}, err
	}
	l.Info("Requesting quiz generation",
		zap.Int("source_length", utf8.RuneCountInString(req.SourceText)),
		zap.Int("question_count", req.QuestionCount),
		zap.Int("prompt_length", len(p)))

	raw, err := s.client.Generate(ctx, p)
	if err != nil {
		return domain.SessionSnapshot{}, s.discardIfStale(seq, err)
	}

	quiz, err := validation.ValidateQuiz(sanitize.Response(raw), req)
	if err != nil {
		l.Warn("Generated quiz rejected", zap.Error(err), zap.Int("raw_length", len(raw)))
		if f, ok := s.client.(completionForgetter); ok {
			f.Forget(context.WithoutCancel(ctx), p)
		}
		return domain.SessionSnapshot{}, s.discardIfStale(seq, err)
	}
	for _, a := range quiz.Advisories() {
		l.Warn("Quiz advisory", zap.String("kind", string(a.Kind)), zap.Int("index", a.Index), zap.String("message", a.Message))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.active {
		l.Info("Discarding quiz from abandoned generation")
		return domain.SessionSnapshot{}, domain.NewGenerationAbandonedError(seq)
	}
	s.session = domain.NewQuizSession(s.newID(), quiz)
	l.Info("Quiz session created",
		zap.String("session_id", s.session.ID()),
		zap.Int("questions", quiz.Len()),
		zap.Duration("elapsed", time.Since(started)))
	return s.session.Snapshot(), nil
}

func (s *quizService) begin(ctx context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.active = s.seq
	s.cancel = cancel
	return ctx, s.seq
}

func (s *quizService) finish(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil && s.active == seq {
		s.cancel()
		s.cancel = nil
		s.active = 0
	}
}

// discardIfStale replaces err with GENERATION_ABANDONED when the attempt is no longer active.
func (s *quizService) discardIfStale(seq uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.active {
		return domain.NewGenerationAbandonedError(seq)
	}
	return err
}

func (s *quizService) truncate(text string, l *zap.Logger) string {
	limit := s.cfg.MaxSourceRunes
	if limit <= 0 || limit > domain.MaxSourceRunes {
		limit = domain.MaxSourceRunes
	}
	n := utf8.RuneCountInString(text)
	if n <= limit {
		return text
	}
	cut := 0
	for i := 0; i < limit; i++ {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	l.Warn("Source text truncated", zap.Int("characters", n), zap.Int("limit", limit))
	return text[:cut]
}

func (s *quizService) Abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == 0 {
		return false
	}
	logger.Get().Info("Abandoning quiz generation", zap.Uint64("sequence", s.active))
	s.cancel()
	s.cancel = nil
	s.active = 0
	return true
}

func (s *quizService) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != 0
}

func (s *quizService) Session() (domain.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.SessionSnapshot{}, domain.NewNoSessionError()
	}
	return s.session.Snapshot(), nil
}

func (s *quizService) RecordAnswer(index int, answer domain.Answer) (domain.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.SessionSnapshot{}, domain.NewNoSessionError()
	}
	if err := s.session.Record(index, answer); err != nil {
		return domain.SessionSnapshot{}, err
	}
	return s.session.Snapshot(), nil
}

func (s *quizService) Submit() (domain.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.SessionSnapshot{}, domain.NewNoSessionError()
	}
	if err := s.session.Submit(); err != nil {
		return domain.SessionSnapshot{}, err
	}
	snap := s.session.Snapshot()
	logger.Get().Info("Quiz submitted",
		zap.String("session_id", snap.ID),
		zap.Int("answered", snap.Answered()),
		zap.Int("questions", len(snap.Questions)))
	return snap, nil
}
