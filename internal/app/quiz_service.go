package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/metrics"
	"trivia-quiz-service/internal/quiz"
	"trivia-quiz-service/internal/trivia"
)

// QuestionSource fetches a raw question set from the trivia provider.
type QuestionSource interface {
	Questions(ctx context.Context, opts domain.QueryOptions) ([]domain.RawQuestion, error)
}

// CategoryRepository lists provider categories (usually from a cache).
type CategoryRepository interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
// Save always overwrites whatever was stored under the same id.
type SessionRepository interface {
	Save(ctx context.Context, session domain.QuizSession) error
	Load(ctx context.Context, id string) (domain.QuizSession, error)
	Delete(ctx context.Context, id string) error
}

// QuizService contains the quiz use cases: start, view, validate.
type QuizService struct {
	source     QuestionSource
	sessions   SessionRepository
	categories CategoryRepository
	normalizer *quiz.Normalizer
	logger     *zap.Logger
	now        func() time.Time
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithNormalizer swaps the normalizer, e.g. for a seeded shuffle.
func WithNormalizer(n *quiz.Normalizer) Option {
	return func(s *QuizService) { s.normalizer = n }
}

func NewQuizService(source QuestionSource, sessions SessionRepository, categories CategoryRepository, logger *zap.Logger, opts ...Option) *QuizService {
	s := &QuizService{
		source:     source,
		sessions:   sessions,
		categories: categories,
		normalizer: quiz.NewNormalizer(),
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start fetches and normalizes a question set and stores it as the session's quiz,
// replacing any previous one.
func (s *QuizService) Start(ctx context.Context, sessionID string, opts domain.QueryOptions) (domain.QuizSession, error) {
	opts, err := trivia.NormalizeOptions(opts)
	if err != nil {
		return domain.QuizSession{}, err
	}

	raw, err := s.source.Questions(ctx, opts)
	metrics.TriviaFetches.WithLabelValues(fetchOutcome(err)).Inc()
	if err != nil {
		s.logger.Warn("fetch questions failed",
			zap.String("session", sessionID),
			zap.Any("options", opts),
			zap.Error(err))
		return domain.QuizSession{}, err
	}

	session := domain.QuizSession{
		ID:        sessionID,
		Questions: s.normalizer.Normalize(raw, opts.Encoding),
		Meta: domain.SessionMeta{
			Timestamp: s.now(),
			Options:   opts,
		},
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.QuizSession{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("quiz started",
		zap.String("session", sessionID),
		zap.Int("questions", len(session.Questions)))
	return session, nil
}

// Session returns the stored quiz or domain.ErrSessionNotFound.
func (s *QuizService) Session(ctx context.Context, sessionID string) (domain.QuizSession, error) {
	if sessionID == "" {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	return s.sessions.Load(ctx, sessionID)
}

// View renders the quiz with the current selection and no annotations.
func (s *QuizService) View(ctx context.Context, sessionID string, sel domain.AnswerSelection) (domain.RenderModel, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.RenderModel{}, err
	}
	return quiz.Render(session, sel, nil), nil
}

// Select checks that answer is offered by question index and returns the updated selection.
func (s *QuizService) Select(ctx context.Context, sessionID string, sel domain.AnswerSelection, index int, answer string) (domain.AnswerSelection, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return sel, err
	}
	return quiz.Choose(session.Questions, sel, index, answer)
}

// Validate scores the selection and renders the annotated quiz. Every call recomputes from
// the given selection.
func (s *QuizService) Validate(ctx context.Context, sessionID string, sel domain.AnswerSelection) (domain.RenderModel, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.RenderModel{}, err
	}
	result := quiz.Score(session.Questions, sel)
	metrics.Validations.Inc()
	return quiz.Render(session, sel, &result), nil
}

// Discard drops the session's quiz so the user starts over.
func (s *QuizService) Discard(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Categories returns the provider categories, or none when no catalog is configured.
func (s *QuizService) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.categories == nil {
		return nil, nil
	}
	return s.categories.Categories(ctx)
}

func fetchOutcome(err error) string {
	var httpErr *domain.HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNoQuestionsAvailable):
		return "no_questions"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.Is(err, domain.ErrNetwork):
		return "network_error"
	default:
		return "error"
	}
}
