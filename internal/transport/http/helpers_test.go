package http

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
	"trivia-quiz-service/internal/quiz"
)

var errSimulated = errors.New("connection refused")

type stubSource struct {
	raw []domain.RawQuestion
	err error
}

func (s *stubSource) Questions(_ context.Context, _ domain.QueryOptions) ([]domain.RawQuestion, error) {
	return s.raw, s.err
}

func sampleRaw() []domain.RawQuestion {
	return []domain.RawQuestion{
		{
			Category:         "Science &amp; Nature",
			Type:             "boolean",
			Difficulty:       "easy",
			Question:         "Water is wet.",
			CorrectAnswer:    "True",
			IncorrectAnswers: []string{"False"},
		},
		{
			Category:         "Science &amp; Nature",
			Type:             "multiple",
			Difficulty:       "medium",
			Question:         "Largest planet?",
			CorrectAnswer:    "Jupiter",
			IncorrectAnswers: []string{"Mars", "Venus", "Saturn"},
		},
	}
}

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 17, Name: "Science & Nature"},
	}
}

func newTestServer(t *testing.T, source app.QuestionSource) *httptest.Server {
	t.Helper()
	service := app.NewQuizService(
		source,
		memory.NewSessionStore(time.Hour),
		memory.NewCategoryRepository(memory.NewStaticCategoryLoader(sampleCategories()), time.Minute),
		zap.NewNop(),
		app.WithNormalizer(quiz.NewNormalizerWithRand(rand.New(rand.NewSource(1)))),
	)
	server := httptest.NewServer(NewRouter(&Container{Quiz: service, Logger: zap.NewNop()}))
	t.Cleanup(server.Close)
	return server
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}
