package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-quiz-service/internal/domain"
)

func TestSessionStoreWritesBothKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr), time.Minute)

	session := sampleSession()
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("quiz:session:s1:questions") || !mr.Exists("quiz:session:s1:meta") {
		t.Fatalf("expected both session keys to be set")
	}
	if ttl := mr.TTL("quiz:session:s1:questions"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Questions) != 1 || got.Questions[0].CorrectAnswer != "True" {
		t.Fatalf("unexpected questions %+v", got.Questions)
	}
	if got.Meta.Options.Amount != 1 || !got.Meta.Timestamp.Equal(session.Meta.Timestamp) {
		t.Fatalf("unexpected meta %+v", got.Meta)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("quiz:session:s1:questions") || mr.Exists("quiz:session:s1:meta") {
		t.Fatalf("expected session keys to be removed")
	}
}

func TestSessionStoreMissingSession(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	if _, err := store.Load(context.Background(), "nope"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreExpiresWithTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr), time.Minute)
	_ = store.Save(ctx, sampleSession())

	mr.FastForward(2 * time.Minute)
	if _, err := store.Load(ctx, "s1"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func sampleSession() domain.QuizSession {
	return domain.QuizSession{
		ID: "s1",
		Questions: []domain.Question{{
			Question:      "The sky is blue.",
			CorrectAnswer: "True",
			AllAnswers:    []string{"True", "False"},
			Type:          domain.QuestionBoolean,
		}},
		Meta: domain.SessionMeta{
			Timestamp: time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC),
			Options:   domain.QueryOptions{Amount: 1, Type: "boolean", Encoding: domain.EncodingDefault},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
