package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"trivia-quiz-service/internal/domain"
)

// SessionStore keeps each quiz under two fixed keys, one for the question sequence and one
// for the {timestamp, opts} metadata, both plain JSON:
//
//	quiz:session:{id}:questions
//	quiz:session:{id}:meta
//
// Both keys are written in one MULTI/EXEC so a reader never sees questions from one quiz
// next to metadata from another.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, session domain.QuizSession) error {
	questions, err := json.Marshal(session.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	meta, err := json.Marshal(session.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, questionsKey(session.ID), questions, s.ttl)
		pipe.Set(ctx, metaKey(session.ID), meta, s.ttl)
		return nil
	})
	return err
}

func (s *SessionStore) Load(ctx context.Context, id string) (domain.QuizSession, error) {
	rawQuestions, err := s.client.Get(ctx, questionsKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("get questions: %w", err)
	}

	session := domain.QuizSession{ID: id}
	if err := json.Unmarshal(rawQuestions, &session.Questions); err != nil {
		return domain.QuizSession{}, fmt.Errorf("unmarshal questions: %w", err)
	}

	// metadata is informational; a missing key still yields a playable quiz
	rawMeta, err := s.client.Get(ctx, metaKey(id)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return domain.QuizSession{}, fmt.Errorf("get meta: %w", err)
	default:
		if err := json.Unmarshal(rawMeta, &session.Meta); err != nil {
			return domain.QuizSession{}, fmt.Errorf("unmarshal meta: %w", err)
		}
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, questionsKey(id), metaKey(id)).Err()
}

func questionsKey(id string) string {
	return "quiz:session:" + id + ":questions"
}

func metaKey(id string) string {
	return "quiz:session:" + id + ":meta"
}
