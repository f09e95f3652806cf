package memory

import (
	"context"
	"sync"

	"trivia-quiz-service/internal/domain"
)

// JobStore keeps job postings in insertion order.
type JobStore struct {
	mu    sync.RWMutex
	order []string
	jobs  map[string]domain.Job
}

func NewJobStore(seed ...domain.Job) *JobStore {
	s := &JobStore{jobs: make(map[string]domain.Job)}
	for _, j := range seed {
		s.order = append(s.order, j.ID)
		s.jobs[j.ID] = j
	}
	return s
}

func (s *JobStore) List(_ context.Context) ([]domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Job, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.jobs[id])
	}
	return out, nil
}

func (s *JobStore) Get(_ context.Context, id string) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return job, nil
}

func (s *JobStore) Insert(_ context.Context, job domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		s.order = append(s.order, job.ID)
	}
	s.jobs[job.ID] = job
	return nil
}

func (s *JobStore) Replace(_ context.Context, job domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	s.jobs[job.ID] = job
	return nil
}

func (s *JobStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(s.jobs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
