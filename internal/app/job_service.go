package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"trivia-quiz-service/internal/domain"
)

// JobRepository persists job postings.
type JobRepository interface {
	List(ctx context.Context) ([]domain.Job, error)
	Get(ctx context.Context, id string) (domain.Job, error)
	Insert(ctx context.Context, job domain.Job) error
	Replace(ctx context.Context, job domain.Job) error
	Delete(ctx context.Context, id string) error
}

// JobService backs the job-board REST API.
type JobService struct {
	jobs  JobRepository
	newID func() string
}

func NewJobService(jobs JobRepository) *JobService {
	return &JobService{jobs: jobs, newID: uuid.NewString}
}

func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.List(ctx)
}

func (s *JobService) Get(ctx context.Context, id string) (domain.Job, error) {
	return s.jobs.Get(ctx, id)
}

// Create assigns a fresh id and stores the job.
func (s *JobService) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	if err := validateJob(job); err != nil {
		return domain.Job{}, err
	}
	job.ID = s.newID()
	if err := s.jobs.Insert(ctx, job); err != nil {
		return domain.Job{}, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

// Update applies only the fields present in patch.
func (s *JobService) Update(ctx context.Context, id string, patch domain.JobPatch) (domain.Job, error) {
	current, err := s.jobs.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	updated := patch.Apply(current)
	if err := validateJob(updated); err != nil {
		return domain.Job{}, err
	}
	if err := s.jobs.Replace(ctx, updated); err != nil {
		return domain.Job{}, fmt.Errorf("replace job: %w", err)
	}
	return updated, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}

func validateJob(job domain.Job) error {
	if strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidJob)
	}
	return nil
}
