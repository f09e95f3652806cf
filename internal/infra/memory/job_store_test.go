package memory

import (
	"context"
	"testing"

	"trivia-quiz-service/internal/domain"
)

func TestJobStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewJobStore(domain.Job{ID: "1", Title: "Senior Vue Developer"})

	if err := store.Insert(ctx, domain.Job{ID: "2", Title: "Backend Engineer"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	jobs, _ := store.List(ctx)
	if len(jobs) != 2 || jobs[0].ID != "1" || jobs[1].ID != "2" {
		t.Fatalf("expected insertion order, got %+v", jobs)
	}

	if err := store.Replace(ctx, domain.Job{ID: "2", Title: "Go Engineer"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ := store.Get(ctx, "2")
	if got.Title != "Go Engineer" {
		t.Fatalf("expected replaced title, got %q", got.Title)
	}

	if err := store.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "1"); err != domain.ErrJobNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Replace(ctx, domain.Job{ID: "missing"}); err != domain.ErrJobNotFound {
		t.Fatalf("expected not found on replace, got %v", err)
	}
}
