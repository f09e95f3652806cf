package memory

import (
	"context"
	"testing"
	"time"

	"trivia-quiz-service/internal/domain"
)

func TestCategoryRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		CategoryLoader: NewStaticCategoryLoader(sampleCategories()),
	}
	repo := NewCategoryRepository(loader, time.Minute)

	if _, err := repo.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	cats, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if len(cats) != 2 || cats[1].Name != "Science & Nature" {
		t.Fatalf("unexpected categories %+v", cats)
	}
}

func TestCategoryRepositoryReloadsAfterTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loader := &countingLoader{CategoryLoader: NewStaticCategoryLoader(sampleCategories())}
	repo := NewCategoryRepository(loader, time.Minute)
	repo.clock = func() time.Time { return now }

	_, _ = repo.Categories(context.Background())
	now = now.Add(2 * time.Minute)
	_, _ = repo.Categories(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, got %d calls", loader.calls)
	}
}

type countingLoader struct {
	CategoryLoader
	calls int
}

func (l *countingLoader) Categories(ctx context.Context) ([]domain.Category, error) {
	l.calls++
	return l.CategoryLoader.Categories(ctx)
}

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 17, Name: "Science & Nature"},
	}
}
