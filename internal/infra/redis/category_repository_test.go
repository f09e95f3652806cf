package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
)

func TestCategoryRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		CategoryLoader: memory.NewStaticCategoryLoader([]domain.Category{
			{ID: 17, Name: "Science & Nature"},
			{ID: 9, Name: "General Knowledge"},
		}),
	}
	repo := NewCategoryRepository(newClient(mr), loader, time.Minute, zap.NewNop())

	first, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if got := mr.HGet("trivia:categories", "9"); got != "General Knowledge" {
		t.Fatalf("expected hash entry, got %q", got)
	}

	// Second call should hit cache, loader not incremented.
	second, _ := repo.Categories(context.Background())
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(second) != 2 || second[0] != first[0] || second[0].Name != "General Knowledge" {
		t.Fatalf("expected same sorted categories, got %+v vs %+v", first, second)
	}
}

func TestCategoryRepositoryLogsFailedCacheWrite(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	defer client.Close()
	mr.Close()

	core, logs := observer.New(zap.WarnLevel)
	loader := &countingLoader{
		CategoryLoader: memory.NewStaticCategoryLoader([]domain.Category{{ID: 9, Name: "General Knowledge"}}),
	}
	repo := NewCategoryRepository(client, loader, time.Minute, zap.New(core))

	cats, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories should survive a cache outage: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "General Knowledge" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	entries := logs.FilterMessage("cache categories failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one cache warning, got %d", len(entries))
	}
	if _, ok := entries[0].ContextMap()["error"]; !ok {
		t.Fatalf("expected error field in %+v", entries[0].ContextMap())
	}
}

type countingLoader struct {
	memory.CategoryLoader
	calls int
}

func (l *countingLoader) Categories(ctx context.Context) ([]domain.Category, error) {
	l.calls++
	return l.CategoryLoader.Categories(ctx)
}
