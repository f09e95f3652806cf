package redis

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"trivia-quiz-service/internal/domain"
)

const categoriesKey = "trivia:categories"

// CategoryLoader fetches the category catalog from the provider.
type CategoryLoader interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// CategoryRepository caches the category catalog in Redis so every instance shares one copy.
// Categories are stored as: HSET trivia:categories {id} {name}
type CategoryRepository struct {
	client *redis.Client
	loader CategoryLoader
	ttl    time.Duration
	logger *zap.Logger
	sf     singleflight.Group
	rnd    *rand.Rand // only used inside sf
}

func NewCategoryRepository(client *redis.Client, loader CategoryLoader, ttl time.Duration, logger *zap.Logger) *CategoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CategoryRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	cached, err := r.client.HGetAll(ctx, categoriesKey).Result()
	if err == nil && len(cached) > 0 {
		return buildCategoriesFromCache(cached), nil
	}

	result, err, _ := r.sf.Do(categoriesKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := r.client.HGetAll(ctx, categoriesKey).Result()
		if err == nil && len(cached) > 0 {
			return buildCategoriesFromCache(cached), nil
		}

		cats, err := r.loader.Categories(ctx)
		if err != nil {
			return nil, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for _, c := range cats {
			pipe.HSet(ctx, categoriesKey, strconv.Itoa(c.ID), c.Name)
		}
		if ttl > 0 {
			pipe.Expire(ctx, categoriesKey, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			r.logger.Warn("cache categories failed", zap.Int("count", len(cats)), zap.Error(err))
		}

		return sortCategories(cats), nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func buildCategoriesFromCache(cached map[string]string) []domain.Category {
	cats := make([]domain.Category, 0, len(cached))
	for rawID, name := range cached {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			continue
		}
		cats = append(cats, domain.Category{ID: id, Name: name})
	}
	return sortCategories(cats)
}

func sortCategories(cats []domain.Category) []domain.Category {
	out := append([]domain.Category(nil), cats...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *CategoryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
