package trivia

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"trivia-quiz-service/internal/domain"
)

const (
	DefaultBaseURL = "https://opentdb.com"
	// DefaultRateInterval is the provider's one-request-per-IP window.
	DefaultRateInterval = 5 * time.Second
)

type questionsResponse struct {
	ResponseCode int                  `json:"response_code"`
	Results      []domain.RawQuestion `json:"results"`
}

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

// Client talks to the Open Trivia DB. Each call makes exactly one request; nothing is retried.
type Client struct {
	http    *req.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient builds a client. A non-positive interval disables pacing.
func NewClient(baseURL string, timeout, interval time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	httpClient := req.C().
		SetTimeout(timeout).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetCommonHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Questions fetches one raw question set. A non-zero response_code becomes a
// *domain.NoQuestionsError.
func (c *Client) Questions(ctx context.Context, opts domain.QueryOptions) ([]domain.RawQuestion, error) {
	opts, err := NormalizeOptions(opts)
	if err != nil {
		return nil, err
	}

	var out questionsResponse
	if err := c.get(ctx, c.baseURL+"/api.php?"+BuildQuery(opts), &out); err != nil {
		return nil, err
	}
	if out.ResponseCode != 0 {
		return nil, &domain.NoQuestionsError{ResponseCode: out.ResponseCode}
	}
	return out.Results, nil
}

// Categories lists the provider's question categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out categoriesResponse
	if err := c.get(ctx, c.baseURL+"/api_category.php", &out); err != nil {
		return nil, err
	}
	return out.TriviaCategories, nil
}

func (c *Client) get(ctx context.Context, url string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "waiting for provider rate limit")
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return &domain.NetworkError{Err: errors.Wrapf(err, "GET %v", url)}
	}
	if !resp.IsSuccessState() {
		return &domain.HTTPError{StatusCode: resp.GetStatusCode()}
	}
	data, err := resp.ToBytes()
	if err != nil {
		return &domain.NetworkError{Err: errors.Wrapf(err, "failed to read body of `%v`", url)}
	}
	if err := json.UnmarshalContext(ctx, data, dst); err != nil {
		return errors.Wrapf(err, "failed to unmarshal response of `%v`", url)
	}
	return nil
}
