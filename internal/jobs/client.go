// Package jobs is a thin client for a job-board REST backend. Every method maps to exactly one
// HTTP request; there is no retry, caching or optimistic update.
package jobs

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	"trivia-quiz-service/internal/domain"
)

// DefaultBaseURL is where the bundled backend listens by default.
const DefaultBaseURL = "http://localhost:3000"

type Client struct {
	http    *req.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := req.C().
		SetTimeout(timeout).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetCommonHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// List is GET /jobs.
func (c *Client) List(ctx context.Context) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.do(ctx, http.MethodGet, c.jobsURL(""), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get is GET /jobs/{id}.
func (c *Client) Get(ctx context.Context, id string) (domain.Job, error) {
	var out domain.Job
	err := c.do(ctx, http.MethodGet, c.jobsURL(id), nil, &out)
	return out, err
}

// Create is POST /jobs; the backend assigns the id.
func (c *Client) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	var out domain.Job
	err := c.do(ctx, http.MethodPost, c.jobsURL(""), job, &out)
	return out, err
}

// Update is PATCH /jobs/{id} with only the fields set in patch.
func (c *Client) Update(ctx context.Context, id string, patch domain.JobPatch) (domain.Job, error) {
	var out domain.Job
	err := c.do(ctx, http.MethodPatch, c.jobsURL(id), patch, &out)
	return out, err
}

// Delete is DELETE /jobs/{id}.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.jobsURL(id), nil, nil)
}

func (c *Client) jobsURL(id string) string {
	if id == "" {
		return c.baseURL + "/jobs"
	}
	return c.baseURL + "/jobs/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, dst any) error {
	r := c.http.R().SetContext(ctx)
	if body != nil {
		r.SetBodyJsonMarshal(body)
	}

	resp, err := r.Send(method, endpoint)
	if err != nil {
		return &domain.NetworkError{Err: errors.Wrapf(err, "%v %v", method, endpoint)}
	}
	if !resp.IsSuccessState() {
		return &domain.HTTPError{StatusCode: resp.GetStatusCode()}
	}
	if dst == nil {
		return nil
	}
	data, err := resp.ToBytes()
	if err != nil {
		return &domain.NetworkError{Err: errors.Wrapf(err, "failed to read body of `%v`", endpoint)}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.UnmarshalContext(ctx, data, dst); err != nil {
		return errors.Wrapf(err, "failed to unmarshal response of `%v`", endpoint)
	}
	return nil
}
