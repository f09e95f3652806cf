package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
)

func newJobsServer(t *testing.T, seed ...domain.Job) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewJobsRouter(app.NewJobService(memory.NewJobStore(seed...)), zap.NewNop()))
	t.Cleanup(server.Close)
	return server
}

func TestJobsHandlerCRUD(t *testing.T) {
	server := newJobsServer(t, domain.Job{ID: "1", Title: "Senior Vue Developer", Type: "Full-Time"})
	client := server.Client()

	resp := postJSON(t, client, server.URL+"/jobs", `{"title":"Go Engineer","type":"Remote","company":{"name":"Acme"}}`)
	var created domain.Job
	decodeBody(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Acme", created.Company.Name)

	resp, err := client.Get(server.URL + "/jobs")
	require.NoError(t, err)
	var jobs []domain.Job
	decodeBody(t, resp, &jobs)
	require.Len(t, jobs, 2)
	require.Equal(t, "1", jobs[0].ID)

	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/jobs/"+created.ID, bytes.NewBufferString(`{"salary":"$100K","company":{"contactEmail":"jobs@acme.test"}}`))
	resp, err = client.Do(req)
	require.NoError(t, err)
	var updated domain.Job
	decodeBody(t, resp, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "$100K", updated.Salary)
	require.Equal(t, "Go Engineer", updated.Title)
	require.Equal(t, "Acme", updated.Company.Name)
	require.Equal(t, "jobs@acme.test", updated.Company.ContactEmail)

	req, _ = http.NewRequest(http.MethodDelete, server.URL+"/jobs/"+created.ID, nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(server.URL + "/jobs/" + created.ID)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJobsHandlerRejectsMissingTitle(t *testing.T) {
	server := newJobsServer(t)

	resp := postJSON(t, server.Client(), server.URL+"/jobs", `{"type":"Part-Time"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, server.Client(), server.URL+"/jobs", `{not json`)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJobsHandlerCORSPreflight(t *testing.T) {
	server := newJobsServer(t)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/jobs/1", nil)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PATCH")
}
