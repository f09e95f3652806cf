package http

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"trivia-quiz-service/internal/domain"
)

func TestAPIQuizFlow(t *testing.T) {
	server := newTestServer(t, &stubSource{raw: sampleRaw()})
	browser := newBrowser(t)

	resp, err := browser.Get(server.URL + "/api/quiz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, browser, server.URL+"/api/quiz", `{"amount":2,"encode":"default"}`)
	var started startResponse
	decodeBody(t, resp, &started)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, 2, started.Questions)
	require.NotEmpty(t, started.SessionID)
	require.Equal(t, 2, started.Meta.Options.Amount)

	resp, err = browser.Get(server.URL + "/api/quiz")
	require.NoError(t, err)
	var view domain.RenderModel
	decodeBody(t, resp, &view)
	require.Len(t, view.Questions, 2)
	require.Equal(t, "Question 2 of 2", view.Questions[1].Header)
	require.Equal(t, "Science & Nature", view.Questions[0].Category)
	require.Nil(t, view.Result)

	resp = postJSON(t, browser, server.URL+"/api/quiz/validate", `{"answers":{"0":"True","1":"Jupiter"}}`)
	var scored domain.RenderModel
	decodeBody(t, resp, &scored)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "2 / 2", scored.Score)
	require.NotNil(t, scored.Result)
	require.Equal(t, 2, scored.Result.Correct)
}

func TestAPIValidateRejectsUnknownAnswer(t *testing.T) {
	server := newTestServer(t, &stubSource{raw: sampleRaw()})
	browser := newBrowser(t)

	resp := postJSON(t, browser, server.URL+"/api/quiz", `{"amount":2}`)
	resp.Body.Close()

	resp = postJSON(t, browser, server.URL+"/api/quiz/validate", `{"answers":{"0":"Maybe"}}`)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, browser, server.URL+"/api/quiz/validate", `{"answers":{"7":"True"}}`)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIStartNoQuestions(t *testing.T) {
	server := newTestServer(t, &stubSource{err: &domain.NoQuestionsError{ResponseCode: 1}})

	resp := postJSON(t, newBrowser(t), server.URL+"/api/quiz", `{"amount":50,"category":"13"}`)
	var body errorResponse
	decodeBody(t, resp, &body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, msgNoQuestions, body.Error)
}

func TestAPICategories(t *testing.T) {
	server := newTestServer(t, &stubSource{})

	resp, err := newBrowser(t).Get(server.URL + "/api/categories")
	require.NoError(t, err)
	var cats []domain.Category
	decodeBody(t, resp, &cats)
	require.Equal(t, sampleCategories(), cats)
}

func postJSON(t *testing.T, client *http.Client, target, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(target, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
