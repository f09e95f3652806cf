package http

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// APIHandler is the JSON rendition of the quiz views.
type APIHandler struct {
	service *app.QuizService
	logger  *zap.Logger
}

func NewAPIHandler(service *app.QuizService, logger *zap.Logger) *APIHandler {
	return &APIHandler{service: service, logger: logger}
}

type validateRequest struct {
	Answers map[string]string `json:"answers"`
}

type startResponse struct {
	SessionID string             `json:"sessionId"`
	Questions int                `json:"questions"`
	Meta      domain.SessionMeta `json:"meta"`
}

// Quiz returns the render model of the stored quiz.
func (h *APIHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	model, err := h.service.View(r.Context(), sessionID(r), nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

// Start fetches a new question set using the JSON-encoded options in the body.
func (h *APIHandler) Start(w http.ResponseWriter, r *http.Request) {
	var opts domain.QueryOptions
	if err := decodeJSON(r, &opts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := h.service.Start(r.Context(), sessionID(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, startResponse{
		SessionID: session.ID,
		Questions: len(session.Questions),
		Meta:      session.Meta,
	})
}

// Validate scores {"answers": {"0": "True"}} against the stored quiz. Every entry must name
// an answer the question offers.
func (h *APIHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sel := domain.AnswerSelection{}
	for key, answer := range body.Answers {
		i, err := strconv.Atoi(key)
		if err != nil {
			writeError(w, http.StatusBadRequest, "answer keys must be question indexes")
			return
		}
		next, err := h.service.Select(r.Context(), sessionID(r), sel, i, answer)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		sel = next
	}

	model, err := h.service.Validate(r.Context(), sessionID(r), sel)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

// Categories lists the provider categories for the setup form.
func (h *APIHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *domain.HTTPError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "No quiz found. Go back to start page.")
	case errors.Is(err, domain.ErrInvalidOptions),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoQuestionsAvailable):
		writeError(w, http.StatusUnprocessableEntity, msgNoQuestions)
	case errors.Is(err, domain.ErrNetwork), errors.As(err, &httpErr):
		writeError(w, http.StatusBadGateway, msgFetchFailed)
	default:
		h.logger.Error("quiz api failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
