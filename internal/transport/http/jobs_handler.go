package http

import (
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/metrics"
)

// JobsHandler exposes the job-board REST resource under /jobs.
type JobsHandler struct {
	service *app.JobService
	logger  *zap.Logger
}

func NewJobsHandler(service *app.JobService, logger *zap.Logger) *JobsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobsHandler{service: service, logger: logger}
}

// NewJobsRouter builds the standalone job-board API.
func NewJobsRouter(service *app.JobService, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(metrics.Middleware)

	h := NewJobsHandler(service, logger)
	r.HandleFunc("/jobs", h.List).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/jobs", h.Create).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/jobs/{id}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/jobs/{id}", h.Update).Methods(http.MethodPatch, http.MethodOptions)
	r.HandleFunc("/jobs/{id}", h.Delete).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := decodeJSON(r, &job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.service.Create(r.Context(), job)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.JobPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.service.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *JobsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidJob):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("jobs api failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
