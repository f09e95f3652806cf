package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/metrics"
)

// Container holds the dependencies of the quiz web router.
type Container struct {
	Quiz       *app.QuizService
	Logger     *zap.Logger
	CookieName string
	// Metrics mounts /metrics when set.
	Metrics http.Handler
}

// NewRouter wires the setup page, quiz view, JSON API and websocket endpoint.
func NewRouter(c *Container) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	if c.Metrics != nil {
		r.Handle("/metrics", c.Metrics).Methods(http.MethodGet)
	}

	pages := NewPageHandler(c.Quiz, logger)
	api := NewAPIHandler(c.Quiz, logger)
	ws := NewWSHandler(c.Quiz, logger)

	session := r.NewRoute().Subrouter()
	session.Use(sessionMiddleware(c.CookieName))

	session.HandleFunc("/", pages.Setup).Methods(http.MethodGet)
	session.HandleFunc("/quiz", pages.Start).Methods(http.MethodPost)
	session.HandleFunc("/quiz", pages.Quiz).Methods(http.MethodGet)
	session.HandleFunc("/quiz/validate", pages.Validate).Methods(http.MethodPost)
	session.HandleFunc("/quiz/reset", pages.Reset).Methods(http.MethodPost)

	session.HandleFunc("/api/quiz", api.Quiz).Methods(http.MethodGet)
	session.HandleFunc("/api/quiz", api.Start).Methods(http.MethodPost)
	session.HandleFunc("/api/quiz/validate", api.Validate).Methods(http.MethodPost)
	session.HandleFunc("/api/categories", api.Categories).Methods(http.MethodGet)

	session.HandleFunc("/ws", ws.ServeWS).Methods(http.MethodGet)

	return r
}
