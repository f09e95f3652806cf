package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

const (
	msgNoQuestions   = "No questions available with these settings. Try different options."
	msgFetchFailed   = "Failed to fetch questions. Check your network and try again."
	msgInvalidOption = "Invalid quiz settings. Amount must be between 1 and 50."
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type choice struct {
	Value    string
	Label    string
	Selected bool
}

type setupPage struct {
	Error        string
	Amount       int
	Categories   []choice
	Difficulties []choice
	Types        []choice
	Encodings    []choice
}

type quizPage struct {
	Found bool
	Model domain.RenderModel
}

// PageHandler serves the server-rendered setup and quiz views.
type PageHandler struct {
	service *app.QuizService
	logger  *zap.Logger
}

func NewPageHandler(service *app.QuizService, logger *zap.Logger) *PageHandler {
	return &PageHandler{service: service, logger: logger}
}

// Setup renders the options form.
func (h *PageHandler) Setup(w http.ResponseWriter, r *http.Request) {
	h.renderSetup(w, r, http.StatusOK, domain.QueryOptions{}, "")
}

// Start fetches a new question set and redirects to the quiz view. Failures re-render the
// setup form with a message; the previous quiz, if any, is left in place.
func (h *PageHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSetup(w, r, http.StatusBadRequest, domain.QueryOptions{}, msgInvalidOption)
		return
	}
	opts, err := optionsFromForm(r)
	if err != nil {
		h.renderSetup(w, r, http.StatusBadRequest, opts, msgInvalidOption)
		return
	}

	if _, err := h.service.Start(r.Context(), sessionID(r), opts); err != nil {
		status, msg := startFailure(err)
		h.renderSetup(w, r, status, opts, msg)
		return
	}
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// Quiz renders the stored quiz with nothing selected.
func (h *PageHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	model, err := h.service.View(r.Context(), sessionID(r), nil)
	h.renderQuiz(w, r, model, err)
}

// Validate scores the submitted radio groups and re-renders the quiz with marks and score.
func (h *PageHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	model, err := h.service.Validate(r.Context(), sessionID(r), selectionFromForm(r))
	h.renderQuiz(w, r, model, err)
}

// Reset discards the quiz and goes back to the setup page.
func (h *PageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Discard(r.Context(), sessionID(r)); err != nil {
		h.logger.Warn("discard session failed", zap.String("session", sessionID(r)), zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) renderSetup(w http.ResponseWriter, r *http.Request, status int, opts domain.QueryOptions, msg string) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		// the form still works with "Any Category"
		h.logger.Warn("load categories failed", zap.Error(err))
	}
	h.render(w, status, "setup.html", newSetupPage(opts, cats, msg))
}

func newSetupPage(opts domain.QueryOptions, cats []domain.Category, msg string) setupPage {
	amount := opts.Amount
	if amount <= 0 {
		amount = 10
	}
	categories := []choice{{Value: "any", Label: "Any Category"}}
	for _, c := range cats {
		categories = append(categories, choice{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return setupPage{
		Error:      msg,
		Amount:     amount,
		Categories: pick(categories, opts.Category, "any"),
		Difficulties: pick([]choice{
			{Value: "any", Label: "Any Difficulty"},
			{Value: "easy", Label: "Easy"},
			{Value: "medium", Label: "Medium"},
			{Value: "hard", Label: "Hard"},
		}, opts.Difficulty, "any"),
		Types: pick([]choice{
			{Value: "any", Label: "Any Type"},
			{Value: "multiple", Label: "Multiple Choice"},
			{Value: "boolean", Label: "True / False"},
		}, opts.Type, "any"),
		Encodings: pick([]choice{
			{Value: string(domain.EncodingDefault), Label: "Default Encoding"},
			{Value: string(domain.EncodingLegacy), Label: "Legacy URL Encoding"},
			{Value: string(domain.EncodingURL3986), Label: "URL Encoding (RFC 3986)"},
			{Value: string(domain.EncodingBase64), Label: "Base64 Encoding"},
		}, string(opts.Encoding), string(domain.EncodingDefault)),
	}
}

func pick(choices []choice, value, fallback string) []choice {
	if value == "" {
		value = fallback
	}
	for i := range choices {
		choices[i].Selected = choices[i].Value == value
	}
	return choices
}

func (h *PageHandler) renderQuiz(w http.ResponseWriter, r *http.Request, model domain.RenderModel, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		h.render(w, http.StatusOK, "quiz.html", quizPage{Found: false})
	case err != nil:
		h.logger.Error("render quiz failed", zap.String("session", sessionID(r)), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		h.render(w, http.StatusOK, "quiz.html", quizPage{Found: true, Model: model})
	}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf strings.Builder
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("execute template failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func startFailure(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidOptions):
		return http.StatusBadRequest, msgInvalidOption
	case errors.Is(err, domain.ErrNoQuestionsAvailable):
		return http.StatusOK, msgNoQuestions
	default:
		return http.StatusBadGateway, msgFetchFailed
	}
}

func optionsFromForm(r *http.Request) (domain.QueryOptions, error) {
	opts := domain.QueryOptions{
		Category:   r.FormValue("category"),
		Difficulty: r.FormValue("difficulty"),
		Type:       r.FormValue("type"),
		Encoding:   domain.Encoding(r.FormValue("encode")),
	}
	if raw := strings.TrimSpace(r.FormValue("amount")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, domain.ErrInvalidOptions
		}
		opts.Amount = n
	}
	return opts, nil
}

// selectionFromForm reads radio groups named q{i}. Groups with nothing checked are absent
// from the form and stay unanswered.
func selectionFromForm(r *http.Request) domain.AnswerSelection {
	sel := domain.AnswerSelection{}
	for key, values := range r.PostForm {
		rest, ok := strings.CutPrefix(key, "q")
		if !ok || len(values) == 0 {
			continue
		}
		i, err := strconv.Atoi(rest)
		if err != nil || i < 0 || strconv.Itoa(i) != rest {
			continue
		}
		sel[i] = values[0]
	}
	return sel
}
