package domain

import (
	"strconv"
	"time"
)

// QuestionType is the provider's type tag.
type QuestionType string

const (
	QuestionMultiple QuestionType = "multiple"
	QuestionBoolean  QuestionType = "boolean"
)

// Encoding is the transport encoding requested from the trivia provider.
type Encoding string

const (
	EncodingDefault Encoding = "default"
	EncodingLegacy  Encoding = "legacy"
	EncodingURL3986 Encoding = "url3986"
	EncodingBase64  Encoding = "base64"
)

// Valid reports whether e is one of the known encodings. Empty means default.
func (e Encoding) Valid() bool {
	switch e {
	case "", EncodingDefault, EncodingLegacy, EncodingURL3986, EncodingBase64:
		return true
	}
	return false
}

// QueryOptions are the user's choices on the setup view.
type QueryOptions struct {
	Amount     int      `json:"amount"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Encoding   Encoding `json:"encode"`
}

// RawQuestion is a question as returned by the provider, possibly transport-encoded.
type RawQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Question is a decoded question with a fixed presentation order for its answers.
// CorrectAnswer always appears in AllAnswers.
type Question struct {
	Question      string       `json:"question"`
	CorrectAnswer string       `json:"correct_answer"`
	AllAnswers    []string     `json:"all_answers"`
	Type          QuestionType `json:"type"`
	Category      string       `json:"category,omitempty"`
	Difficulty    string       `json:"difficulty,omitempty"`
}

// SessionMeta is stored next to the question set.
type SessionMeta struct {
	Timestamp time.Time    `json:"timestamp"`
	Options   QueryOptions `json:"opts"`
}

// QuizSession is the explicit hand-off between the fetch step and the render/score step.
type QuizSession struct {
	ID        string      `json:"id"`
	Questions []Question  `json:"questions"`
	Meta      SessionMeta `json:"meta"`
}

// AnswerSelection maps a question index to the selected answer. A missing key is unanswered.
type AnswerSelection map[int]string

// Clone returns an independent copy.
func (s AnswerSelection) Clone() AnswerSelection {
	out := make(AnswerSelection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Mark annotates an option after validation.
type Mark string

const (
	MarkNone    Mark = ""
	MarkCorrect Mark = "correct"
	MarkWrong   Mark = "wrong"
)

// OptionResult is the validated state of a single answer option.
type OptionResult struct {
	Answer string `json:"answer"`
	Mark   Mark   `json:"mark,omitempty"`
}

// QuestionResult is the validated state of one question.
type QuestionResult struct {
	Index    int            `json:"index"`
	Question string         `json:"question"`
	Selected *string        `json:"selected"`
	Correct  bool           `json:"correct"`
	Options  []OptionResult `json:"options"`
}

// Result is the outcome of one validation.
type Result struct {
	Correct   int              `json:"correct"`
	Total     int              `json:"total"`
	Questions []QuestionResult `json:"questions"`
}

// Score formats the aggregate as "{correct} / {total}".
func (r Result) Score() string {
	return strconv.Itoa(r.Correct) + " / " + strconv.Itoa(r.Total)
}

// OptionView is one exclusive-choice input.
type OptionView struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Mark     Mark   `json:"mark,omitempty"`
}

// QuestionView is one question grouping.
type QuestionView struct {
	Index      int          `json:"index"`
	Header     string       `json:"header"`
	Text       string       `json:"text"`
	Name       string       `json:"name"`
	Category   string       `json:"category,omitempty"`
	Difficulty string       `json:"difficulty,omitempty"`
	Options    []OptionView `json:"options"`
}

// RenderModel is everything the quiz view needs.
type RenderModel struct {
	SessionID string         `json:"sessionId"`
	Questions []QuestionView `json:"questions"`
	Result    *Result        `json:"result,omitempty"`
	Score     string         `json:"score,omitempty"`
}

// Category is a provider question category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
