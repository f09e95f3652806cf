package quiz

import (
	"encoding/base64"
	"html"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"trivia-quiz-service/internal/domain"
)

// Normalizer decodes provider questions and fixes the presentation order of their answers.
type Normalizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewNormalizer() *Normalizer {
	return NewNormalizerWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewNormalizerWithRand is used by tests that need a reproducible shuffle.
func NewNormalizerWithRand(rnd *rand.Rand) *Normalizer {
	return &Normalizer{rnd: rnd}
}

// Normalize maps every raw question to a Question. Multiple-choice answers are shuffled
// exactly once here; everything else keeps correct-first order.
func (n *Normalizer) Normalize(raw []domain.RawQuestion, enc domain.Encoding) []domain.Question {
	out := make([]domain.Question, 0, len(raw))
	for _, q := range raw {
		out = append(out, n.normalizeOne(q, enc))
	}
	return out
}

func (n *Normalizer) normalizeOne(q domain.RawQuestion, enc domain.Encoding) domain.Question {
	correct := Decode(q.CorrectAnswer, enc)
	all := make([]string, 0, len(q.IncorrectAnswers)+1)
	all = append(all, correct)
	for _, a := range q.IncorrectAnswers {
		all = append(all, Decode(a, enc))
	}

	typ := domain.QuestionType(Decode(q.Type, enc))
	if typ == domain.QuestionMultiple {
		n.shuffle(all)
	}

	return domain.Question{
		Question:      Decode(q.Question, enc),
		CorrectAnswer: correct,
		AllAnswers:    all,
		Type:          typ,
		Category:      Decode(q.Category, enc),
		Difficulty:    Decode(q.Difficulty, enc),
	}
}

// shuffle is a Fisher-Yates pass; rand.Rand is not safe for concurrent use.
func (n *Normalizer) shuffle(answers []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(answers) - 1; i > 0; i-- {
		j := n.rnd.Intn(i + 1)
		answers[i], answers[j] = answers[j], answers[i]
	}
}

// Decode reverses the provider's transport encoding. It never fails: undecodable input is
// returned as-is.
func Decode(text string, enc domain.Encoding) string {
	if text == "" {
		return ""
	}
	switch enc {
	case domain.EncodingBase64:
		if b, err := base64.StdEncoding.DecodeString(text); err == nil {
			return string(b)
		}
		if b, err := base64.RawStdEncoding.DecodeString(text); err == nil {
			return string(b)
		}
		return text
	case domain.EncodingLegacy:
		if s, err := url.QueryUnescape(text); err == nil {
			text = s
		}
	case domain.EncodingURL3986:
		if s, err := url.PathUnescape(text); err == nil {
			text = s
		}
	}
	return html.UnescapeString(text)
}
