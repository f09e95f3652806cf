package quiz

import (
	"reflect"
	"testing"

	"trivia-quiz-service/internal/domain"
)

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Question:      "The sky is blue.",
			CorrectAnswer: "True",
			AllAnswers:    []string{"True", "False"},
			Type:          domain.QuestionBoolean,
		},
		{
			Question:      "Largest planet?",
			CorrectAnswer: "Jupiter",
			AllAnswers:    []string{"Mars", "Jupiter", "Venus", "Saturn"},
			Type:          domain.QuestionMultiple,
		},
	}
}

func marks(q domain.QuestionResult) map[domain.Mark][]string {
	out := map[domain.Mark][]string{}
	for _, o := range q.Options {
		if o.Mark != domain.MarkNone {
			out[o.Mark] = append(out[o.Mark], o.Answer)
		}
	}
	return out
}

func TestScoreWrongSelection(t *testing.T) {
	questions := sampleQuestions()[:1]
	res := Score(questions, domain.AnswerSelection{0: "False"})

	if res.Score() != "0 / 1" {
		t.Fatalf("expected 0 / 1, got %s", res.Score())
	}
	m := marks(res.Questions[0])
	if !reflect.DeepEqual(m[domain.MarkWrong], []string{"False"}) {
		t.Fatalf("expected only False marked wrong, got %v", m[domain.MarkWrong])
	}
	if !reflect.DeepEqual(m[domain.MarkCorrect], []string{"True"}) {
		t.Fatalf("expected only True marked correct, got %v", m[domain.MarkCorrect])
	}
}

func TestScoreUnansweredQuestion(t *testing.T) {
	res := Score(sampleQuestions(), domain.AnswerSelection{0: "True"})

	if res.Correct != 1 || res.Total != 2 {
		t.Fatalf("expected 1 / 2, got %s", res.Score())
	}
	second := res.Questions[1]
	if second.Selected != nil {
		t.Fatalf("expected no selection, got %q", *second.Selected)
	}
	m := marks(second)
	if len(m[domain.MarkWrong]) != 0 {
		t.Fatalf("unanswered question must not carry a wrong mark: %v", m)
	}
	if !reflect.DeepEqual(m[domain.MarkCorrect], []string{"Jupiter"}) {
		t.Fatalf("expected correct answer marked, got %v", m)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	questions := sampleQuestions()
	sel := domain.AnswerSelection{0: "False", 1: "Jupiter"}

	first := Score(questions, sel)
	for i := 0; i < 5; i++ {
		if again := Score(questions, sel); !reflect.DeepEqual(first, again) {
			t.Fatalf("score changed between runs: %+v vs %+v", first, again)
		}
	}
	if first.Score() != "1 / 2" {
		t.Fatalf("expected 1 / 2, got %s", first.Score())
	}
}

func TestScoreIsCaseSensitive(t *testing.T) {
	res := Score(sampleQuestions(), domain.AnswerSelection{1: "jupiter"})
	if res.Correct != 0 {
		t.Fatalf("expected exact comparison, got %d correct", res.Correct)
	}
}

func TestChooseValidatesSelection(t *testing.T) {
	questions := sampleQuestions()
	sel := domain.AnswerSelection{}

	next, err := Choose(questions, sel, 1, "Venus")
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if next[1] != "Venus" || len(sel) != 0 {
		t.Fatalf("expected copy with selection, got next=%v original=%v", next, sel)
	}

	if _, err := Choose(questions, next, 5, "Venus"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected question error, got %v", err)
	}
	if _, err := Choose(questions, next, 0, "Maybe"); err != domain.ErrOptionNotFound {
		t.Fatalf("expected option error, got %v", err)
	}
}
