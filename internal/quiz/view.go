package quiz

import (
	"fmt"

	"trivia-quiz-service/internal/domain"
)

// Render builds the view model for a session. result is nil until the user validates.
func Render(session domain.QuizSession, sel domain.AnswerSelection, result *domain.Result) domain.RenderModel {
	total := len(session.Questions)
	model := domain.RenderModel{
		SessionID: session.ID,
		Questions: make([]domain.QuestionView, 0, total),
	}

	for i, q := range session.Questions {
		qv := domain.QuestionView{
			Index:      i,
			Header:     fmt.Sprintf("Question %d of %d", i+1, total),
			Text:       q.Question,
			Name:       fmt.Sprintf("q%d", i),
			Category:   q.Category,
			Difficulty: q.Difficulty,
			Options:    make([]domain.OptionView, 0, len(q.AllAnswers)),
		}

		chosen, answered := sel[i]
		marked := false
		for j, ans := range q.AllAnswers {
			selected := answered && !marked && ans == chosen
			if selected {
				marked = true
			}
			qv.Options = append(qv.Options, domain.OptionView{
				ID:       fmt.Sprintf("q%d_a%d", i, j),
				Value:    ans,
				Selected: selected,
				Mark:     markOf(result, i, j),
			})
		}
		model.Questions = append(model.Questions, qv)
	}

	if result != nil {
		model.Result = result
		model.Score = result.Score()
	}
	return model
}

func markOf(result *domain.Result, question, option int) domain.Mark {
	if result == nil || question >= len(result.Questions) {
		return domain.MarkNone
	}
	opts := result.Questions[question].Options
	if option >= len(opts) {
		return domain.MarkNone
	}
	return opts[option].Mark
}
