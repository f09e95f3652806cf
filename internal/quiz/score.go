package quiz

import "trivia-quiz-service/internal/domain"

// Score compares the selection to the known answers. It reads nothing but its arguments, so
// repeated validation of the same selection always yields the same result.
func Score(questions []domain.Question, sel domain.AnswerSelection) domain.Result {
	res := domain.Result{
		Total:     len(questions),
		Questions: make([]domain.QuestionResult, 0, len(questions)),
	}

	for i, q := range questions {
		chosen, answered := sel[i]
		qr := domain.QuestionResult{
			Index:    i,
			Question: q.Question,
			Options:  make([]domain.OptionResult, 0, len(q.AllAnswers)),
		}
		if answered {
			c := chosen
			qr.Selected = &c
		}

		for _, ans := range q.AllAnswers {
			opt := domain.OptionResult{Answer: ans}
			switch {
			case ans == q.CorrectAnswer:
				opt.Mark = domain.MarkCorrect
			case answered && ans == chosen:
				opt.Mark = domain.MarkWrong
			}
			qr.Options = append(qr.Options, opt)
		}

		if answered && chosen == q.CorrectAnswer {
			qr.Correct = true
			res.Correct++
		}
		res.Questions = append(res.Questions, qr)
	}
	return res
}

// Choose records answer for the question at index and returns the new selection. The input
// selection is left untouched.
func Choose(questions []domain.Question, sel domain.AnswerSelection, index int, answer string) (domain.AnswerSelection, error) {
	if index < 0 || index >= len(questions) {
		return sel, domain.ErrQuestionNotFound
	}
	for _, ans := range questions[index].AllAnswers {
		if ans == answer {
			next := sel.Clone()
			next[index] = answer
			return next, nil
		}
	}
	return sel, domain.ErrOptionNotFound
}
