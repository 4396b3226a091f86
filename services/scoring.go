package services

import (
	"fmt"

	"github.com/encuestapp/survey-server/models"
)

// AnswerInput is one submitted answer before grading.
type AnswerInput struct {
	QuestionID        string
	SelectedOptionIDs []string
	FreeText          *string
}

// ScoreOutcome is the result of grading one submission. Score is nil when the
// survey carries no scorable points (opinion surveys, or quizzes where no
// scorable question was answered). Answers holds the graded answers with
// selections reduced to set semantics, ready to attach to a response.
type ScoreOutcome struct {
	Score        *float64
	Answers      []models.Answer
	PointsTotal  int
	PointsEarned int
}

// Score grades a submission against its survey. It is pure: identical inputs
// always produce identical outcomes. Submissions are all-or-nothing — the
// first invalid answer fails the whole call and nothing is returned.
//
// Duplicate answers for the same question are graded independently: each one
// contributes to the point totals and is kept as its own answer.
func Score(survey *models.Survey, inputs []AnswerInput) (*ScoreOutcome, error) {
	outcome := &ScoreOutcome{Answers: make([]models.Answer, 0, len(inputs))}

	for _, in := range inputs {
		q := survey.QuestionByID(in.QuestionID)
		if q == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, in.QuestionID)
		}

		answer := models.Answer{QuestionID: q.ID}

		switch q.Type {
		case models.QuestionMultipleChoice, models.QuestionMultiselect:
			if len(in.SelectedOptionIDs) == 0 {
				return nil, fmt.Errorf("%w: question %s", ErrEmptySelection, q.ID)
			}
			valid := q.OptionIDs()
			selection := dedupe(in.SelectedOptionIDs)
			for _, id := range selection {
				if !valid[id] {
					return nil, fmt.Errorf("%w: %s", ErrInvalidOption, id)
				}
			}
			answer.SelectedOptionIDs = selection
			if survey.RequiresScore() && q.Points != nil && *q.Points > 0 {
				outcome.PointsTotal += *q.Points
				if SelectionMatches(q, selection) {
					outcome.PointsEarned += *q.Points
				}
			}
		case models.QuestionShortText:
			if in.FreeText == nil || *in.FreeText == "" {
				return nil, fmt.Errorf("%w: question %s", ErrMissingText, q.ID)
			}
			answer.FreeText = in.FreeText
		case models.QuestionNumericScale:
			// Stored as free text; the value is never compared numerically.
			if in.FreeText == nil || *in.FreeText == "" {
				return nil, fmt.Errorf("%w: question %s", ErrMissingValue, q.ID)
			}
			answer.FreeText = in.FreeText
		}

		outcome.Answers = append(outcome.Answers, answer)
	}

	if survey.RequiresScore() && outcome.PointsTotal > 0 {
		score := float64(outcome.PointsEarned) / float64(outcome.PointsTotal) * 100
		outcome.Score = &score
	}
	return outcome, nil
}

// SelectionMatches reports whether a selection earns the question's points.
// Multi-answer questions (multiselect, or allow_multiple) require the selected
// set to equal the correct set exactly — no partial credit for subsets or
// supersets. Single-answer multiple choice requires exactly one selected
// option that is marked correct.
func SelectionMatches(q *models.Question, selected []string) bool {
	correct := q.CorrectOptionIDs()
	selection := dedupe(selected)
	if q.AllowMultiple || q.Type == models.QuestionMultiselect {
		if len(selection) != len(correct) {
			return false
		}
		for _, id := range selection {
			if !correct[id] {
				return false
			}
		}
		return true
	}
	return len(selection) == 1 && correct[selection[0]]
}

// dedupe reduces a selection to set semantics, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
