package services

import "github.com/encuestapp/survey-server/models"

// ValidateQuestion applies the acceptance rules for a question against its
// survey's type. Rules run in order; the first failure wins.
func ValidateQuestion(q *models.Question, surveyType models.SurveyType) error {
	if q.Type.IsChoice() {
		if len(q.Options) == 0 {
			return ErrMissingOptions
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if surveyType != models.SurveyOpinion && correct == 0 {
			return ErrNoCorrectAnswer
		}
		if q.Type == models.QuestionMultipleChoice && correct > 1 {
			return ErrTooManyCorrectAnswers
		}
	}
	if surveyType != models.SurveyOpinion && q.Type.IsChoice() && q.Points == nil {
		return ErrMissingPoints
	}
	return nil
}

// ValidateQuestionPayload checks the structural rules a raw question payload
// must satisfy before any part of its survey is stored: choice questions need
// at least two options up front, and multiselect questions must declare that
// they allow multiple answers.
func ValidateQuestionPayload(qType models.QuestionType, optionCount int, allowMultiple bool) error {
	if !qType.IsChoice() {
		return nil
	}
	if optionCount < 2 {
		return ErrTooFewOptions
	}
	if qType == models.QuestionMultiselect && !allowMultiple {
		return ErrMultiselectSingle
	}
	return nil
}

// ValidateSurveyPayload rejects quiz and mixed payloads with no questions.
// Opinion surveys may be empty.
func ValidateSurveyPayload(surveyType models.SurveyType, questionCount int) error {
	if surveyType != models.SurveyOpinion && questionCount == 0 {
		return ErrNoQuestions
	}
	return nil
}
