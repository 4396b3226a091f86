package services

import "errors"

// Question acceptance failures, reported by ValidateQuestion.
var (
	ErrMissingOptions        = errors.New("choice questions must have options")
	ErrNoCorrectAnswer       = errors.New("at least one option must be marked correct")
	ErrTooManyCorrectAnswers = errors.New("multiple choice questions accept only one correct option")
	ErrMissingPoints         = errors.New("scorable questions must declare points")
)

// Raw payload failures, reported before anything is stored.
var (
	ErrTooFewOptions     = errors.New("choice questions require at least two options")
	ErrMultiselectSingle = errors.New("multiselect questions must allow multiple answers")
	ErrNoQuestions       = errors.New("scored surveys require at least one question")
)

// Submission failures, reported by Score.
var (
	ErrUnknownQuestion = errors.New("question does not belong to the survey")
	ErrEmptySelection  = errors.New("at least one option must be selected")
	ErrInvalidOption   = errors.New("selected option does not belong to the question")
	ErrMissingText     = errors.New("a written answer is required")
	ErrMissingValue    = errors.New("a numeric value is required")
)
