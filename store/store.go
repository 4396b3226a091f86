package store

import (
	"errors"

	"github.com/encuestapp/survey-server/models"
)

// ErrNotFound is returned when a survey or response does not exist.
var ErrNotFound = errors.New("record not found")

// SurveyPatch carries optional survey fields for an update. Only non-nil
// fields are applied, atomically, and the survey's UpdatedAt is bumped.
type SurveyPatch struct {
	Title            *string
	Type             *models.SurveyType
	MinScore         *int
	MaxAttempts      *int
	TimeLimitMinutes *int
}

// SurveyStore is the storage collaborator the handlers and the scoring core
// run against. Implementations must be safe for concurrent use; locks are
// held per logical operation only, never across a scoring or statistics call.
// ListResponses returns responses in creation order.
type SurveyStore interface {
	ListSurveys() ([]models.Survey, error)
	GetSurvey(id string) (*models.Survey, error)
	CreateSurvey(survey *models.Survey) error
	UpdateSurvey(id string, patch SurveyPatch) (*models.Survey, error)
	ReplaceQuestions(surveyID string, questions []models.Question) error
	DeleteSurvey(id string) error

	CreateResponse(resp *models.Response) error
	ListResponses(surveyID string) ([]models.Response, error)
	UpdateResponseScore(responseID string, score float64) error
}
