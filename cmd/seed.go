package main

import (
	"github.com/google/uuid"

	"github.com/encuestapp/survey-server/models"
	"github.com/encuestapp/survey-server/store"
)

// seedData loads the sample survey on first boot so the API is explorable out
// of the box. A non-empty store is left alone.
func seedData(st store.SurveyStore) error {
	surveys, err := st.ListSurveys()
	if err != nil {
		return err
	}
	if len(surveys) > 0 {
		return nil
	}

	points := 10
	survey := &models.Survey{
		ID:               uuid.NewString(),
		Title:            "Evaluación Trimestral Q4",
		Type:             models.SurveyMixed,
		MinScore:         intPtr(70),
		MaxAttempts:      intPtr(3),
		TimeLimitMinutes: intPtr(30),
	}

	feedback := models.Question{
		ID:       uuid.NewString(),
		SurveyID: survey.ID,
		Text:     "¿Cómo calificarías nuestro servicio?",
		Type:     models.QuestionShortText,
		Position: 0,
	}

	capital := models.Question{
		ID:       uuid.NewString(),
		SurveyID: survey.ID,
		Text:     "¿Cuál es la capital de Francia?",
		Type:     models.QuestionMultipleChoice,
		Position: 1,
		Points:   &points,
	}
	for i, opt := range []struct {
		text    string
		correct bool
	}{
		{"París", true},
		{"Londres", false},
		{"Berlín", false},
		{"Madrid", false},
	} {
		capital.Options = append(capital.Options, models.Option{
			ID:         uuid.NewString(),
			QuestionID: capital.ID,
			Text:       opt.text,
			IsCorrect:  opt.correct,
			Position:   i,
		})
	}

	survey.Questions = []models.Question{feedback, capital}
	return st.CreateSurvey(survey)
}

func intPtr(v int) *int {
	return &v
}
