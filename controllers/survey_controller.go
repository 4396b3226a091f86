package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/encuestapp/survey-server/models"
	"github.com/encuestapp/survey-server/services"
	"github.com/encuestapp/survey-server/store"
)

type optionReq struct {
	Text      string `json:"text" binding:"required,min=1"`
	IsCorrect bool   `json:"is_correct"`
}

type questionReq struct {
	Text          string              `json:"text" binding:"required,min=5"`
	Type          models.QuestionType `json:"type" binding:"required"`
	AllowMultiple bool                `json:"allow_multiple"`
	Points        *int                `json:"points" binding:"omitempty,gte=0"`
	Explanation   *string             `json:"explanation"`
	Options       []optionReq         `json:"options"`
}

type createSurveyReq struct {
	Title            string            `json:"title" binding:"required,min=3"`
	Type             models.SurveyType `json:"type" binding:"required"`
	MinScore         *int              `json:"min_score" binding:"omitempty,gte=0,lte=100"`
	MaxAttempts      *int              `json:"max_attempts" binding:"omitempty,gte=1"`
	TimeLimitMinutes *int              `json:"time_limit_minutes" binding:"omitempty,gte=1"`
	Questions        []questionReq     `json:"questions"`
}

type updateSurveyReq struct {
	Title            *string            `json:"title" binding:"omitempty,min=3"`
	Type             *models.SurveyType `json:"type"`
	MinScore         *int               `json:"min_score" binding:"omitempty,gte=0,lte=100"`
	MaxAttempts      *int               `json:"max_attempts" binding:"omitempty,gte=1"`
	TimeLimitMinutes *int               `json:"time_limit_minutes" binding:"omitempty,gte=1"`
	Questions        *[]questionReq     `json:"questions"`
}

// buildQuestions validates the raw payload rules and the acceptance rules,
// then materializes questions with ids and positions. Nothing is stored until
// every question passes.
func buildQuestions(reqs []questionReq, surveyID string, surveyType models.SurveyType) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(reqs))
	for i, qr := range reqs {
		if !qr.Type.Valid() {
			return nil, errors.New("unsupported question type: " + string(qr.Type))
		}
		if err := services.ValidateQuestionPayload(qr.Type, len(qr.Options), qr.AllowMultiple); err != nil {
			return nil, err
		}
		q := models.Question{
			ID:            uuid.NewString(),
			SurveyID:      surveyID,
			Text:          qr.Text,
			Type:          qr.Type,
			Position:      i,
			AllowMultiple: qr.AllowMultiple,
			Points:        qr.Points,
			Explanation:   qr.Explanation,
		}
		for j, or := range qr.Options {
			q.Options = append(q.Options, models.Option{
				ID:         uuid.NewString(),
				QuestionID: q.ID,
				Text:       or.Text,
				IsCorrect:  or.IsCorrect,
				Position:   j,
			})
		}
		if err := services.ValidateQuestion(&q, surveyType); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// GET /api/surveys
func ListSurveys(c *gin.Context) {
	surveys, err := Store.ListSurveys()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list surveys"})
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// POST /api/surveys
func CreateSurvey(c *gin.Context) {
	var req createSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unsupported survey type: " + string(req.Type)})
		return
	}
	if err := services.ValidateSurveyPayload(req.Type, len(req.Questions)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey := &models.Survey{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Type:             req.Type,
		MinScore:         req.MinScore,
		MaxAttempts:      req.MaxAttempts,
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	questions, err := buildQuestions(req.Questions, survey.ID, req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	survey.Questions = questions

	if err := Store.CreateSurvey(survey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create survey"})
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// GET /api/surveys/:id
func GetSurvey(c *gin.Context) {
	survey, err := Store.GetSurvey(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch survey"})
		return
	}
	c.JSON(http.StatusOK, survey)
}

// PUT /api/surveys/:id — applies only the fields present; a questions array,
// when present, replaces the question set wholesale.
func UpdateSurvey(c *gin.Context) {
	id := c.Param("id")

	existing, err := Store.GetSurvey(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch survey"})
		return
	}

	var req updateSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unsupported survey type: " + string(*req.Type)})
		return
	}

	// Questions are validated against the type the survey will have after the
	// patch, and before anything is written.
	effectiveType := existing.Type
	if req.Type != nil {
		effectiveType = *req.Type
	}
	var questions []models.Question
	if req.Questions != nil {
		if err := services.ValidateSurveyPayload(effectiveType, len(*req.Questions)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		questions, err = buildQuestions(*req.Questions, id, effectiveType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else if req.Type != nil {
		// A type change alone must leave the survey valid: the kept questions
		// are re-checked against the new type before anything is written.
		if err := services.ValidateSurveyPayload(effectiveType, len(existing.Questions)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for i := range existing.Questions {
			if err := services.ValidateQuestion(&existing.Questions[i], effectiveType); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
	}

	patch := store.SurveyPatch{
		Title:            req.Title,
		Type:             req.Type,
		MinScore:         req.MinScore,
		MaxAttempts:      req.MaxAttempts,
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	survey, err := Store.UpdateSurvey(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update survey"})
		return
	}

	if req.Questions != nil {
		if err := Store.ReplaceQuestions(id, questions); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not replace questions"})
			return
		}
		survey, err = Store.GetSurvey(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch survey"})
			return
		}
	}
	c.JSON(http.StatusOK, survey)
}

// DELETE /api/surveys/:id — responses die with the survey.
func DeleteSurvey(c *gin.Context) {
	err := Store.DeleteSurvey(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete survey"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "survey deleted"})
}
