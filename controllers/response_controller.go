package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/encuestapp/survey-server/models"
	"github.com/encuestapp/survey-server/services"
	"github.com/encuestapp/survey-server/store"
)

type answerReq struct {
	QuestionID        string   `json:"question_id" binding:"required"`
	SelectedOptionIDs []string `json:"selected_option_ids"`
	FreeText          *string  `json:"free_text"`
}

type submitResponseReq struct {
	UserID          string      `json:"user_id" binding:"required,min=3"`
	Answers         []answerReq `json:"answers"`
	DurationMinutes *float64    `json:"duration_minutes" binding:"omitempty,gte=0"`
}

// POST /api/surveys/:id/responses
//
// All-or-nothing: the submission is scored first and nothing persists if any
// answer is invalid. completed_at is derived from the declared duration and
// stays unset when the client never declares one.
func SubmitResponse(c *gin.Context) {
	survey, err := Store.GetSurvey(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch survey"})
		return
	}

	var req submitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	inputs := make([]services.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		inputs = append(inputs, services.AnswerInput{
			QuestionID:        a.QuestionID,
			SelectedOptionIDs: a.SelectedOptionIDs,
			FreeText:          a.FreeText,
		})
	}

	outcome, err := services.Score(survey, inputs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	resp := &models.Response{
		ID:        uuid.NewString(),
		SurveyID:  survey.ID,
		UserID:    req.UserID,
		StartedAt: now,
	}
	if req.DurationMinutes != nil {
		completed := now.Add(time.Duration(*req.DurationMinutes * float64(time.Minute)))
		resp.CompletedAt = &completed
	}
	for i := range outcome.Answers {
		outcome.Answers[i].ResponseID = resp.ID
	}
	resp.Answers = outcome.Answers

	if err := Store.CreateResponse(resp); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save response"})
		return
	}

	if outcome.Score != nil {
		if err := Store.UpdateResponseScore(resp.ID, *outcome.Score); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record score"})
			return
		}
		resp.Score = outcome.Score
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           resp.ID,
		"survey_id":    resp.SurveyID,
		"user_id":      resp.UserID,
		"score":        resp.Score,
		"started_at":   resp.StartedAt,
		"completed_at": resp.CompletedAt,
	})
}

// GET /api/surveys/:id/responses?page=1&limit=10
func ListResponses(c *gin.Context) {
	surveyID := c.Param("id")
	if _, err := Store.GetSurvey(surveyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch survey"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	responses, err := Store.ListResponses(surveyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list responses"})
		return
	}

	total := len(responses)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := []gin.H{}
	for _, r := range responses[start:end] {
		answers := []gin.H{}
		for _, a := range r.Answers {
			answers = append(answers, gin.H{
				"question_id":         a.QuestionID,
				"selected_option_ids": a.SelectedOptionIDs,
				"free_text":           a.FreeText,
			})
		}
		items = append(items, gin.H{
			"id":           r.ID,
			"user_id":      r.UserID,
			"score":        r.Score,
			"started_at":   r.StartedAt,
			"completed_at": r.CompletedAt,
			"answers":      answers,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"survey_id": surveyID,
		"page":      page,
		"limit":     limit,
		"total":     total,
		"responses": items,
	})
}
