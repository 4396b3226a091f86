package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encuestapp/survey-server/controllers"
	"github.com/encuestapp/survey-server/models"
	"github.com/encuestapp/survey-server/routes"
	"github.com/encuestapp/survey-server/store"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	controllers.Store = store.NewMemoryStore()
	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// perform sends a JSON request. Each test passes its own client IP so the
// per-IP rate limiters, which are process-global, never bleed between tests.
func perform(r *gin.Engine, method, path, ip string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func quizPayload() gin.H {
	return gin.H{
		"title":     "Geography quiz",
		"type":      "quiz",
		"min_score": 70,
		"questions": []gin.H{
			{
				"text":   "What is the capital of France?",
				"type":   "multiple_choice",
				"points": 10,
				"options": []gin.H{
					{"text": "Paris", "is_correct": true},
					{"text": "London"},
					{"text": "Berlin"},
					{"text": "Madrid"},
				},
			},
		},
	}
}

func createSurvey(t *testing.T, r *gin.Engine, ip string, payload gin.H) models.Survey {
	t.Helper()
	w := perform(r, http.MethodPost, "/api/surveys", ip, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var survey models.Survey
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &survey))
	return survey
}

func TestSurveyLifecycle(t *testing.T) {
	r := newRouter(t)
	ip := "10.0.0.1"

	survey := createSurvey(t, r, ip, quizPayload())
	require.Len(t, survey.Questions, 1)
	require.Len(t, survey.Questions[0].Options, 4)

	w := perform(r, http.MethodGet, "/api/surveys", ip, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var surveys []models.Survey
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &surveys))
	assert.Len(t, surveys, 1)

	// Patch only the title; type and questions stay.
	w = perform(r, http.MethodPut, "/api/surveys/"+survey.ID, ip, gin.H{"title": "Renamed quiz"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Survey
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed quiz", updated.Title)
	assert.Equal(t, models.SurveyQuiz, updated.Type)
	assert.Len(t, updated.Questions, 1)

	// Replace the question set wholesale.
	w = perform(r, http.MethodPut, "/api/surveys/"+survey.ID, ip, gin.H{
		"questions": []gin.H{
			{
				"text":   "Pick the primary colors",
				"type":   "multiselect",
				"points": 20,
				"allow_multiple": true,
				"options": []gin.H{
					{"text": "Red", "is_correct": true},
					{"text": "Blue", "is_correct": true},
					{"text": "Green"},
				},
			},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, models.QuestionMultiselect, updated.Questions[0].Type)
	assert.NotEqual(t, survey.Questions[0].ID, updated.Questions[0].ID)

	w = perform(r, http.MethodDelete, "/api/surveys/"+survey.ID, ip, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/surveys/"+survey.ID, ip, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSurveyValidation(t *testing.T) {
	r := newRouter(t)
	ip := "10.0.0.2"

	cases := []struct {
		name    string
		payload gin.H
		code    int
	}{
		{
			name:    "quiz with no questions",
			payload: gin.H{"title": "Empty quiz", "type": "quiz"},
			code:    http.StatusBadRequest,
		},
		{
			name: "choice question with a single option",
			payload: gin.H{"title": "Bad quiz", "type": "quiz", "questions": []gin.H{
				{"text": "Pick something", "type": "multiple_choice", "points": 5,
					"options": []gin.H{{"text": "Only one", "is_correct": true}}},
			}},
			code: http.StatusBadRequest,
		},
		{
			name: "multiselect without allow_multiple",
			payload: gin.H{"title": "Bad quiz", "type": "quiz", "questions": []gin.H{
				{"text": "Pick several", "type": "multiselect", "points": 5,
					"options": []gin.H{{"text": "A", "is_correct": true}, {"text": "B", "is_correct": true}}},
			}},
			code: http.StatusBadRequest,
		},
		{
			name: "scored question without points",
			payload: gin.H{"title": "Bad quiz", "type": "quiz", "questions": []gin.H{
				{"text": "Pick something", "type": "multiple_choice",
					"options": []gin.H{{"text": "A", "is_correct": true}, {"text": "B"}}},
			}},
			code: http.StatusBadRequest,
		},
		{
			name:    "unknown survey type",
			payload: gin.H{"title": "Odd one", "type": "exam"},
			code:    http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/api/surveys", ip, tc.payload)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}

	// An opinion survey may be created with zero questions.
	w := perform(r, http.MethodPost, "/api/surveys", "10.0.0.3",
		gin.H{"title": "Mood check", "type": "opinion"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUpdateSurveyTypeRevalidatesQuestions(t *testing.T) {
	r := newRouter(t)
	ip := "10.0.0.7"

	// A quiz must have questions, so an empty opinion survey cannot be
	// re-typed as one.
	empty := createSurvey(t, r, ip, gin.H{"title": "Mood check", "type": "opinion"})
	w := perform(r, http.MethodPut, "/api/surveys/"+empty.ID, ip, gin.H{"type": "quiz"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = perform(r, http.MethodGet, "/api/surveys/"+empty.ID, ip, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unchanged models.Survey
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unchanged))
	assert.Equal(t, models.SurveyOpinion, unchanged.Type)

	// Opinion surveys may carry choice questions without correct answers or
	// points; those questions fail the quiz rules, so the re-type must too.
	opinion := createSurvey(t, r, ip, gin.H{
		"title": "Preferences",
		"type":  "opinion",
		"questions": []gin.H{
			{"text": "Favorite season?", "type": "multiple_choice",
				"options": []gin.H{{"text": "Summer"}, {"text": "Winter"}}},
		},
	})
	w = perform(r, http.MethodPut, "/api/surveys/"+opinion.ID, ip, gin.H{"type": "quiz"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// When the kept questions already satisfy the quiz rules the re-type
	// goes through.
	gradable := createSurvey(t, r, ip, gin.H{
		"title": "Warm-up round",
		"type":  "opinion",
		"questions": []gin.H{
			{"text": "What is 2+2?", "type": "multiple_choice", "points": 5,
				"options": []gin.H{{"text": "4", "is_correct": true}, {"text": "5"}}},
		},
	})
	w = perform(r, http.MethodPut, "/api/surveys/"+gradable.ID, ip, gin.H{"type": "quiz"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var retyped models.Survey
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &retyped))
	assert.Equal(t, models.SurveyQuiz, retyped.Type)
	assert.Len(t, retyped.Questions, 1)
}

func TestSubmitAndStatistics(t *testing.T) {
	r := newRouter(t)
	ip := "10.0.0.4"

	survey := createSurvey(t, r, ip, quizPayload())
	question := survey.Questions[0]
	var paris, london string
	for _, opt := range question.Options {
		switch opt.Text {
		case "Paris":
			paris = opt.ID
		case "London":
			london = opt.ID
		}
	}

	submit := func(optionID string, duration *float64) *httptest.ResponseRecorder {
		body := gin.H{
			"user_id": "respondent-1",
			"answers": []gin.H{{"question_id": question.ID, "selected_option_ids": []string{optionID}}},
		}
		if duration != nil {
			body["duration_minutes"] = *duration
		}
		return perform(r, http.MethodPost, "/api/surveys/"+survey.ID+"/responses", ip, body)
	}

	ten := 10.0
	w := submit(paris, &ten)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Score       *float64 `json:"score"`
		CompletedAt *string  `json:"completed_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.Score)
	assert.InDelta(t, 100, *created.Score, 1e-9)
	assert.NotNil(t, created.CompletedAt)

	// Wrong answer scores zero; no duration leaves completed_at unset.
	w = submit(london, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.Score)
	assert.InDelta(t, 0, *created.Score, 1e-9)
	assert.Nil(t, created.CompletedAt)

	w = perform(r, http.MethodGet, "/api/surveys/"+survey.ID+"/statistics", ip, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalResponses)
	require.NotNil(t, stats.AverageScore)
	assert.InDelta(t, 50, *stats.AverageScore, 1e-9)
	require.NotNil(t, stats.ApprovalRate)
	assert.InDelta(t, 50, *stats.ApprovalRate, 1e-9)
	require.Len(t, stats.QuestionDifficulty, 1)
	assert.InDelta(t, 50, stats.QuestionDifficulty[0].Difficulty, 1e-9)
	require.NotNil(t, stats.AverageDurationMinutes)
	assert.InDelta(t, 5, *stats.AverageDurationMinutes, 1e-9)

	w = perform(r, http.MethodGet, "/api/surveys/"+survey.ID+"/responses?page=1&limit=1", ip, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total     int           `json:"total"`
		Responses []interface{} `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Responses, 1)
}

func TestSubmitValidation(t *testing.T) {
	r := newRouter(t)
	ip := "10.0.0.5"

	survey := createSurvey(t, r, ip, quizPayload())
	question := survey.Questions[0]

	cases := []struct {
		name    string
		answers []gin.H
	}{
		{"unknown question", []gin.H{{"question_id": "nope", "selected_option_ids": []string{"x"}}}},
		{"empty selection", []gin.H{{"question_id": question.ID}}},
		{"foreign option", []gin.H{{"question_id": question.ID, "selected_option_ids": []string{"not-an-option"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/api/surveys/"+survey.ID+"/responses", ip,
				gin.H{"user_id": "respondent-1", "answers": tc.answers})
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	// Nothing was persisted by the failed submissions.
	w := perform(r, http.MethodGet, "/api/surveys/"+survey.ID+"/statistics", ip, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.TotalResponses)

	w = perform(r, http.MethodPost, "/api/surveys/missing/responses", ip,
		gin.H{"user_id": "respondent-1", "answers": []gin.H{}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpinionSubmissionStaysUnscored(t *testing.T) {
	r := newRouter(t)
	ip := "10.0.0.6"

	survey := createSurvey(t, r, ip, gin.H{
		"title": "Feedback",
		"type":  "opinion",
		"questions": []gin.H{
			{"text": "How was the service?", "type": "short_text"},
		},
	})

	w := perform(r, http.MethodPost, "/api/surveys/"+survey.ID+"/responses", ip, gin.H{
		"user_id": "respondent-1",
		"answers": []gin.H{{"question_id": survey.Questions[0].ID, "free_text": "Great, thanks"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Score *float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Nil(t, created.Score)

	w = perform(r, http.MethodGet, "/api/surveys/"+survey.ID+"/statistics", ip, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalResponses)
	assert.Nil(t, stats.AverageScore)
}
