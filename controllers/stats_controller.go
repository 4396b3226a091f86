package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encuestapp/survey-server/services"
	"github.com/encuestapp/survey-server/store"
)

// GET /api/surveys/:id/statistics — always recomputed from the current
// responses, never cached.
func GetStatistics(c *gin.Context) {
	survey, err := Store.GetSurvey(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch survey"})
		return
	}

	responses, err := Store.ListResponses(survey.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list responses"})
		return
	}

	c.JSON(http.StatusOK, services.ComputeStatistics(survey, responses))
}
