package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encuestapp/survey-server/config"
)

func HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "ok",
		"message": "Service is healthy",
		"store":   "memory",
	}

	// With the in-memory store there is nothing to ping.
	if config.DB == nil {
		c.JSON(http.StatusOK, response)
		return
	}

	response["store"] = "postgres"
	sqlDB, err := config.DB.DB()
	if err != nil {
		response["store"] = "error: cannot get DB instance"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		response["store"] = "error: cannot connect to DB"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
