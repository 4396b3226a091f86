package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/encuestapp/survey-server/controllers"
	"github.com/encuestapp/survey-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		surveys := api.Group("/surveys")
		{
			surveys.GET("", controllers.ListSurveys)
			surveys.POST("", middleware.RateLimitSurveyCreate(), controllers.CreateSurvey)
			surveys.GET("/:id", controllers.GetSurvey)
			surveys.PUT("/:id", controllers.UpdateSurvey)
			surveys.DELETE("/:id", controllers.DeleteSurvey)

			surveys.POST("/:id/responses", middleware.RateLimitSubmit(), controllers.SubmitResponse)
			surveys.GET("/:id/responses", controllers.ListResponses)
			surveys.GET("/:id/statistics", controllers.GetStatistics)

			surveys.POST("/:id/export", controllers.CreateExport)
		}
		api.GET("/exports/:job_id", controllers.GetExport)
	}
}
