package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/encuestapp/survey-server/config"
	"github.com/encuestapp/survey-server/controllers"
	"github.com/encuestapp/survey-server/routes"
	"github.com/encuestapp/survey-server/store"
)

func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	var st store.SurveyStore
	if config.HasDatabase() {
		st = store.NewGormStore(config.ConnectDB())
	} else {
		log.Println("DB_HOST not set, using in-memory store")
		st = store.NewMemoryStore()
	}
	controllers.Store = st

	if err := seedData(st); err != nil {
		log.Printf("seed data skipped: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Survey server is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on port %s\n", port)
	r.Run(":" + port)
}
