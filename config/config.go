package config

import (
	"fmt"
	"log"
	"os"

	"github.com/encuestapp/survey-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is set when the server runs against PostgreSQL; it stays nil with the
// in-memory store.
var DB *gorm.DB

// HasDatabase reports whether the DB_* environment selects PostgreSQL.
func HasDatabase() bool {
	return os.Getenv("DB_HOST") != ""
}

// ConnectDB opens the PostgreSQL connection from the DB_* environment and
// migrates the schema.
func ConnectDB() *gorm.DB {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbName, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Survey{},
		&models.Question{},
		&models.Option{},
		&models.Response{},
		&models.Answer{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL & migrated successfully")
	return db
}
