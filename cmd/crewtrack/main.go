package main

import (
	"log"
	"os"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/auth"
	"github.com/crewtrack/crewtrack/internal/config"
	"github.com/crewtrack/crewtrack/internal/router"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	cfg, err := config.Load(os.Getenv("DB_CONFIG_PATH"))

	if err != nil {
		log.Fatalf("Failed to load database config: %v", err)
	}

	if err := db.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Using %s database backend", cfg.Type)

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
