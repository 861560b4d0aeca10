package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	// SessionSecret signs the session cookie. Read-only after startup.
	SessionSecret []byte
	SQLitePath    string
	TemplateGlob  string
	Port          string
}

func LoadConfig() (*Config, error) {
	// A .env file is optional; real env vars win either way.
	_ = godotenv.Load()

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join("data", "tasks.db")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	templateGlob := os.Getenv("TEMPLATE_GLOB")
	if templateGlob == "" {
		templateGlob = filepath.Join("templates", "*.html")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		// Fall back to a random per-process secret. Sessions won't
		// survive a restart, so this is only acceptable in development.
		secret = uuid.New().String()
		log.Println("SESSION_SECRET is not set; using a random secret, sessions will not survive restarts")
	}

	return &Config{
		SessionSecret: []byte(secret),
		SQLitePath:    sqlitePath,
		TemplateGlob:  templateGlob,
		Port:          port,
	}, nil
}
