package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings. Everything comes from the environment,
// optionally seeded from a .env file.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	BaseURL       string
	SessionSecret string
	AdminPassword string
	SMTPServer    string
	SMTPUser      string
	SMTPPassword  string
}

// Load reads a .env file if present and builds the Config from environment
// variables, falling back to local-dev defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "goboard"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SMTPServer:    os.Getenv("SMTP_SERVER"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
