// api/config/config.go
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config collects everything the server reads from the environment. It
// is loaded once in main and handed to the components that need it.
type Config struct {
	Port              string
	DataDir           string
	ContentDir        string
	FrontendOrigin    string
	ChatbotURL        string
	AdminPasswordHash string
	JWTSecret         string
}

func Load() *Config {
	// Load .env file at the very start; a missing file is fine in
	// deployed environments.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	return &Config{
		Port:              getenv("PORT", "8080"),
		DataDir:           getenv("DATA_DIR", "./data"),
		ContentDir:        getenv("CONTENT_DIR", "./content/posts"),
		FrontendOrigin:    getenv("FE_ORIGIN", "http://localhost:3000"),
		ChatbotURL:        os.Getenv("CHATBOT_API_URL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getenv("JWT_SECRET_KEY", "dev-secret-change-me"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
