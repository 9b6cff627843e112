package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
	ClientURL string
	Env       string
}

// Load reads .env when present and falls back to process environment
// variables. Called once at startup; the result is passed down explicitly.
func Load() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("warning: could not load .env file:", err)
		}
	}

	return &Config{
		Port:      getEnv("PORT", "5000"),
		MongoURI:  getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:    getEnv("DB_NAME", "roys-elegance"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),
		Env:       getEnv("APP_ENV", "development"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
