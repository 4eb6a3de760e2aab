// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBConn     string
	BotToken   string
}

// MustLoad reads configuration from the environment once at startup.
// DATABASE_URL wins; otherwise the connection string is composed from the
// DB_* parts.
func MustLoad() Config {
	_ = godotenv.Load()

	dbConn := os.Getenv("DATABASE_URL")
	if dbConn == "" {
		host := getEnv("DB_HOST", "127.0.0.1")
		name := getEnv("DB_NAME", "credits")
		user := getEnv("DB_USER", "postgres")
		password := getEnv("DB_PASSWORD", "postgres")
		dbConn = fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", user, password, host, name)
	}

	port := getEnv("PORT", "8080")

	return Config{
		ServerPort: ":" + port,
		DBConn:     dbConn,
		BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
