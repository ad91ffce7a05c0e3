// Package config provides configuration for the chatbot backend.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the chatbot backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseDriver string
	DatabaseURL    string

	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string

	// Completion tuning
	ChatMaxTokens       int
	ChatTemperature     float64
	AnalysisMaxTokens   int
	AnalysisTemperature float64
	LLMTimeout          time.Duration

	// HTTP surface
	AllowedOrigins []string
	ExposeDebug    bool
}

// Load loads configuration from the environment. A .env file in the working
// directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:            getEnvInt("HTTP_PORT", 3000),
		DatabaseDriver:      getEnv("DATABASE_DRIVER", "sqlite3"),
		DatabaseURL:         getEnv("DATABASE_URL", "file:chatbot.db?cache=shared&mode=rwc"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		Model:               getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ChatMaxTokens:       getEnvInt("CHAT_MAX_TOKENS", 500),
		ChatTemperature:     getEnvFloat("CHAT_TEMPERATURE", 0.7),
		AnalysisMaxTokens:   getEnvInt("ANALYSIS_MAX_TOKENS", 1000),
		AnalysisTemperature: getEnvFloat("ANALYSIS_TEMPERATURE", 0.3),
		LLMTimeout:          time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		AllowedOrigins:      getEnvList("CORS_ALLOWED_ORIGINS"),
		ExposeDebug:         getEnvBool("EXPOSE_DEBUG", false),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
