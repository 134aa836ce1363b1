package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Candidates CandidateConfig
	Chat       ChatConfig
	Tracing    TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EventsTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type CandidateConfig struct {
	// "csv" or "db"
	Source  string
	CSVPath string
}

type ChatConfig struct {
	SessionTTL          time.Duration
	// Capped at 5 by the session manager
	HistoryLimit        int
	RateLimitPerMinute  int
	MaxMessageBodyBytes int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

const (
	CandidateSourceCSV = "csv"
	CandidateSourceDB  = "db"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			EventsTopic:        getEnv("EVENTS_TOPIC", "chat_events"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Candidates: CandidateConfig{
			Source:  getEnv("CANDIDATE_SOURCE", CandidateSourceCSV),
			CSVPath: getEnv("CANDIDATES_CSV_PATH", "candidates.csv"),
		},
		Chat: ChatConfig{
			SessionTTL:          getEnvAsDuration("SESSION_TTL", time.Hour),
			HistoryLimit:        getEnvAsInt("SESSION_HISTORY_LIMIT", 5),
			RateLimitPerMinute:  getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
			MaxMessageBodyBytes: getEnvAsInt("MAX_BODY_BYTES", 64*1024),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("30m") or plain seconds ("1800").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
