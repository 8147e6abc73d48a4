package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address     string
	DatabaseURL string
	RedisAddr   string
	// SessionTTL of zero means sessions never expire and live until
	// destroyed or the store is flushed.
	SessionTTL   time.Duration
	KafkaAddress string
	ES_URL       string
	ES_User      string
	ES_Password  string
	LogLevel     string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		Address:      getDefault("ADDRESS", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    getDefault("REDIS_ADDR", "localhost:6379"),
		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:       os.Getenv("ES_URL"),
		ES_User:      os.Getenv("ES_USER"),
		ES_Password:  os.Getenv("ES_PASSWORD"),
		LogLevel:     getDefault("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("Notice: invalid SESSION_TTL %q, sessions will not expire", raw)
		} else {
			cfg.SessionTTL = time.Duration(secs) * time.Second
		}
	}

	return cfg, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
