package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AgentBaseURL    string
	AgentTimeout    time.Duration
	AgentMaxRetries int
	MySQLDSN        string
	RedisURL        string
	Port            string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func getint(key string, def int) int {
	v, err := strconv.Atoi(getenv(key, strconv.Itoa(def)))
	if err != nil {
		log.Fatalf("env %s: %v", key, err)
	}
	return v
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		AgentBaseURL:    getenv("AGENT_BASE_URL", "http://localhost:5678"),
		AgentTimeout:    time.Duration(getint("AGENT_TIMEOUT", 30)) * time.Second,
		AgentMaxRetries: getint("AGENT_MAX_RETRIES", 3),
		MySQLDSN:        getenv("MYSQL_DSN", "tutor:tutor@tcp(127.0.0.1:3306)/tutor_gateway?parseTime=true"),
		RedisURL:        getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		Port:            getenv("PORT", "8000"),
	}
}
