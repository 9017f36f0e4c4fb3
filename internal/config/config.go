package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file into the process environment when one exists.
// Variables already set in the environment win.
func Load(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid integer %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// Server settings resolved from the environment.
type Server struct {
	Port         string
	CacheBackend string
	DBPath       string
	DatabaseURL  string
	RedisAddr    string
	CacheTTL     time.Duration
	BatchWorkers int
	TraceOutput  string
}

func ServerFromEnv() Server {
	return Server{
		Port:         Get("PORT", "8080"),
		CacheBackend: strings.ToLower(Get("CACHE_BACKEND", "memory")),
		DBPath:       Get("DB_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		RedisAddr:    Get("REDIS_ADDR", "localhost:6379"),
		CacheTTL:     GetDuration("CACHE_TTL", 24*time.Hour),
		BatchWorkers: GetInt("BATCH_WORKERS", 5),
		TraceOutput:  Get("TRACE_OUTPUT", ""),
	}
}
