package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envFile = "configs/.env"

type Config struct {
	DBName  string
	DBDebug bool
	LogFile string
}

// Load reads configs/.env when present and then the process environment.
// Precedence: explicit env var > .env file > default.
func Load() Config {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found or error loading it", envFile)
	}

	return Config{
		DBName:  getEnv("DB_NAME", "requisitions"),
		DBDebug: parseBool("DB_DEBUG", false),
		LogFile: os.Getenv("LOG_FILE"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
