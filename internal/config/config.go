package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDSN           string
	RootPath        string
	ImagesDir       string
	LogFile         string
	SeedDemo        bool
	SeedPlaceholder bool
	RequestTimeout  time.Duration
}

// Load reads the environment, after picking up a .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DBDSN:           getEnv("DB_DSN", "harvestdesk.db"), // sqlite file in project root
		RootPath:        strings.Trim(getEnv("ROOT_PATH", "Data"), "/"),
		ImagesDir:       getEnv("IMAGES_DIR", "./static/images"),
		LogFile:         getEnv("LOG_FILE", "./harvestdesk.log"),
		SeedDemo:        getBool("SEED_DEMO", true),
		SeedPlaceholder: getBool("SEED_PLACEHOLDER_ITEMS", true),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s ROOT_PATH=%s IMAGES_DIR=%s LOG_FILE=%s SEED_DEMO=%t",
		cfg.Port, cfg.DBDSN, cfg.RootPath, cfg.ImagesDir, cfg.LogFile, cfg.SeedDemo)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
