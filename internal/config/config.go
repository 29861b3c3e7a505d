package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8081"`
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite | postgres | memory
	DBDSN    string `envconfig:"DB_DSN" default:"storefront.db"`
	LogFile  string `envconfig:"LOG_FILE"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	GeminiAPIKey string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"0s"` // 0 = wait as long as the transport allows

	CatalogLatency time.Duration `envconfig:"CATALOG_LATENCY" default:"500ms"`
	AuthLatency    time.Duration `envconfig:"AUTH_LATENCY" default:"800ms"`
	BcryptCost     int           `envconfig:"BCRYPT_COST" default:"12"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using environment variables")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.GeminiAPIKey == "" {
		// older deployments exported the key as API_KEY
		var legacy struct {
			Key string `envconfig:"API_KEY"`
		}
		if err := envconfig.Process("", &legacy); err == nil {
			cfg.GeminiAPIKey = legacy.Key
		}
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s LOG_FILE=%s GEMINI_MODEL=%s AI=%t",
		cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.LogFile, cfg.GeminiModel, cfg.GeminiAPIKey != "")
	return cfg, nil
}
