package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken    string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath      string `envconfig:"DB_PATH" default:"./data/challenge.db"`
	ChallengeTZ string `envconfig:"CHALLENGE_TZ" default:"UTC"` // location that defines "today"
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`   // debug|info|warn|error
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`  // healthz + metrics
	PollTimeout int    `envconfig:"POLL_TIMEOUT" default:"30"`  // seconds
}

// Load reads an optional .env file, then environment variables into Config.
// Variables already set in the environment take precedence over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
