package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8000"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"3m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"frontend"`

	// NoBrowser suppresses the auto-opened browser tab on hosted deployments.
	NoBrowser bool `env:"NO_BROWSER"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Sampling per task: solving wants deterministic, complete output;
	// explaining tolerates some variability within a tighter budget.
	SolveTemperature   float32 `env:"SOLVE_TEMPERATURE" envDefault:"0.0"`
	SolveMaxTokens     int32   `env:"SOLVE_MAX_TOKENS" envDefault:"2500"`
	ExplainTemperature float32 `env:"EXPLAIN_TEMPERATURE" envDefault:"0.2"`
	ExplainMaxTokens   int32   `env:"EXPLAIN_MAX_TOKENS" envDefault:"800"`
}

type TelegramConfig struct {
	BotToken   string `env:"TELEGRAM_BOT_TOKEN"`
	WebhookURL string `env:"WEBHOOK_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		return nil, fmt.Errorf("missing required env GEMINI_API_KEY")
	}
	// Platform PORT always wins over whatever is configured.
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Server.Port = p
	}
	return cfg, nil
}
