package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	Port string `env:"PORT" envDefault:"4000"`

	LLMProvider   string        `env:"LLM_PROVIDER" envDefault:"cli"`
	LLMModel      string        `env:"LLM_MODEL" envDefault:"mistral:latest"`
	OllamaBinary  string        `env:"OLLAMA_BINARY" envDefault:"ollama"`
	OllamaBaseURL string        `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	LLMBaseURL    string        `env:"LLM_BASE_URL" envDefault:"http://localhost:11434/v1"`
	LLMAPIKey     string        `env:"LLM_API_KEY"`
	LLMTimeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"120s"`

	ChatHistoryTurns      int  `env:"CHAT_HISTORY_TURNS" envDefault:"6"`
	ChatSecondaryPersonas bool `env:"CHAT_SECONDARY_PERSONAS" envDefault:"true"`

	ReportsDir  string `env:"REPORTS_DIR" envDefault:"reports"`
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ChatRateLimit  int           `env:"CHAT_RATE_LIMIT" envDefault:"30"`
	ChatRateWindow time.Duration `env:"CHAT_RATE_WINDOW" envDefault:"1m"`
	GameCacheTTL   time.Duration `env:"GAME_CACHE_TTL" envDefault:"10m"`

	JWTSecret          string   `env:"JWT_SECRET"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if cfg.ChatHistoryTurns < 0 {
		cfg.ChatHistoryTurns = 0
	}
	return &cfg, nil
}
