package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR,default=:8080"`

	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	GammaBaseURL string        `env:"GAMMA_BASE_URL,default=https://gamma-api.polymarket.com"`
	GammaTimeout time.Duration `env:"GAMMA_TIMEOUT,default=10s"`

	// 30s keeps quotes reasonably fresh without tripping Gamma rate limits.
	AlertCheckInterval  time.Duration `env:"ALERT_CHECK_INTERVAL,default=30s"`
	AlertCheckAutostart bool          `env:"ALERT_CHECK_AUTOSTART,default=true"`

	PriceStreamInterval time.Duration `env:"PRICE_STREAM_INTERVAL,default=5s"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	LLMBaseURL string        `env:"LLM_BASE_URL,default=https://api.openai.com/v1"`
	LLMAPIKey  string        `env:"LLM_API_KEY,required"`
	LLMModel   string        `env:"LLM_MODEL,default=gpt-4o-mini"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT,default=30s"`

	FacilitatorBaseURL string        `env:"FACILITATOR_BASE_URL,required"`
	FacilitatorTimeout time.Duration `env:"FACILITATOR_TIMEOUT,default=15s"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
