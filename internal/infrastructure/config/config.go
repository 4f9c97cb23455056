package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIBaseURL is resolved once at startup; all endpoints are relative to it.
	APIBaseURL  string        `env:"LFP_API_BASE_URL, default=http://localhost:8080"`
	HTTPTimeout time.Duration `env:"LFP_HTTP_TIMEOUT, default=30s"`
	// RateLimit caps outgoing requests per second; 0 disables the cap.
	RateLimit float64 `env:"LFP_RATE_LIMIT,   default=0"`
	LogLevel  string  `env:"LOG_LEVEL,        default=info"`
	LogPretty bool    `env:"LOG_PRETTY,       default=true"`

	Session SessionConfig
	Redis   RedisConfig
	Mock    MockConfig
}

type SessionConfig struct {
	// Backend selects where the session lives: "file" or "redis".
	Backend string `env:"LFP_SESSION_BACKEND, default=file"`
	// Path overrides the session file location. Empty means the default
	// under the user config directory.
	Path string `env:"LFP_SESSION_FILE"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MockConfig drives the local development backend (`lfp mock-server`).
type MockConfig struct {
	Port      string `env:"LFP_MOCK_PORT,       default=8080"`
	JWTSecret string `env:"LFP_MOCK_JWT_SECRET, default=dev-secret"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
