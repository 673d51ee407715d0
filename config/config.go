package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server configuration
	Port    string `env:"PORT" envDefault:"5000"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// Path to the SQLite database file
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database/estatehub.db"`

	// JWT configuration for admin sessions
	JWTSecret      string `env:"JWT_SECRET" envDefault:"your-secret-key"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24"`

	// Redis backs rate limiting and the featured-properties cache.
	// Leave RedisAddr empty to run without Redis.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RateLimit configuration, counted per client IP
	RateLimit struct {
		// Window length in minutes
		WindowMinutes int `env:"RATE_LIMIT_WINDOW_MINUTES" envDefault:"15"`

		// Maximum requests per window across the API
		MaxRequests int `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"1000"`

		// Stricter maximum for the login endpoint
		MaxAuthRequests int `env:"RATE_LIMIT_MAX_AUTH_REQUESTS" envDefault:"50"`
	}

	// Bootstrap admin account, created at startup when the username
	// does not exist yet. Username and password must both be set.
	Admin struct {
		Username string `env:"ADMIN_USERNAME"`
		Email    string `env:"ADMIN_EMAIL"`
		Password string `env:"ADMIN_PASSWORD"`
	}

	// Telegram lead notifications, disabled unless both are set
	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `env:"TELEGRAM_CHAT_ID"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
