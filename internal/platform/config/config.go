package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	AppURL    string `env:"APP_URL" default:"http://localhost:8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	MaxWebSocketConnections int     `env:"MAX_WEBSOCKET_CONNECTIONS" default:"1000"`
	MaxConnectionsPerIP     int     `env:"MAX_CONNECTIONS_PER_IP" default:"10"`
	ConnectionRateLimit     float64 `env:"CONNECTION_RATE_LIMIT" default:"2"`
	ConnectionRateBurst     int     `env:"CONNECTION_RATE_BURST" default:"10"`
	APIRateLimit            float64 `env:"API_RATE_LIMIT" default:"5"`
	APIRateBurst            int     `env:"API_RATE_BURST" default:"20"`

	CarouselInterval  time.Duration `env:"CAROUSEL_INTERVAL" default:"5s"`
	CarouselVisible   int           `env:"CAROUSEL_VISIBLE" default:"3"`
	CarouselItemWidth int           `env:"CAROUSEL_ITEM_WIDTH" default:"320"`
	ReviewsMin        int           `env:"REVIEWS_MIN" default:"8"`
	ReviewsMax        int           `env:"REVIEWS_MAX" default:"12"`
	ChartInterval     time.Duration `env:"CHART_INTERVAL" default:"2s"`

	ProductPrice         string `env:"PRODUCT_PRICE" default:"$400 USD"`
	PaymentCheckoutURL   string `env:"PAYMENT_CHECKOUT_URL"`
	PaymentBankName      string `env:"PAYMENT_BANK_NAME"`
	PaymentBankHolder    string `env:"PAYMENT_BANK_HOLDER"`
	PaymentBankCLABE     string `env:"PAYMENT_BANK_CLABE"`
	PaymentBTCAddress    string `env:"PAYMENT_BTC_ADDRESS"`
	PaymentETHAddress    string `env:"PAYMENT_ETH_ADDRESS"`
	PaymentUSDTAddress   string `env:"PAYMENT_USDT_ADDRESS"`
	PaymentNetellerEmail string `env:"PAYMENT_NETELLER_EMAIL"`
	PaymentSkrillEmail   string `env:"PAYMENT_SKRILL_EMAIL"`
	ContactTelegramURL   string `env:"CONTACT_TELEGRAM_URL"`
	ContactWhatsAppURL   string `env:"CONTACT_WHATSAPP_URL"`
	ContactEmail         string `env:"CONTACT_EMAIL"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func validate(cfg *Config) error {
	if cfg.AppEnv != "development" && cfg.AppEnv != "production" {
		return fmt.Errorf("APP_ENV must be development or production, got %q", cfg.AppEnv)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", cfg.LogLevel)
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if _, err := parseHTTPURL(cfg.AppURL); err != nil {
		return fmt.Errorf("APP_URL: %w", err)
	}

	if cfg.MaxWebSocketConnections < 1 {
		return errors.New("MAX_WEBSOCKET_CONNECTIONS must be at least 1")
	}
	if cfg.MaxConnectionsPerIP < 1 {
		return errors.New("MAX_CONNECTIONS_PER_IP must be at least 1")
	}
	if cfg.ConnectionRateLimit <= 0 || cfg.ConnectionRateBurst < 1 {
		return errors.New("CONNECTION_RATE_LIMIT must be positive and CONNECTION_RATE_BURST at least 1")
	}
	if cfg.APIRateLimit <= 0 {
		return errors.New("API_RATE_LIMIT must be positive")
	}
	if cfg.APIRateBurst < 1 {
		return errors.New("API_RATE_BURST must be at least 1")
	}

	if cfg.CarouselInterval <= 0 {
		return errors.New("CAROUSEL_INTERVAL must be positive")
	}
	if cfg.CarouselVisible < 1 {
		return errors.New("CAROUSEL_VISIBLE must be at least 1")
	}
	if cfg.CarouselItemWidth < 1 {
		return errors.New("CAROUSEL_ITEM_WIDTH must be at least 1")
	}
	if cfg.ReviewsMin < 0 || cfg.ReviewsMax < cfg.ReviewsMin {
		return fmt.Errorf("REVIEWS_MIN/REVIEWS_MAX must satisfy 0 <= min <= max, got %d/%d", cfg.ReviewsMin, cfg.ReviewsMax)
	}
	if cfg.ChartInterval <= 0 {
		return errors.New("CHART_INTERVAL must be positive")
	}

	if cfg.PaymentCheckoutURL != "" {
		u, err := parseHTTPURL(cfg.PaymentCheckoutURL)
		if err != nil {
			return fmt.Errorf("PAYMENT_CHECKOUT_URL: %w", err)
		}
		if cfg.IsProduction() && u.Scheme != "https" {
			return errors.New("PAYMENT_CHECKOUT_URL must use https in production")
		}
	}

	return nil
}

func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("must be an absolute http(s) URL, got %q", raw)
	}
	return u, nil
}
