package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "GATEWAY_"

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	PayAPI   PayAPIConfig   `koanf:"pay_api"`
	Exchange ExchangeConfig `koanf:"exchange"`
	Broker   BrokerConfig   `koanf:"broker"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
	MaxBodyBytes int64         `koanf:"max_body_bytes" validate:"required,gt=0"`
	// RateLimit is requests per second per client on the exchange route, 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
	RateBurst int     `koanf:"rate_burst" validate:"gte=0"`
}

// PayAPIConfig holds the credentials of the merchant: Username is the token code (AT-xxxx-xxxx),
// Password the API token. They also verify signed exchanges.
type PayAPIConfig struct {
	Username     string        `koanf:"username" validate:"required"`
	Password     string        `koanf:"password" validate:"required"`
	ServiceID    string        `koanf:"service_id"`
	OrderBaseURL string        `koanf:"order_base_url" validate:"required,url"`
	RestBaseURL  string        `koanf:"rest_base_url" validate:"required,url"`
	Timeout      time.Duration `koanf:"timeout" validate:"required"`
}

type ExchangeConfig struct {
	ReferenceKey string `koanf:"reference_key" validate:"required"`
	Path         string `koanf:"path" validate:"required"`
}

// BrokerConfig is optional, an empty URL disables event publishing.
type BrokerConfig struct {
	URL      string `koanf:"url" validate:"omitempty,url"`
	Exchange string `koanf:"exchange" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":            "development",
		"server.port":            "8080",
		"server.read_timeout":    "10s",
		"server.write_timeout":   "10s",
		"server.idle_timeout":    "60s",
		"server.max_body_bytes":  1 << 20,
		"server.rate_limit":      20,
		"server.rate_burst":      40,
		"pay_api.order_base_url": "https://connect.pay.nl/v1",
		"pay_api.rest_base_url":  "https://rest.pay.nl/v2",
		"pay_api.timeout":        "15s",
		"exchange.reference_key": "extra1",
		"exchange.path":          "/exchange",
		"broker.exchange":        "pay.orders",
		"logger.level":           "info",
	}
}

// LoadConfig reads defaults, then GATEWAY_ prefixed environment variables, and validates the result.
// A double underscore nests: GATEWAY_PAY_API__USERNAME sets pay_api.username.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return mainConfig, nil
}
