// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/document-generator/internal/llm"
	"github.com/jonathan/document-generator/internal/rendering"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DOCGEN"

// Config holds all application configuration.
type Config struct {
	LLM    LLMConfig    `mapstructure:"llm"`
	Render RenderConfig `mapstructure:"render"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// LLMConfig holds text-generation settings.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=gemini"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model" validate:"required"`
	// Temperature of 0 keeps the provider default.
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	// Timeout of 0 leaves the model call unbounded.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// RenderConfig holds page geometry and headless browser settings.
type RenderConfig struct {
	PageSize     string        `mapstructure:"page_size" validate:"required"`
	MarginTop    float64       `mapstructure:"margin_top" validate:"gte=0"`
	MarginRight  float64       `mapstructure:"margin_right" validate:"gte=0"`
	MarginBottom float64       `mapstructure:"margin_bottom" validate:"gte=0"`
	MarginLeft   float64       `mapstructure:"margin_left" validate:"gte=0"`
	ChromePath   string        `mapstructure:"chrome_path"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode  string `mapstructure:"mode" validate:"oneof=development production dev prod"`
	Level string `mapstructure:"level"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	Port           int             `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigin  string          `mapstructure:"allowed_origin"`
	MaxConcurrent  int64           `mapstructure:"max_concurrent" validate:"min=1"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout" validate:"gte=0"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig limits POST /generate per client address.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit" validate:"gte=0"`
	Window  time.Duration `mapstructure:"window" validate:"gte=0"`
	Burst   int           `mapstructure:"burst" validate:"gte=0"`
	// Whitelist is a comma-separated list of exempt client IPs.
	Whitelist string `mapstructure:"whitelist"`
}

// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured.
var ErrMissingAPIKey = errors.New("API key is required (set GEMINI_API_KEY or DOCGEN_LLM_API_KEY, or llm.api_key in the config file)")

var validate = validator.New()

// Load reads configuration from defaults, an optional config file at path and
// environment variables with the DOCGEN_ prefix, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", string(llm.ProviderGemini))
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", llm.DefaultModel)
	v.SetDefault("llm.temperature", 0)
	v.SetDefault("llm.timeout", "0s")

	def := rendering.DefaultGeometry()
	v.SetDefault("render.page_size", def.Page.Name)
	v.SetDefault("render.margin_top", def.Margins.Top)
	v.SetDefault("render.margin_right", def.Margins.Right)
	v.SetDefault("render.margin_bottom", def.Margins.Bottom)
	v.SetDefault("render.margin_left", def.Margins.Left)
	v.SetDefault("render.chrome_path", "")
	v.SetDefault("render.timeout", "60s")

	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.allowed_origin", "http://localhost:5173")
	v.SetDefault("server.max_concurrent", 2)
	v.SetDefault("server.request_timeout", "3m")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.limit", 10)
	v.SetDefault("server.rate_limit.window", "1h")
	v.SetDefault("server.rate_limit.burst", 2)
	v.SetDefault("server.rate_limit.whitelist", "")
}

// bindEnv binds nested keys explicitly; the API key also honors GEMINI_API_KEY.
func bindEnv(v *viper.Viper) error {
	keys := []string{
		"llm.provider", "llm.model", "llm.temperature", "llm.timeout",
		"render.page_size", "render.margin_top", "render.margin_right",
		"render.margin_bottom", "render.margin_left", "render.chrome_path", "render.timeout",
		"log.mode", "log.level",
		"server.port", "server.allowed_origin", "server.max_concurrent", "server.request_timeout",
		"server.rate_limit.enabled", "server.rate_limit.limit", "server.rate_limit.window",
		"server.rate_limit.burst", "server.rate_limit.whitelist",
	}
	for _, key := range keys {
		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind API key env: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := c.Render.Geometry(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// RequireAPIKey returns ErrMissingAPIKey unless an API key is configured.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ClientConfig converts the LLM settings into an llm.Config.
func (c LLMConfig) ClientConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	if c.Model != "" {
		cfg = cfg.WithModel(c.Model)
	}
	if c.Temperature > 0 {
		cfg = cfg.WithTemperature(float32(c.Temperature))
	}
	return cfg
}

// Geometry converts the render settings into page geometry.
func (c RenderConfig) Geometry() (rendering.Geometry, error) {
	size, err := rendering.PageSizeByName(c.PageSize)
	if err != nil {
		return rendering.Geometry{}, err
	}
	g := rendering.Geometry{
		Page: size,
		Margins: rendering.Margins{
			Top:    c.MarginTop,
			Right:  c.MarginRight,
			Bottom: c.MarginBottom,
			Left:   c.MarginLeft,
		},
	}
	if err := g.Validate(); err != nil {
		return rendering.Geometry{}, err
	}
	return g, nil
}

// ChromeOptions converts the render settings into renderer options.
func (c RenderConfig) ChromeOptions() rendering.ChromeOptions {
	return rendering.ChromeOptions{ExecPath: c.ChromePath, Timeout: c.Timeout}
}
