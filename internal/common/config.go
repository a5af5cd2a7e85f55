package common

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Vision   VisionConfig   `mapstructure:"vision"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	// AuthTokens maps bearer tokens to user ids. A stand-in until the real
	// identity provider is wired; see server.StaticTokenAuthenticator.
	AuthTokens map[string]string `mapstructure:"auth_tokens"`
}

// VisionConfig holds text-detection provider configuration
type VisionConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	APIKey          string `mapstructure:"api_key"`
}

// LLMConfig holds language-model provider configuration
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int64         `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// PipelineConfig holds extraction pipeline tunables
type PipelineConfig struct {
	MinTextLength int `mapstructure:"min_text_length"`
}

// LoadConfig reads config.yaml (if present) and CELLARSCAN_* environment
// overrides into a typed Config.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.cellarscan")

	v.SetEnvPrefix("CELLARSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.max_conn_lifetime", 30*time.Minute)
	v.SetDefault("database.max_conn_idle_time", 5*time.Minute)
	v.SetDefault("database.dial_timeout", 3*time.Second)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("llm.model", "claude-haiku-4-5-20251001")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", 45*time.Second)
	v.SetDefault("pipeline.min_text_length", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, WrapError(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, WrapError(err, "unmarshal config")
	}
	return &cfg, nil
}

// Validate checks the loaded configuration before startup.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "database.dsn is required", ErrInvalidRequest)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "llm.api_key is required", ErrInvalidRequest)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "server.addr is required", ErrInvalidRequest)
	}
	return nil
}
