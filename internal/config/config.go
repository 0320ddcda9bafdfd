package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Session  SessionConfig  `mapstructure:"session"`
	Mining   MiningConfig   `mapstructure:"mining"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	MaxUploadMB  int    `mapstructure:"max_upload_mb"`
}

type AuthConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	TokenSecret string `mapstructure:"token_secret"`
}

type DatabaseConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// ProviderConfig holds the per-vendor settings for one LLM backend.
type ProviderConfig struct {
	APIKey      string `mapstructure:"api_key"`
	APIEndpoint string `mapstructure:"api_endpoint"`
	Model       string `mapstructure:"model"`
}

type LLMConfig struct {
	DefaultProvider string         `mapstructure:"default_provider"`
	Timeout         int            `mapstructure:"timeout"`
	MaxRetries      int            `mapstructure:"max_retries"`
	Temperature     float64        `mapstructure:"temperature"`
	MaxTokens       int            `mapstructure:"max_tokens"`
	OpenAI          ProviderConfig `mapstructure:"openai"`
	Anthropic       ProviderConfig `mapstructure:"anthropic"`
	Google          ProviderConfig `mapstructure:"google"`
	Cohere          ProviderConfig `mapstructure:"cohere"`
}

type SessionConfig struct {
	TTL             int `mapstructure:"ttl"`
	CleanupInterval int `mapstructure:"cleanup_interval"`
}

type MiningConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Timeout    int    `mapstructure:"timeout"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Deployment environment variable names predate the config tree,
	// so they are bound explicitly.
	bindLegacyEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func bindLegacyEnv() {
	viper.BindEnv("auth.username", "AUTH_USERNAME")
	viper.BindEnv("auth.password", "AUTH_PASSWORD")
	viper.BindEnv("auth.enabled", "ENABLE_AUTH")
	viper.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("llm.anthropic.api_key", "ANTHROPIC_API_KEY")
	viper.BindEnv("llm.google.api_key", "GOOGLE_API_KEY")
	viper.BindEnv("llm.cohere.api_key", "COHERE_API_KEY")
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.max_upload_mb", 32)

	viper.SetDefault("auth.enabled", true)
	viper.SetDefault("auth.username", "admin")
	viper.SetDefault("auth.password", "changeme")
	viper.SetDefault("auth.token_secret", "")

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "promoai")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 300)

	viper.SetDefault("llm.default_provider", "openai")
	viper.SetDefault("llm.timeout", 30)
	viper.SetDefault("llm.max_retries", 3)
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.max_tokens", 2000)

	viper.SetDefault("llm.openai.api_endpoint", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("llm.openai.api_key", "")
	viper.SetDefault("llm.openai.model", "gpt-4")

	viper.SetDefault("llm.anthropic.api_endpoint", "https://api.anthropic.com/v1/messages")
	viper.SetDefault("llm.anthropic.api_key", "")
	viper.SetDefault("llm.anthropic.model", "claude-3-sonnet-20240229")

	viper.SetDefault("llm.google.api_endpoint", "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent")
	viper.SetDefault("llm.google.api_key", "")
	viper.SetDefault("llm.google.model", "gemini-pro")

	viper.SetDefault("llm.cohere.api_endpoint", "https://api.cohere.ai/v1/generate")
	viper.SetDefault("llm.cohere.api_key", "")
	viper.SetDefault("llm.cohere.model", "command")

	viper.SetDefault("session.ttl", 3600)             // 1 hour in seconds
	viper.SetDefault("session.cleanup_interval", 300) // 5 minutes

	viper.SetDefault("mining.service_url", "http://localhost:8081")
	viper.SetDefault("mining.timeout", 120)
}
