package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	OpenRouter OpenRouterConfig
	Supabase   SupabaseConfig
	RateLimit  RateLimitConfig
	LogLevel   string `mapstructure:"log_level"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig holds generative model API configuration
type OpenRouterConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	BaseURL   string        `mapstructure:"base_url"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Referer   string        `mapstructure:"referer"`
	Title     string        `mapstructure:"title"`
}

// SupabaseConfig holds catalog/knowledge database configuration
type SupabaseConfig struct {
	URL              string `mapstructure:"url"`
	Key              string `mapstructure:"key"`
	SearchLimit      int    `mapstructure:"search_limit"`
	RecipeMatchCount int    `mapstructure:"recipe_match_count"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// .env is optional; environment variables take over when it is absent
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/bazarfresh/")

	v.SetEnvPrefix("BAZARFRESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The deployment environment uses these unprefixed names
	v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	v.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	v.BindEnv("supabase.url", "SUPABASE_URL")
	v.BindEnv("supabase.key", "SUPABASE_KEY")
	v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	// Config file is optional - env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s") // model calls can be slow
	v.SetDefault("server.idle_timeout", "120s")

	// OpenRouter defaults
	v.SetDefault("openrouter.model", "google/gemini-2.0-flash-exp:free")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.max_tokens", 2000)
	v.SetDefault("openrouter.timeout", "60s")
	v.SetDefault("openrouter.referer", "https://bazarfresh.com")
	v.SetDefault("openrouter.title", "BazarFresh Assistant")

	// Supabase defaults
	v.SetDefault("supabase.search_limit", 10)
	v.SetDefault("supabase.recipe_match_count", 5)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("log_level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenRouter.APIKey == "" {
		return fmt.Errorf("OpenRouter API key is required (set OPENROUTER_API_KEY)")
	}

	if config.Supabase.URL == "" || config.Supabase.Key == "" {
		return fmt.Errorf("Supabase credentials are required (set SUPABASE_URL and SUPABASE_KEY)")
	}

	if config.Supabase.SearchLimit <= 0 {
		return fmt.Errorf("supabase search limit must be positive, got: %d", config.Supabase.SearchLimit)
	}

	if config.Supabase.RecipeMatchCount <= 0 {
		return fmt.Errorf("supabase recipe match count must be positive, got: %d", config.Supabase.RecipeMatchCount)
	}

	return nil
}
