package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Itinerary ItineraryConfig `mapstructure:"itinerary"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Logger    LoggerConfig    `mapstructure:"logger"`

	// Warnings collects non-fatal adjustments made during validation.
	Warnings []string `mapstructure:"-"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres or sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type LLMConfig struct {
	Provider     string        `mapstructure:"provider"` // dashscope, gemini or none
	APIKey       string        `mapstructure:"api_key"`
	DashScopeKey string        `mapstructure:"dashscope_api_key"`
	GeminiKey    string        `mapstructure:"gemini_api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	Temperature  float32       `mapstructure:"temperature"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ItineraryConfig struct {
	MaxTripDays int `mapstructure:"max_trip_days"`
}

type CacheConfig struct {
	Driver        string        `mapstructure:"driver"` // memory or redis
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads .env, then the optional YAML file at configPath, then the
// environment. Later sources win.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("llm.provider", "dashscope")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("itinerary.max_trip_days", 60)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", 30*time.Minute)

	v.SetDefault("rate_limit.rps", 1)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("database.dsn", "POSTGRES_URL")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("llm.dashscope_api_key", "DASHSCOPE_API_KEY")
	_ = v.BindEnv("llm.gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.model", "LLM_MODEL")
	_ = v.BindEnv("cache.driver", "CACHE_DRIVER")
	_ = v.BindEnv("cache.redis_addr", "REDIS_URL")
	_ = v.BindEnv("cache.redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	case "sqlite":
		if c.Database.DSN == "" {
			c.Database.DSN = "file:travelmate.db?_foreign_keys=on"
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	switch c.LLM.Provider {
	case "dashscope":
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = c.LLM.DashScopeKey
		}
	case "gemini":
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = c.LLM.GeminiKey
		}
	case "none", "":
		c.LLM.Provider = "none"
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.Provider != "none" && c.LLM.APIKey == "" {
		c.Warnings = append(c.Warnings, fmt.Sprintf("llm.provider %s has no api key, generation will use simulated itineraries", c.LLM.Provider))
		c.LLM.Provider = "none"
	}
	if c.Itinerary.MaxTripDays < 1 {
		return fmt.Errorf("itinerary.max_trip_days must be at least 1")
	}

	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for redis")
		}
	default:
		return fmt.Errorf("unsupported cache.driver %q", c.Cache.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive")
	}
	return nil
}

// ConfigPath returns CONFIG_PATH or the default file name.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
