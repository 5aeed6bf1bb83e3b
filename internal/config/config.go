package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	LLM    LLMConfig
	Quiz   QuizConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxUploadBytes int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig selects and tunes the generation backend.
// Provider is one of "googleai", "ollama" or "openai".
type LLMConfig struct {
	Provider    string
	Model       string
	ServerURL   string
	APIKey      string
	Timeout     time.Duration
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

type QuizConfig struct {
	DefaultCount   int
	MaxSourceRunes int
}

// CacheConfig configures the optional Redis cache of backend completions.
type CacheConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_bytes", 10*1024*1024)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("llm.provider", "googleai")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.temperature", 1.0)
	v.SetDefault("llm.top_p", 0.95)
	v.SetDefault("llm.top_k", 40)
	v.SetDefault("llm.max_tokens", 8192)

	v.SetDefault("quiz.default_count", 5)
	v.SetDefault("quiz.max_source_runes", 120_000)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 24*time.Hour)
}

// LoadConfig reads config.yaml from the working directory or ./config and
// applies environment overrides (LLM_API_KEY, CACHE_ENABLED, ...).
// A missing config file is not an error; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	return load(v)
}

// LoadConfigFile reads the configuration from an explicit path.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
			IdleTimeout:    v.GetDuration("server.idle_timeout"),
			MaxUploadBytes: v.GetInt("server.max_upload_bytes"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			ServerURL:   v.GetString("llm.server_url"),
			APIKey:      v.GetString("llm.api_key"),
			Timeout:     v.GetDuration("llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
			TopP:        v.GetFloat64("llm.top_p"),
			TopK:        v.GetInt("llm.top_k"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
		},
		Quiz: QuizConfig{
			DefaultCount:   v.GetInt("quiz.default_count"),
			MaxSourceRunes: v.GetInt("quiz.max_source_runes"),
		},
		Cache: CacheConfig{
			Enabled:  v.GetBool("cache.enabled"),
			Address:  v.GetString("cache.address"),
			Password: v.GetString("cache.password"),
			DB:       v.GetInt("cache.db"),
			TTL:      v.GetDuration("cache.ttl"),
		},
	}

	// Fall back to the variable Gemini tooling reads by default.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GOOGLE_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "googleai", "ollama", "openai":
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	if c.Quiz.DefaultCount < 1 {
		return fmt.Errorf("quiz.default_count must be at least 1, got %d", c.Quiz.DefaultCount)
	}
	if c.Quiz.MaxSourceRunes < 1 {
		return fmt.Errorf("quiz.max_source_runes must be at least 1, got %d", c.Quiz.MaxSourceRunes)
	}
	if c.Cache.Enabled && c.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when the cache is enabled")
	}
	return nil
}
