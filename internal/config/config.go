package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "NUTRIBUDDY"

type Config struct {
	Store struct {
		Backend string `mapstructure:"backend"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"store"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Log struct {
		Level       string `mapstructure:"level"`
		Development bool   `mapstructure:"development"`
	} `mapstructure:"log"`
	USDA struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"usda"`
	Generator struct {
		Provider string `mapstructure:"provider"`
	} `mapstructure:"generator"`
	Gemini struct {
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"gemini"`
	OpenAI struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"openai"`
	Lookup struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"lookup"`
	Feedback struct {
		LiveExceeded     float64 `mapstructure:"live_exceeded"`
		LiveDeficient    float64 `mapstructure:"live_deficient"`
		HistoryExceeded  float64 `mapstructure:"history_exceeded"`
		HistoryDeficient float64 `mapstructure:"history_deficient"`
	} `mapstructure:"feedback"`
}

// Load reads .env, an optional config file and NUTRIBUDDY_* environment
// variables. An explicit file path must exist; the search paths may not.
func Load(file string, searchPaths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "")
	v.SetDefault("generator.provider", "gemini")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("lookup.timeout", 15*time.Second)
	v.SetDefault("feedback.live_exceeded", 1.02)
	v.SetDefault("feedback.live_deficient", 0.8)
	v.SetDefault("feedback.history_exceeded", 1.05)
	v.SetDefault("feedback.history_deficient", 0.8)
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown store backend %q (expected sqlite, redis or memory)", c.Store.Backend)
	}
	switch c.Generator.Provider {
	case "gemini", "openai", "none":
	default:
		return fmt.Errorf("unknown generator provider %q (expected gemini, openai or none)", c.Generator.Provider)
	}
	if c.Feedback.LiveDeficient <= 0 || c.Feedback.LiveExceeded <= c.Feedback.LiveDeficient {
		return fmt.Errorf("live feedback thresholds must satisfy 0 < deficient < exceeded")
	}
	if c.Feedback.HistoryDeficient <= 0 || c.Feedback.HistoryExceeded <= c.Feedback.HistoryDeficient {
		return fmt.Errorf("history feedback thresholds must satisfy 0 < deficient < exceeded")
	}
	if c.Lookup.Timeout <= 0 {
		return fmt.Errorf("lookup timeout must be > 0")
	}
	return nil
}
