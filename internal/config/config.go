package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	DefaultPort = 5001
)

var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.5-flash",
	ProviderOllama: "qwen3:0.6b",
	ProviderOpenAI: "gpt-4o-mini",
}

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	AllowOrigins string
}

// LLMConfig describes the generation collaborator. APIKey holds the credential
// of the selected provider only: GEMINI_API_KEY or VITE_GEMINI_API_KEY for
// gemini, OPENAI_API_KEY for openai. An empty APIKey leaves the collaborator
// unconfigured for providers that need one.
type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	ServerURL   string
	Timeout     time.Duration
	Temperature float64
}

type LoggerConfig struct {
	Level string
	Env   string
	File  string
}

func LoadConfig() (*Config, error) {
	// .env is optional, same as the process environment being empty.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

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

	apiKey := v.GetString("llm.api_key")
	if v.GetString("llm.provider") == ProviderOpenAI {
		apiKey = v.GetString("llm.openai_api_key")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		LLM: LLMConfig{
			Provider:    v.GetString("llm.provider"),
			APIKey:      apiKey,
			Model:       v.GetString("llm.model"),
			ServerURL:   v.GetString("llm.server_url"),
			Timeout:     v.GetDuration("llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
			File:  v.GetString("logger.file"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.body_limit", 1024*1024)
	v.SetDefault("server.allow_origins", "*")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":        {"PORT"},
		"llm.api_key":        {"GEMINI_API_KEY", "VITE_GEMINI_API_KEY"},
		"llm.openai_api_key": {"OPENAI_API_KEY"},
		"llm.provider":       {"LLM_PROVIDER"},
		"llm.model":          {"LLM_MODEL"},
		"llm.server_url":     {"LLM_SERVER"},
		"llm.timeout":        {"LLM_TIMEOUT"},
		"logger.level":       {"LOG_LEVEL"},
		"logger.env":         {"ENV"},
		"logger.file":        {"LOG_FILE"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// Validate rejects settings the server cannot start with. A missing API key is
// not one of them.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("invalid llm timeout: %s", c.LLM.Timeout)
	}
	return nil
}

// ModelName returns the configured model, or the provider's default when none
// is set.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
