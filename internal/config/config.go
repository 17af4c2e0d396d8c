package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath       string `yaml:"db_path"`
	HistoryLimit int    `yaml:"history_limit"`
	SnapshotRows int    `yaml:"snapshot_rows"`
	LogLevel     string `yaml:"log_level"`

	OpenAI OpenAIConfig `yaml:"openai"`
	API    APIConfig    `yaml:"api"`
}

type OpenAIConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		DBPath:       "trading_data.db",
		HistoryLimit: 20,
		SnapshotRows: 5,
		LogLevel:     "info",
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-3.5-turbo",
			MaxTokens:   150,
			Temperature: 0.7,
			Timeout:     10 * time.Second,
		},
		API: APIConfig{
			Addr: ":5000",
		},
	}
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("PROXY_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PROXY_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("PROXY_MODEL")); v != "" {
		c.OpenAI.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("PROXY_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}
