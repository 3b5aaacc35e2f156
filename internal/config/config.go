// Package config loads server settings from a JSON file with
// environment overrides for secrets.
package config

import (
	"encoding/json"
	"os"
	"time"

	"recipeclip/internal/fetch"
)

type Config struct {
	Addr           string   `json:"addr"`
	DataFile       string   `json:"data_file"`
	UserAgent      string   `json:"user_agent"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	Headless       *bool    `json:"headless"`
	DynamicHosts   []string `json:"dynamic_hosts"`

	OpenAIBaseURL string `json:"openai_base_url"`
	OpenAIModel   string `json:"openai_model"`
	MaxTokens     int    `json:"max_tokens"`
	// Never stored in the file; read from OPENAI_API_KEY.
	OpenAIKey string `json:"-"`
}

func Default() Config {
	headless := true
	return Config{
		Addr:           ":3000",
		DataFile:       "recipes.local.json",
		UserAgent:      "recipeclip/1.0",
		TimeoutSeconds: 45,
		Headless:       &headless,
		DynamicHosts:   fetch.DefaultDynamicHosts,
		OpenAIModel:    "gpt-4o-mini",
		MaxTokens:      16000,
	}
}

// Load reads path when it exists and fills gaps with defaults. A
// missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.DataFile == "" {
		cfg.DataFile = def.DataFile
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = def.TimeoutSeconds
	}
	if cfg.Headless == nil {
		cfg.Headless = def.Headless
	}
	if len(cfg.DynamicHosts) == 0 {
		cfg.DynamicHosts = def.DynamicHosts
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = def.OpenAIModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Marshal(cfg Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}
