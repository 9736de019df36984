package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Config is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Engine   EngineConfig   `json:"engine"`
	Database DatabaseConfig `json:"database"`
	Model    ModelConfig    `json:"model"`
	Notify   NotifyConfig   `json:"notify"`
}

type ServerConfig struct {
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

// EngineConfig overrides the decision engine's built-in tables. Absent
// sections mean "use the defaults".
type EngineConfig struct {
	StatePath  string              `json:"state_path"`
	Thresholds *ThresholdOverrides `json:"thresholds,omitempty"`
	Cooldowns  *CooldownOverrides  `json:"cooldowns,omitempty"`
}

type ThresholdOverrides struct {
	SafeToCaution     float64 `json:"safe_to_caution"`
	CautionToElevated float64 `json:"caution_to_elevated"`
	ElevatedToHigh    float64 `json:"elevated_to_high"`
	HighToElevated    float64 `json:"high_to_elevated"`
	ElevatedToCaution float64 `json:"elevated_to_caution"`
	CautionToSafe     float64 `json:"caution_to_safe"`
}

type CooldownOverrides struct {
	SafeSeconds         int `json:"safe_seconds"`
	CautionSeconds      int `json:"caution_seconds"`
	ElevatedRiskSeconds int `json:"elevated_risk_seconds"`
	HighRiskSeconds     int `json:"high_risk_seconds"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
}

type PostgresConfig struct {
	DSN string `json:"dsn"`
}

type RedisConfig struct {
	URL string `json:"url"`
}

// ModelConfig points at the external risk-scoring service.
type ModelConfig struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

type NotifyConfig struct {
	Slack   SlackNotifyConfig   `json:"slack"`
	Discord DiscordNotifyConfig `json:"discord"`
}

type SlackNotifyConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token"`
	Channel  string `json:"channel"`
}

type DiscordNotifyConfig struct {
	Enabled   bool   `json:"enabled"`
	BotToken  string `json:"bot_token"`
	ChannelID string `json:"channel_id"`
}

// envVarRe matches ${VAR} and ${VAR:default} patterns.
var envVarRe = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// Load reads a JSON config file and substitutes environment variable references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Substitute ${VAR} and ${VAR:default} with environment values.
	resolved := envVarRe.ReplaceAllStringFunc(string(data), func(match string) string {
		parts := envVarRe.FindStringSubmatch(match)
		name := parts[1]
		defaultVal := parts[2]
		if v := os.Getenv(name); v != "" {
			return v
		}
		return defaultVal
	})

	var cfg Config
	if err := json.Unmarshal([]byte(resolved), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
