package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AssistantFileConfig is the optional TOML preferences file of the assistant
// CLI. Unset keys stay nil so flags and env defaults keep their values.
type AssistantFileConfig struct {
	Chat AssistantChatConfig `toml:"chat"`
}

type AssistantChatConfig struct {
	Provider          *string `toml:"provider"`
	GeoEndpoint       *string `toml:"geo-endpoint"`
	TimetableEndpoint *string `toml:"timetable-endpoint"`
	HistoryDB         *string `toml:"history-db"`
	HistoryLimit      *int    `toml:"history-limit"`
	Verbose           *bool   `toml:"verbose"`
}

// LoadAssistantFileConfig reads path. A missing file is not an error.
func LoadAssistantFileConfig(path string) (AssistantFileConfig, error) {
	if path == "" {
		return AssistantFileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return AssistantFileConfig{}, nil
		}
		return AssistantFileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg AssistantFileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return AssistantFileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultAssistantConfigPath is $XDG_CONFIG_HOME/assistant/config.toml.
func DefaultAssistantConfigPath() string {
	return filepath.Join(XDGConfigHome(), "assistant", "config.toml")
}

// DefaultHistoryDBPath is where `history-db = "default"` points.
func DefaultHistoryDBPath() string {
	return filepath.Join(XDGDataHome(), "assistant", "history.db")
}
