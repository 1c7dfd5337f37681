// Package config loads the miran configuration file and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	agentConfig "github.com/erg0nix/miran/internal/config/agent"
	"github.com/erg0nix/miran/internal/identity"
	"github.com/erg0nix/miran/internal/prompt"
)

const (
	DefaultAgentName         = agentConfig.DefaultAgentName
	DefaultObjective         = prompt.DefaultObjective
	DefaultBridge            = prompt.DefaultBridge
	DefaultReservedInitiator = identity.DefaultReservedInitiator
	DefaultLogLevel          = "info"
)

// PromptConfig holds the values substituted into the system prompt when an
// agent directory does not set its own.
type PromptConfig struct {
	Objective string `toml:"objective"`
	Bridge    string `toml:"bridge"`
}

// IdentityConfig holds defaults for the identity record.
type IdentityConfig struct {
	ReservedInitiator string `toml:"reserved_initiator"`
}

type Config struct {
	AgentName string         `toml:"agent"`
	DataDir   string         `toml:"data_dir"`
	LogLevel  string         `toml:"log_level"`
	Prompt    PromptConfig   `toml:"prompt"`
	Identity  IdentityConfig `toml:"identity"`
}

func Default() Config {
	return Config{
		AgentName: DefaultAgentName,
		DataDir:   defaultDataDir(),
		LogLevel:  DefaultLogLevel,
		Prompt: PromptConfig{
			Objective: DefaultObjective,
			Bridge:    DefaultBridge,
		},
		Identity: IdentityConfig{
			ReservedInitiator: DefaultReservedInitiator,
		},
	}
}

// DefaultPath returns the config file location inside the default data dir.
func DefaultPath() string {
	return filepath.Join(Default().DataDir, "config.toml")
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	config := Default()

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return config, err
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return config, fmt.Errorf("create config dir: %w", err)
		}

		configData, err := toml.Marshal(config)
		if err != nil {
			return config, fmt.Errorf("encode default config: %w", err)
		}

		if err := os.WriteFile(path, configData, 0o644); err != nil {
			return config, fmt.Errorf("write default config: %w", err)
		}

		return config, nil
	}

	configData, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := toml.Unmarshal(configData, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}

	config.DataDir = expandPath(strings.TrimSpace(config.DataDir))
	config.AgentName = strings.TrimSpace(config.AgentName)
	config.LogLevel = strings.TrimSpace(config.LogLevel)

	if config.DataDir == "" {
		return config, errors.New("data_dir is required")
	}

	if config.AgentName == "" {
		config.AgentName = DefaultAgentName
	}

	if config.Identity.ReservedInitiator == "" {
		config.Identity.ReservedInitiator = DefaultReservedInitiator
	}

	return config, nil
}

// SlogLevel maps the configured log level to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultDataDir() string {
	homeDir, _ := os.UserHomeDir()

	if homeDir == "" {
		return ".miran"
	}

	return filepath.Join(homeDir, ".miran")
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		homeDir, _ := os.UserHomeDir()

		if homeDir != "" {
			trimmed := strings.TrimPrefix(path, "~")
			trimmed = strings.TrimPrefix(trimmed, string(os.PathSeparator))

			return filepath.Join(homeDir, trimmed)
		}
	}

	return path
}
