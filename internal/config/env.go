package config

import "os"

// LoadEnvOverrides applies MIRAN_* environment variables on top of cfg.
func LoadEnvOverrides(cfg Config) Config {
	if v := os.Getenv("MIRAN_AGENT"); v != "" {
		cfg.AgentName = v
	}
	if v := os.Getenv("MIRAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MIRAN_OBJECTIVE"); v != "" {
		cfg.Prompt.Objective = v
	}
	if v := os.Getenv("MIRAN_BRIDGE"); v != "" {
		cfg.Prompt.Bridge = v
	}
	return cfg
}
