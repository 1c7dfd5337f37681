// Package agent reads and writes the per-agent persona directories under
// <data_dir>/agents.
package agent

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	ConfigFile = "config.toml"
	PromptFile = "agent.md"
)

// AgentConfig is the fully resolved configuration for an agent persona.
type AgentConfig struct {
	Name              string
	DisplayName       string
	Objective         string
	Bridge            string
	ReservedInitiator string
	// PromptTemplate is the text/template source of the system prompt; empty
	// means the built-in template.
	PromptTemplate string
}

// AgentTOML is the TOML-serializable representation of an agent's configuration file.
type AgentTOML struct {
	Name              string `toml:"name"`
	Objective         string `toml:"objective"`
	Bridge            string `toml:"bridge"`
	ReservedInitiator string `toml:"reserved_initiator"`
}

// LoadTOML reads and parses an agent TOML config file, returning nil if the file does not exist.
func LoadTOML(path string) (*AgentTOML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg AgentTOML
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadPrompt reads a prompt template file, returning an empty string if the file does not exist.
func LoadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return string(data), nil
}
