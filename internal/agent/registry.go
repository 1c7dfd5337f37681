package agent

import (
	"os"
	"path/filepath"
	"strings"

	agentConfig "github.com/erg0nix/miran/internal/config/agent"
)

// Registry discovers agent personas stored as directories under AgentsDir.
type Registry struct {
	AgentsDir string
}

func NewRegistry(dataDir string) *Registry {
	return &Registry{
		AgentsDir: filepath.Join(dataDir, "agents"),
	}
}

// Summary describes an agent directory without loading its prompt.
type Summary struct {
	Name        string
	DisplayName string
	HasPrompt   bool
	HasConfig   bool
}

// List returns every agent directory that has a config or a prompt.
func (r *Registry) List() ([]Summary, error) {
	entries, err := os.ReadDir(r.AgentsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var agents []Summary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		configPath, promptPath := r.paths(name)

		hasConfig := fileExists(configPath)
		hasPrompt := fileExists(promptPath)

		if !hasConfig && !hasPrompt {
			continue
		}

		displayName := name
		if hasConfig {
			cfg, err := agentConfig.LoadTOML(configPath)
			if err == nil && cfg != nil && cfg.Name != "" {
				displayName = cfg.Name
			}
		}

		agents = append(agents, Summary{
			Name:        name,
			DisplayName: displayName,
			HasPrompt:   hasPrompt,
			HasConfig:   hasConfig,
		})
	}

	return agents, nil
}

// Load resolves the named agent. Fields missing from its config.toml are left
// empty for the caller to fill from the global config.
func (r *Registry) Load(name string) (*agentConfig.AgentConfig, error) {
	configPath, promptPath := r.paths(name)

	hasConfig := fileExists(configPath)
	hasPrompt := fileExists(promptPath)

	if !hasConfig && !hasPrompt {
		available, _ := r.List()
		var names []string
		for _, a := range available {
			names = append(names, a.Name)
		}
		return nil, &AgentNotFoundError{Name: name, Available: names}
	}

	cfg := &agentConfig.AgentConfig{
		Name:        name,
		DisplayName: name,
	}

	if hasConfig {
		tomlCfg, err := agentConfig.LoadTOML(configPath)
		if err != nil {
			return nil, &AgentConfigError{Name: name, Err: err}
		}
		if tomlCfg != nil {
			if tomlCfg.Name != "" {
				cfg.DisplayName = tomlCfg.Name
			}
			cfg.Objective = tomlCfg.Objective
			cfg.Bridge = tomlCfg.Bridge
			cfg.ReservedInitiator = tomlCfg.ReservedInitiator
		}
	}

	if hasPrompt {
		tmpl, err := agentConfig.LoadPrompt(promptPath)
		if err != nil {
			return nil, &AgentConfigError{Name: name, Err: err}
		}
		cfg.PromptTemplate = tmpl
	}

	return cfg, nil
}

// Exists reports whether name has an agent directory with a config or prompt.
func (r *Registry) Exists(name string) bool {
	configPath, promptPath := r.paths(name)
	return fileExists(configPath) || fileExists(promptPath)
}

func (r *Registry) paths(name string) (string, string) {
	agentDir := filepath.Join(r.AgentsDir, name)
	return filepath.Join(agentDir, agentConfig.ConfigFile), filepath.Join(agentDir, agentConfig.PromptFile)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type AgentNotFoundError struct {
	Name      string
	Available []string
}

func (e *AgentNotFoundError) Error() string {
	msg := "agent not found: " + e.Name
	if len(e.Available) > 0 {
		msg += "; available: " + strings.Join(e.Available, ", ")
	}
	return msg
}

type AgentConfigError struct {
	Name string
	Err  error
}

func (e *AgentConfigError) Error() string {
	return "invalid config for agent " + e.Name + ": " + e.Err.Error()
}

func (e *AgentConfigError) Unwrap() error {
	return e.Err
}
