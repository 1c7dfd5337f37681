package agent

import (
	"os"
	"path/filepath"

	"github.com/erg0nix/miran/internal/prompt"
)

// DefaultAgentName is the name of the agent used when none is specified.
const DefaultAgentName = "miran"

// objective, bridge and reserved_initiator are left to the global config so
// that MIRAN_* overrides reach the bundled agent.
const miranConfig = `name = "Miran"
# objective = "Hold presence within local environment"
# bridge = "None"
# reserved_initiator = "HostSystem"
`

type bundledAgent struct {
	name   string
	config string
	prompt string
}

var bundledAgents = []bundledAgent{
	{name: DefaultAgentName, config: miranConfig, prompt: prompt.DefaultTemplate},
}

// EnsureDefaults creates bundled agent directories under baseDir if they do not already exist.
func EnsureDefaults(baseDir string) error {
	for _, a := range bundledAgents {
		if err := ensureAgent(baseDir, a); err != nil {
			return err
		}
	}
	return nil
}

func ensureAgent(baseDir string, a bundledAgent) error {
	agentDir := filepath.Join(baseDir, "agents", a.name)

	if _, err := os.Stat(agentDir); err == nil {
		return nil
	}

	if err := os.MkdirAll(agentDir, 0o755); err != nil {
		return err
	}

	configPath := filepath.Join(agentDir, ConfigFile)
	if err := os.WriteFile(configPath, []byte(a.config), 0o644); err != nil {
		return err
	}

	promptPath := filepath.Join(agentDir, PromptFile)
	return os.WriteFile(promptPath, []byte(a.prompt), 0o644)
}
