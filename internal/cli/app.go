package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/erg0nix/miran/internal/agent"
	"github.com/erg0nix/miran/internal/config"
	agentConfig "github.com/erg0nix/miran/internal/config/agent"
	"github.com/erg0nix/miran/internal/prompt"
	"github.com/spf13/cobra"
)

// environment is swapped in tests to pin the reported operating system.
var environment prompt.EnvironmentProvider = prompt.HostEnvironment{}

type App struct {
	Config     config.Config
	ConfigPath string
	Logger     *slog.Logger
	Registry   *agent.Registry
	Session    *agent.Session
}

func newApp(cmd *cobra.Command) (*App, error) {
	configPath, _ := cmd.Flags().GetString("config")
	dataDirOverride, _ := cmd.Flags().GetString("data-dir")
	agentOverride, _ := cmd.Flags().GetString("agent")
	nameOverride, _ := cmd.Flags().GetString("name")

	if configPath == "" {
		configPath = config.DefaultPath()
	}

	// A config that cannot be read or written falls back to the defaults; a
	// config that does not parse is still an error.
	cfg, loadErr := config.LoadOrCreate(configPath)
	if loadErr != nil {
		var pathErr *fs.PathError
		if !errors.As(loadErr, &pathErr) {
			return nil, fmt.Errorf("load config: %w", loadErr)
		}
		cfg = config.Default()
	}

	cfg = config.LoadEnvOverrides(cfg)
	if dataDirOverride != "" {
		cfg.DataDir = dataDirOverride
	}
	if agentOverride != "" {
		cfg.AgentName = agentOverride
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if loadErr != nil {
		logger.Warn("config unavailable, using defaults", "path", configPath, "error", loadErr)
	}

	if err := agentConfig.EnsureDefaults(cfg.DataDir); err != nil {
		logger.Warn("failed to ensure default agents", "error", err)
	}

	registry := agent.NewRegistry(cfg.DataDir)

	agentCfg, err := loadAgent(registry, cfg.AgentName, logger)
	if err != nil {
		return nil, fmt.Errorf("load agent: %w", err)
	}

	resolved := agent.Resolve(*agentCfg, cfg)
	if nameOverride != "" {
		resolved.DisplayName = nameOverride
	}

	session, err := agent.NewSession(resolved, agent.SessionOptions{Env: environment, Logger: logger})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
		Registry:   registry,
		Session:    session,
	}, nil
}

// loadAgent serves the built-in persona when the default agent has no
// directory, which happens when the data dir is not writable.
func loadAgent(registry *agent.Registry, name string, logger *slog.Logger) (*agentConfig.AgentConfig, error) {
	if name == agentConfig.DefaultAgentName && !registry.Exists(name) {
		logger.Warn("default agent directory missing, using built-in persona", "dir", registry.AgentsDir)
		return &agentConfig.AgentConfig{Name: name, DisplayName: prompt.DefaultAgentName}, nil
	}
	return registry.Load(name)
}
