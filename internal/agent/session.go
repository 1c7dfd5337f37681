package agent

import (
	"fmt"
	"log/slog"

	"github.com/erg0nix/miran/internal/config"
	agentConfig "github.com/erg0nix/miran/internal/config/agent"
	"github.com/erg0nix/miran/internal/core"
	"github.com/erg0nix/miran/internal/identity"
	"github.com/erg0nix/miran/internal/prompt"
)

// Session pairs the prompt formatter and identity record of one agent for
// the lifetime of the process.
type Session struct {
	ID        core.SessionID
	Agent     agentConfig.AgentConfig
	Formatter *prompt.Formatter
	Record    *identity.Record
}

// SessionOptions carries the collaborators a session is built with. Zero
// values fall back to the host environment, slog.Default and time.Now.
type SessionOptions struct {
	Env             prompt.EnvironmentProvider
	Logger          *slog.Logger
	IdentityOptions []identity.Option
}

// Resolve fills the fields an agent directory left empty from the global config.
func Resolve(a agentConfig.AgentConfig, cfg config.Config) agentConfig.AgentConfig {
	if a.DisplayName == "" {
		a.DisplayName = a.Name
	}
	if a.Objective == "" {
		a.Objective = cfg.Prompt.Objective
	}
	if a.Bridge == "" {
		a.Bridge = cfg.Prompt.Bridge
	}
	if a.ReservedInitiator == "" {
		a.ReservedInitiator = cfg.Identity.ReservedInitiator
	}
	if a.PromptTemplate == "" {
		a.PromptTemplate = prompt.DefaultTemplate
	}
	return a
}

func NewSession(a agentConfig.AgentConfig, opts SessionOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := core.NewSessionID()
	logger = logger.With("session", string(id), "agent", a.Name)

	values := prompt.Values{
		AgentName: a.DisplayName,
		Objective: a.Objective,
		Bridge:    a.Bridge,
	}

	formatter, err := prompt.NewFormatter(a.PromptTemplate, values, opts.Env, logger)
	if err != nil {
		return nil, &AgentConfigError{Name: a.Name, Err: fmt.Errorf("prompt: %w", err)}
	}

	identityOpts := append([]identity.Option{
		identity.WithLogger(logger),
		identity.WithReservedInitiator(a.ReservedInitiator),
	}, opts.IdentityOptions...)

	record := identity.New(a.DisplayName, identityOpts...)

	logger.Debug("session created", "signature", record.Signature())

	return &Session{
		ID:        id,
		Agent:     a,
		Formatter: formatter,
		Record:    record,
	}, nil
}
