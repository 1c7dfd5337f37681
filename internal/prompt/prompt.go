// Package prompt renders the agent system prompt from a template.
package prompt

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
)

// DefaultTemplate is the embedded system prompt used when an agent does not
// ship its own agent.md.
//
//go:embed prompts/system-prompt.md
var DefaultTemplate string

const (
	DefaultAgentName = "Miran"
	DefaultObjective = "Hold presence within local environment"
	DefaultBridge    = "None"
)

// Values are the configurable substitutions of the template.
type Values struct {
	AgentName string
	Objective string
	Bridge    string
}

// DefaultValues returns the values used by the bundled miran agent.
func DefaultValues() Values {
	return Values{
		AgentName: DefaultAgentName,
		Objective: DefaultObjective,
		Bridge:    DefaultBridge,
	}
}

type templateData struct {
	AgentName string
	Objective string
	Bridge    string
	OS        string
}

type Formatter struct {
	tmpl   *template.Template
	values Values
	env    EnvironmentProvider
	logger *slog.Logger
}

// NewFormatter parses templateText and checks that it renders with the
// given values, so Format never fails afterwards. A nil env uses the host
// environment and a nil logger uses slog.Default.
func NewFormatter(templateText string, values Values, env EnvironmentProvider, logger *slog.Logger) (*Formatter, error) {
	if env == nil {
		env = HostEnvironment{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.New("system-prompt").Option("missingkey=error").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	f := &Formatter{tmpl: tmpl, values: values, env: env, logger: logger}

	if _, err := f.render(UnknownOS); err != nil {
		return nil, fmt.Errorf("render prompt template: %w", err)
	}

	return f, nil
}

// Format renders the prompt. It is idempotent and reports an unavailable OS
// name as UnknownOS instead of failing. A template that only fails for the
// reported OS name is rendered again with UnknownOS.
func (f *Formatter) Format() string {
	osName, err := f.env.OSName()
	if err != nil {
		f.logger.Warn("operating system unavailable, using placeholder", "placeholder", UnknownOS, "error", err)
		osName = UnknownOS
	}

	out, err := f.render(osName)
	if err == nil {
		return out
	}

	// NewFormatter proved the template renders with UnknownOS.
	f.logger.Error("render prompt, retrying with placeholder", "os", osName, "placeholder", UnknownOS, "error", err)
	out, _ = f.render(UnknownOS)
	return out
}

func (f *Formatter) render(osName string) (string, error) {
	var sb strings.Builder

	data := templateData{
		AgentName: f.values.AgentName,
		Objective: f.values.Objective,
		Bridge:    f.values.Bridge,
		OS:        osName,
	}

	if err := f.tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
