package cli

import (
	"fmt"
	"io"

	"github.com/erg0nix/miran/internal/agent"
	"github.com/spf13/cobra"
)

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List available agents",
		Args:  cobra.NoArgs,
		RunE:  runAgentsCmd,
	}
}

func runAgentsCmd(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	agentList, err := app.Registry.List()
	if err != nil {
		return fmt.Errorf("list agents: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(agentList) == 0 {
		fmt.Fprintln(out, styledError("No agents found.", "Create an agent by adding a directory to "+app.Registry.AgentsDir))
		return nil
	}

	printAgentsTable(out, agentList, app.Session.Agent.Name)
	return nil
}

func printAgentsTable(out io.Writer, agentList []agent.Summary, active string) {
	t := newTable("NAME", "DISPLAY NAME", "PROMPT", "CONFIG")

	for _, a := range agentList {
		name := a.Name
		if a.Name == active {
			name = styleActive.Render(a.Name + " *")
		}
		prompt := styleDim.Render("-")
		if a.HasPrompt {
			prompt = styleSuccess.Render("✓")
		}
		config := styleDim.Render("-")
		if a.HasConfig {
			config = styleSuccess.Render("✓")
		}
		t.Row(name, a.DisplayName, prompt, config)
	}

	fmt.Fprintln(out, t.Render())
}
