package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config and agent directories",
		Args:  cobra.NoArgs,
		RunE:  runInitCmd,
	}
}

// runInitCmd relies on newApp, which already creates whatever is missing.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleLabel.Render("config:"), app.ConfigPath)
	fmt.Fprintln(out, styleLabel.Render("agents:"), app.Registry.AgentsDir)
	fmt.Fprintln(out, styleLabel.Render("active:"), app.Session.Agent.Name)
	return nil
}
