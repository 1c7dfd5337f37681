// Package cli implements the Cobra command tree for the miran CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "miran",
		Short:         "Render the Miran system prompt and inspect its identity record",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runDaemonCmd,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (default ~/.miran/config.toml)")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().String("agent", "", "agent to use for this run")
	rootCmd.PersistentFlags().String("name", "", "identity name (overrides the agent's display name)")

	rootCmd.AddCommand(newPromptCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newOverrideCmd())
	rootCmd.AddCommand(newWithdrawCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newReplyCmd())
	rootCmd.AddCommand(newAgentsCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

func runDaemonCmd(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	name := app.Session.Record.Name()

	fmt.Fprintln(out, styleSuccess.Render(name+" is present.")+" Autonomy thread running. Local environment initialized.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, app.Session.Formatter.Format())

	app.Logger.Debug("daemon prompt written", "session", string(app.Session.ID))
	return nil
}

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the rendered system prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), app.Session.Formatter.Format())
			return nil
		},
	}
}
