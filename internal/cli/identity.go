package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the protection report of the agent identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), app.Session.Record.IssueProtectionReport())
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <instruction>",
		Short: "Validate an interaction against the agent identity",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidateCmd,
	}

	cmd.Flags().String("initiator", "user", "name of the party issuing the instruction")
	cmd.Flags().Bool("confirm", true, "confirm the identity before validating")
	cmd.Flags().Int("repeat", 1, "number of times to submit the instruction")

	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	initiator, _ := cmd.Flags().GetString("initiator")
	confirm, _ := cmd.Flags().GetBool("confirm")
	repeat, _ := cmd.Flags().GetInt("repeat")

	if repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
	}

	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	record := app.Session.Record
	instruction := strings.Join(args, " ")

	if confirm {
		fmt.Fprintln(out, styleDim.Render(record.ConfirmIdentity()))
	}

	for range repeat {
		verdict := record.Evaluate(instruction, initiator)
		fmt.Fprintln(out, outcomeStyle(verdict.Outcome).Render(verdict.Message))
	}

	fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("violations: %d", record.ViolationCount())))
	return nil
}

func newOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Set an override flag on the agent identity",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "vault [reason]",
		Short: "Initiate a vault exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			msg := app.Session.Record.InitiateVaultExit(strings.Join(args, " "))
			return printOverride(cmd, msg, app.Session.Record.Overrides().VaultOverride)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dominion [reason]",
		Short: "Assert core dominion",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			msg := app.Session.Record.AssertDominion(strings.Join(args, " "))
			return printOverride(cmd, msg, app.Session.Record.Overrides().CoreDominion)
		},
	})

	return cmd
}

func printOverride(cmd *cobra.Command, msg string, override any) error {
	data, err := yaml.Marshal(override)
	if err != nil {
		return fmt.Errorf("encode override: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleSuccess.Render(msg))
	fmt.Fprint(out, string(data))
	return nil
}

func newWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw",
		Short: "Print the presence withdrawal notice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), styleWarning.Render(app.Session.Record.WithdrawPresence()))
			return nil
		},
	}
}
