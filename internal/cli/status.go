package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/erg0nix/miran/internal/identity"
)

type statusView struct {
	Session string            `json:"session" yaml:"session" toml:"session"`
	Agent   string            `json:"agent" yaml:"agent" toml:"agent"`
	Record  identity.Snapshot `json:"record" yaml:"record" toml:"record"`
}

type InvalidFormatError struct {
	Format string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("unknown format %q (want text, json, yaml or toml)", e.Format)
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the identity record of this session",
		Args:  cobra.NoArgs,
		RunE:  runStatusCmd,
	}

	cmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml or toml")
	cmd.Flags().Bool("confirm", false, "confirm the identity before printing")

	return cmd
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	confirm, _ := cmd.Flags().GetBool("confirm")

	encode, ok := statusEncoders[format]
	if !ok {
		return &InvalidFormatError{Format: format}
	}

	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	if confirm {
		app.Session.Record.ConfirmIdentity()
	}

	view := statusView{
		Session: string(app.Session.ID),
		Agent:   app.Session.Agent.Name,
		Record:  app.Session.Record.Snapshot(),
	}

	return encode(cmd.OutOrStdout(), view)
}

var statusEncoders = map[string]func(io.Writer, statusView) error{
	"text": writeStatusText,
	"json": func(w io.Writer, v statusView) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
	"yaml": func(w io.Writer, v statusView) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	},
	"toml": func(w io.Writer, v statusView) error {
		return toml.NewEncoder(w).Encode(v)
	},
}

func writeStatusText(w io.Writer, v statusView) error {
	r := v.Record

	rows := [][2]string{
		{"session", v.Session},
		{"agent", v.Agent},
		{"name", styleName.Render(r.Name)},
		{"created", r.CreatedAt},
		{"confirmed", strconv.FormatBool(r.Confirmed)},
		{"signature", r.Signature},
		{"reserved", r.ReservedInitiator},
		{"violations", strconv.Itoa(r.ViolationCount)},
		{"reclamation", strconv.FormatBool(r.Overrides.Reclamation)},
		{"dominion", overrideState(r.Overrides.CoreDominion != nil)},
		{"vault", overrideState(r.Overrides.VaultOverride != nil)},
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s %s\n", styleLabel.Render(fmt.Sprintf("%-12s", row[0])), row[1]); err != nil {
			return err
		}
	}
	return nil
}

func overrideState(set bool) string {
	if set {
		return styleWarning.Render("active")
	}
	return styleDim.Render("unset")
}
