package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erg0nix/miran/internal/prompt"
)

func newReplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reply <message>",
		Short: "Answer a request for the go-ahead with the continuation signal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, ok := prompt.Reply(strings.Join(args, " "))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("no continuation requested"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
