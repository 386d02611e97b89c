package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperbot/paperbot/paperbot"
	"github.com/paperbot/paperbot/paperbot/query"
)

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <query>...",
		Short: "Show the tokens and AST a query compiles through",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			result, err := a.newParser(true).Parse(input)
			if err != nil {
				var perr *paperbot.Error
				if errors.As(err, &perr) {
					return fmt.Errorf("%s stage: %s", perr.Stage, perr.UserMessage())
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "tokens:")
			for _, tok := range result.Tokens {
				fmt.Fprintf(out, "  %-9s %q (column %d)\n", tok.Kind, tok.Value, tok.Pos)
			}
			fmt.Fprintln(out, "ast:")
			for _, line := range strings.Split(strings.TrimRight(query.DebugString(result.AST), "\n"), "\n") {
				fmt.Fprintf(out, "  %s\n", line)
			}
			fmt.Fprintln(out, "compiled:")
			fmt.Fprintf(out, "  %s\n", result.Query.Echo)
			return nil
		},
	}
}
