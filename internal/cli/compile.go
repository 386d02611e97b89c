package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperbot/paperbot/paperbot"
)

func newCompileCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compile <query>...",
		Short: "Compile a DSL query to the arXiv query grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			result, err := a.newParser(false).Parse(input)
			if err != nil {
				var perr *paperbot.Error
				if errors.As(err, &perr) {
					return fmt.Errorf("%s", perr.UserMessage())
				}
				return err
			}

			q := result.Query
			if asJSON {
				out, err := json.MarshalIndent(map[string]any{
					"query":      q.Query,
					"maxResults": q.MaxResults,
					"sortBy":     q.SortBy.Code(),
					"sortOrder":  q.SortOrder.Code(),
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), q.Echo)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the compiled query as JSON")
	return cmd
}
