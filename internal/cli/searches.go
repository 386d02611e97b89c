package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/paperbot/paperbot/paperbot"
	"github.com/paperbot/paperbot/paperbot/store"
)

func newSearchesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "searches",
		Short: "Manage saved searches",
	}
	cmd.AddCommand(newSearchesSaveCmd(a))
	cmd.AddCommand(newSearchesListCmd(a))
	cmd.AddCommand(newSearchesRmCmd(a))
	return cmd
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	adapter, err := a.storeAdapter()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, adapter, a.newParser(false), a.log)
}

func newSearchesSaveCmd(a *app) *cobra.Command {
	var channel string

	cmd := &cobra.Command{
		Use:   "save <name> <query>...",
		Short: "Compile and store a search under a name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			input := strings.Join(args[1:], " ")

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := st.Save(cmd.Context(), name, channel, input)
			if err != nil {
				var perr *paperbot.Error
				if errors.As(err, &perr) {
					return fmt.Errorf("%s", perr.UserMessage())
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved %q: %s\n", saved.Name, saved.Query)
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "channel the periodic runner posts results to")
	return cmd
}

func newSearchesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			searches, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(searches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved searches")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCHANNEL\tINPUT\tQUERY")
			for _, s := range searches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.Channel, s.Input, s.Query)
			}
			return w.Flush()
		},
	}
}

func newSearchesRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a saved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no saved search named %q", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
			return nil
		},
	}
}
