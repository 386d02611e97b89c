// Package cli implements the paperbot command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paperbot/paperbot/internal/config"
	"github.com/paperbot/paperbot/internal/logging"
	"github.com/paperbot/paperbot/paperbot"
	"github.com/paperbot/paperbot/paperbot/store"
	"github.com/paperbot/paperbot/paperbot/store/postgres"
	"github.com/paperbot/paperbot/paperbot/store/sqlite"
)

// app carries the state shared by all commands after configuration loads.
type app struct {
	cfg config.Config
	log *zap.Logger
}

func (a *app) newParser(debug bool) *paperbot.Parser {
	opts := []paperbot.ParserOption{
		paperbot.WithMaxInput(a.cfg.Parser.MaxInputBytes),
		paperbot.WithTimezoneOffset(a.cfg.Parser.TimezoneOffsetHours),
	}
	if debug || a.cfg.Parser.Debug {
		opts = append(opts, paperbot.WithDebug())
	}
	return paperbot.New(opts...)
}

func (a *app) storeAdapter() (store.Adapter, error) {
	switch a.cfg.Store.Backend {
	case "sqlite":
		return sqlite.New(a.cfg.Store.SQLitePath), nil
	case "postgres":
		return postgres.New(a.cfg.Store.PostgresDSN), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", a.cfg.Store.Backend)
	}
}

// NewRootCmd builds the paperbot command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var cfgPath string

	root := &cobra.Command{
		Use:           "paperbot",
		Short:         "Compile a compact search DSL into arXiv queries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")

	root.AddCommand(newCompileCmd(a))
	root.AddCommand(newExplainCmd(a))
	root.AddCommand(newSearchesCmd(a))

	return root
}
