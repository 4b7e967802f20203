// Package cli wires the locallibrary commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/logger"
)

type rootOptions struct {
	envFile      string
	databasePath string

	cfg *config.Config
}

// NewRootCommand builds the command tree. Running the binary without a
// subcommand starts the server.
func NewRootCommand(version, commit string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "locallibrary",
		Short:         "Local Library catalog server",
		Long:          `Local Library keeps a catalog of genres, authors and books and serves it over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, version)
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&opts.databasePath, "db", "", "path to the catalog database (overrides DATABASE_PATH)")

	root.AddCommand(
		newServeCommand(opts, version),
		newSeedCommand(opts),
		newReconcileCommand(opts),
		newVersionCommand(version, commit),
	)

	return root
}

func (o *rootOptions) load() error {
	if err := config.LoadEnvFile(o.envFile); err != nil {
		return err
	}
	o.cfg = config.NewConfig()
	if o.databasePath != "" {
		o.cfg.Database.Path = o.databasePath
	}
	logger.Init(o.cfg.Global.Env, o.cfg.Log.Level)
	return nil
}
