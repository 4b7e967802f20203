package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/entrypoint"
)

func newServeCommand(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, version)
		},
	}
}

func runServe(opts *rootOptions, version string) error {
	return entrypoint.Run(opts.cfg, version)
}

func newVersionCommand(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "locallibrary %s (commit %s)\n", version, commit)
		},
	}
}
