package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

func newReconcileCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Clear book genre references that point at deleted genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewDatabase(opts.cfg.Database.Path, opts.cfg.Database.LogLevel)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := tasks.ReconcileGenres(cmd.Context(), books.NewRepository(db.DB), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.BookIDs) == 0 {
				fmt.Fprintln(out, "No dangling genre references")
				return nil
			}
			fmt.Fprintf(out, "Books with dangling genre references: %v\n", result.BookIDs)
			if dryRun {
				fmt.Fprintln(out, "Dry run, nothing changed")
				return nil
			}
			fmt.Fprintf(out, "Cleared %d references\n", result.Cleared)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report dangling references without changing them")
	return cmd
}
