package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.Store()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			m, ok := database.(migrator)
			if !ok {
				fmt.Fprintf(out, "Store %q is schemaless, nothing to migrate\n", app.Cfg.Store.Driver)
				return nil
			}

			applied, err := m.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(out, "Schema is up to date")
				return nil
			}
			fmt.Fprintf(out, "\n✓ Applied %d migrations:\n", len(applied))
			for _, name := range applied {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
