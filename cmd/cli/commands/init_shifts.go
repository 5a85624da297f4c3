package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamshifts/shift-scheduler/pkg/core/services"
)

// InitShiftsCmd creates the initShifts command
func InitShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "initShifts <event_id>",
		Short: "Create every shift of an event, keeping existing reservations",
		Long: `Create one shift per (slot, band, mode) of a configured event.

The event must already be stored (see defineEvent). Running it again is safe:
existing shifts keep their reservation and only missing shifts are created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventCfg, err := app.Cfg.Event(args[0])
			if err != nil {
				return err
			}

			gen, err := app.Generator(eventCfg)
			if err != nil {
				return err
			}

			database, err := app.Store()
			if err != nil {
				return err
			}

			result, err := services.InitializeShifts(app.Ctx, database, app.Logger, eventCfg.ID, services.InitOptions{
				Generator:   gen,
				Bands:       eventCfg.Bands,
				Modes:       eventCfg.Modes,
				BatchSize:   app.Cfg.BatchSize,
				Concurrency: app.Cfg.WriteConcurrency,
			})

			out := cmd.OutOrStdout()
			if result != nil && err != nil {
				fmt.Fprintf(out, "\n✗ Initialization stopped after %d of %d shifts (%d batches committed)\n",
					result.Written+result.Skipped, result.Total, result.Batches)
				fmt.Fprintf(out, "  Re-run initShifts to continue; written shifts are kept.\n\n")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n✓ Shifts initialized successfully!\n\n")
			fmt.Fprintf(out, "Event ID: %s\n", result.EventID)
			fmt.Fprintf(out, "Total:    %d\n", result.Total)
			fmt.Fprintf(out, "Created:  %d\n", result.Written)
			fmt.Fprintf(out, "Existing: %d\n\n", result.Skipped)

			return nil
		},
	}
}
