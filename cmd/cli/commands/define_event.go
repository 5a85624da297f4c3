package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hamshifts/shift-scheduler/pkg/core/services"
	"github.com/hamshifts/shift-scheduler/pkg/core/shiftid"
)

// DefineEventCmd creates the defineEvent command
func DefineEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "defineEvent <event_id>",
		Short: "Write a configured event and its admins to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventCfg, err := app.Cfg.Event(args[0])
			if err != nil {
				return err
			}

			database, err := app.Store()
			if err != nil {
				return err
			}

			event, err := services.DefineEvent(app.Ctx, database, app.Logger, eventCfg.ToModel())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Event defined successfully!\n\n")
			fmt.Fprintf(out, "Event ID: %s\n", event.ID)
			fmt.Fprintf(out, "Name:     %s\n", event.Name)
			fmt.Fprintf(out, "Window:   %s to %s\n", event.StartTime.Format("2006-01-02 15:04Z"), event.EndTime.Format("2006-01-02 15:04Z"))
			fmt.Fprintf(out, "Admins:   %s\n", strings.Join(event.Admins, ", "))
			if eventCfg.SlotRule == "" {
				fmt.Fprintf(out, "Slots:    %d\n", shiftid.SlotCount(event.StartTime, event.EndTime, eventCfg.Step))
			} else {
				fmt.Fprintf(out, "Slots:    %s\n", eventCfg.SlotRule)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
