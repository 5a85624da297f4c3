package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// SlotsCmd creates the slots command
func SlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "slots <event_id>",
		Short: "List the slot start times of a configured event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := app.Cfg.Event(args[0])
			if err != nil {
				return err
			}

			gen, err := app.Generator(event)
			if err != nil {
				return err
			}

			slots, err := gen.Slots(event.ToModel())
			if err != nil {
				return err
			}

			loc := time.UTC
			if event.TimeZoneID != "" {
				if loc, err = time.LoadLocation(event.TimeZoneID); err != nil {
					return fmt.Errorf("failed to load time zone: %w", err)
				}
			}

			app.Logger.Debug("slots command", zap.String("event_id", event.ID))

			out := cmd.OutOrStdout()
			count := 0
			for slot := range slots {
				count++
				fmt.Fprintf(out, "%3d. %s", count, slot.UTC().Format(time.RFC3339))
				if loc != time.UTC {
					fmt.Fprintf(out, "  (%s)", slot.In(loc).Format("Mon Jan 02 15:04 MST"))
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "\n%d slots\n", count)

			return nil
		},
	}
}
