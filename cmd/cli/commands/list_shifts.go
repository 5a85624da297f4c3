package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/core/services"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

// ListShiftsCmd creates the listShifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "listShifts <event_id>",
		Short: "Show the shift roster of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listShifts command", zap.String("event_id", args[0]))

			database, err := app.Store()
			if err != nil {
				return err
			}

			result, err := services.ListShifts(app.Ctx, database, app.Logger, args[0])
			if err != nil {
				return err
			}

			loc := time.UTC
			if result.Event.TimeZoneID != "" {
				if l, err := time.LoadLocation(result.Event.TimeZoneID); err == nil {
					loc = l
				} else {
					app.Logger.Warn("Unknown event time zone, using UTC",
						zap.String("time_zone", result.Event.TimeZoneID))
				}
			}

			renderRoster(cmd.OutOrStdout(), result, loc, !noColor)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")

	return cmd
}

// renderRoster prints slots as rows and band/mode combinations as columns
func renderRoster(out io.Writer, result *services.ListShiftsResult, loc *time.Location, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	fmt.Fprintf(out, "\n%s (%d of %d shifts reserved)\n\n", result.Event.Name, result.Reserved, result.Total)

	timeColWidth := 22
	colWidth := 12
	for _, row := range result.Matrix {
		for _, s := range row {
			if s != nil && s.ReservedDetails != nil && len(s.ReservedDetails.Callsign)+2 > colWidth {
				colWidth = len(s.ReservedDetails.Callsign) + 2
			}
		}
	}

	fmt.Fprintf(out, "%-*s", timeColWidth, "")
	for _, c := range result.Columns {
		fmt.Fprintf(out, "%-*s", colWidth, c.String())
	}
	fmt.Fprintln(out)

	fmt.Fprint(out, strings.Repeat("-", timeColWidth+colWidth*len(result.Columns)))
	fmt.Fprintln(out)

	for i, slot := range result.Slots {
		fmt.Fprintf(out, "%-*s", timeColWidth, slot.In(loc).Format("Mon 02 Jan 15:04 MST"))
		for _, s := range result.Matrix[i] {
			cell, code := rosterCell(s)
			fmt.Fprint(out, paint(code, fmt.Sprintf("%-*s", colWidth, cell)))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Legend:")
	fmt.Fprintf(out, "  %s = open\n", paint(colorGreen, "open"))
	fmt.Fprintf(out, "  %s = reserved by that operator\n", paint(colorRed, "CALLSIGN"))
	fmt.Fprintf(out, "  %s    = no shift for this band/mode\n", paint(colorDim, "-"))
}

func rosterCell(s *model.Shift) (string, string) {
	switch {
	case s == nil:
		return "-", colorDim
	case !s.Reserved():
		return "open", colorGreen
	case s.ReservedDetails != nil && s.ReservedDetails.Callsign != "":
		return s.ReservedDetails.Callsign, colorRed
	default:
		return *s.ReservedBy, colorRed
	}
}
