package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamshifts/shift-scheduler/pkg/core/shiftid"
)

// ShiftIDCmd creates the shiftId command
func ShiftIDCmd(app *AppContext) *cobra.Command {
	var algorithmName string

	cmd := &cobra.Command{
		Use:   "shiftId <time> <band> <mode>",
		Short: "Compute the document key of a shift",
		Long: `Compute the document key of a shift from its start time, band and mode.

<time> is RFC 3339 (2026-05-27T00:00:00Z) or epoch milliseconds. Sub-second
precision is discarded before hashing.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := parseShiftTime(args[0])
			if err != nil {
				return err
			}

			if algorithmName == "" {
				algorithmName = app.Cfg.ShiftIDAlgorithm
			}
			algorithm, err := shiftid.ParseAlgorithm(algorithmName)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), algorithm.Func()(ms, args[1], args[2]))
			return nil
		},
	}

	cmd.Flags().StringVar(&algorithmName, "algorithm", "", "Key algorithm (djb2 or uuidv5), defaults to config")

	return cmd
}

// parseShiftTime accepts RFC 3339 or epoch milliseconds and returns
// normalized milliseconds
func parseShiftTime(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return shiftid.NormalizeMillis(ms), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("time must be RFC 3339 or epoch milliseconds, got: %s", s)
	}
	return shiftid.NormalizeTime(t), nil
}
