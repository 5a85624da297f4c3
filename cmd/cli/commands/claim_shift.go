package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/core/services"
)

// ClaimShiftCmd creates the claimShift command
func ClaimShiftCmd(app *AppContext) *cobra.Command {
	var user model.User

	cmd := &cobra.Command{
		Use:   "claimShift <event_id> <shift_id>",
		Short: "Reserve an open shift for an operator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("claimShift command",
				zap.String("event_id", args[0]),
				zap.String("shift_id", args[1]),
				zap.String("uid", user.ID))

			database, err := app.Store()
			if err != nil {
				return err
			}

			shift, err := services.ClaimShift(app.Ctx, database, app.Logger, args[0], args[1], user)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Shift %s (%s %s at %s) reserved for %s\n\n",
				shift.ID, shift.Band, shift.Mode, shift.Time.UTC().Format("2006-01-02 15:04Z"), user.Callsign)
			return nil
		},
	}

	cmd.Flags().StringVar(&user.ID, "uid", "", "User id of the operator")
	cmd.Flags().StringVar(&user.Name, "name", "", "Operator name")
	cmd.Flags().StringVar(&user.Callsign, "callsign", "", "Operator callsign")
	cmd.Flags().StringVar(&user.GridSquare, "grid", "", "Operator grid square")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("callsign")

	return cmd
}

// CancelShiftCmd creates the cancelShift command
func CancelShiftCmd(app *AppContext) *cobra.Command {
	var uid string

	cmd := &cobra.Command{
		Use:   "cancelShift <event_id> <shift_id>",
		Short: "Release a reserved shift",
		Long: `Release a reserved shift. --uid must be the operator holding the shift
or an admin of the event.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("cancelShift command",
				zap.String("event_id", args[0]),
				zap.String("shift_id", args[1]),
				zap.String("uid", uid))

			database, err := app.Store()
			if err != nil {
				return err
			}

			shift, err := services.CancelShift(app.Ctx, database, app.Logger, args[0], args[1], &model.Principal{UID: uid})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Shift %s (%s %s at %s) is open again\n\n",
				shift.ID, shift.Band, shift.Mode, shift.Time.UTC().Format("2006-01-02 15:04Z"))
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "User id performing the cancellation")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}
