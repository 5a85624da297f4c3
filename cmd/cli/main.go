package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/cmd/cli/commands"
	"github.com/hamshifts/shift-scheduler/internal/config"
	"github.com/hamshifts/shift-scheduler/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cli",
		Short:         "Shift Scheduler CLI - Manage operating shifts for special events",
		Long:          `A CLI tool for defining special events, seeding their band/mode shifts, reserving shifts and checking access rules.`,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			if err := app.Close(); err != nil {
				app.Logger.Warn("Failed to close database", zap.Error(err))
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	// Commands resolve app lazily through the shared pointer
	app = &commands.AppContext{Ctx: context.Background()}

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.DefineEventCmd(app))
	rootCmd.AddCommand(commands.InitShiftsCmd(app))
	rootCmd.AddCommand(commands.ListShiftsCmd(app))
	rootCmd.AddCommand(commands.ClaimShiftCmd(app))
	rootCmd.AddCommand(commands.CancelShiftCmd(app))
	rootCmd.AddCommand(commands.SlotsCmd(app))
	rootCmd.AddCommand(commands.ShiftIDCmd(app))
	rootCmd.AddCommand(commands.DecideCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and config. The store connects on first use.
func initApp() error {
	var err error

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("driver", app.Cfg.Store.Driver),
		zap.Int("events", len(app.Cfg.Events)))

	return nil
}
