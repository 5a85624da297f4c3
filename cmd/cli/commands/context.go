package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/internal/config"
	"github.com/hamshifts/shift-scheduler/pkg/core/shiftid"
	"github.com/hamshifts/shift-scheduler/pkg/db"
	"github.com/hamshifts/shift-scheduler/pkg/firestore"
	"github.com/hamshifts/shift-scheduler/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}

// Store returns the configured database, connecting on first use so that
// offline commands never need one
func (app *AppContext) Store() (db.Database, error) {
	if app.Database != nil {
		return app.Database, nil
	}

	database, err := OpenDatabase(app.Ctx, app.Cfg.Store, app.Logger)
	if err != nil {
		return nil, err
	}
	app.Database = database
	return database, nil
}

// Close releases the database if one was opened
func (app *AppContext) Close() error {
	if app.Database == nil {
		return nil
	}
	return app.Database.Close()
}

// OpenDatabase connects to the store selected by store.driver
func OpenDatabase(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (db.Database, error) {
	logger.Info("Connecting to database", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverPostgres:
		database, err := postgres.NewDB(ctx, cfg.PostgresURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return database, nil

	case config.DriverFirestore:
		database, err := firestore.NewDB(ctx, firestore.Options{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
			EmulatorHost:    cfg.Firestore.EmulatorHost,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to firestore: %w", err)
		}
		return database, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// IDFunc returns the shift key function chosen in config
func (app *AppContext) IDFunc() (shiftid.IDFunc, error) {
	algorithm, err := shiftid.ParseAlgorithm(app.Cfg.ShiftIDAlgorithm)
	if err != nil {
		return nil, err
	}
	return algorithm.Func(), nil
}

// Generator builds the shift generator for a configured event
func (app *AppContext) Generator(event *config.EventConfig) (shiftid.Generator, error) {
	idFn, err := app.IDFunc()
	if err != nil {
		return shiftid.Generator{}, err
	}
	return shiftid.Generator{
		ID:   idFn,
		Step: event.Step,
		Rule: event.SlotRule,
	}, nil
}
