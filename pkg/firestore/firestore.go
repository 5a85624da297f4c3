// Package firestore stores events and shifts in Cloud Firestore using the
// events/{eventId}/shifts/{shiftId} hierarchy that client rules are written
// against.
package firestore

import (
	"context"
	"fmt"
	"os"

	gcfirestore "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/db"
)

// Scopes requested for service account credentials
const (
	ScopeDatastore     = "https://www.googleapis.com/auth/datastore"
	ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"
)

// Options configures the Firestore connection
type Options struct {
	ProjectID string
	// CredentialsFile is a service account key; empty uses application
	// default credentials
	CredentialsFile string
	// EmulatorHost points the client at a local emulator (host:port)
	EmulatorHost string
}

// DB provides event and shift storage using Firestore
type DB struct {
	client *gcfirestore.Client
	logger *zap.Logger
}

var _ db.Database = (*DB)(nil)

// NewDB initializes a Firebase app and opens its Firestore client
func NewDB(ctx context.Context, opts Options, logger *zap.Logger) (*DB, error) {
	if opts.EmulatorHost != "" {
		// the Firestore client reads this at construction time
		if err := os.Setenv("FIRESTORE_EMULATOR_HOST", opts.EmulatorHost); err != nil {
			return nil, fmt.Errorf("failed to set emulator host: %w", err)
		}
	}

	clientOpts, err := clientOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: opts.ProjectID}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{client: client, logger: logger}, nil
}

func clientOptions(ctx context.Context, opts Options) ([]option.ClientOption, error) {
	if opts.CredentialsFile == "" || opts.EmulatorHost != "" {
		return nil, nil
	}

	data, err := os.ReadFile(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, ScopeDatastore, ScopeCloudPlatform)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return []option.ClientOption{option.WithCredentials(creds)}, nil
}

// Close releases the Firestore client
func (d *DB) Close() error {
	if err := d.client.Close(); err != nil {
		return fmt.Errorf("failed to close firestore client: %w", err)
	}
	return nil
}

func (d *DB) events() *gcfirestore.CollectionRef {
	return d.client.Collection(model.CollectionEvents)
}

func (d *DB) shifts(eventID string) *gcfirestore.CollectionRef {
	return d.events().Doc(eventID).Collection(model.CollectionShifts)
}
