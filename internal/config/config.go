package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

const configFileBase = "shift_config"

// Store drivers
const (
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
)

// FirestoreConfig points at a Firestore project or emulator
type FirestoreConfig struct {
	ProjectID       string `yaml:"projectID"`
	CredentialsFile string `yaml:"credentialsFile,omitempty"`
	EmulatorHost    string `yaml:"emulatorHost,omitempty" validate:"omitempty,hostname_port"`
}

// StoreConfig selects and configures the document store
type StoreConfig struct {
	Driver      string          `yaml:"driver" validate:"required,oneof=postgres firestore"`
	PostgresURL string          `yaml:"postgresURL,omitempty" validate:"required_if=Driver postgres"`
	Firestore   FirestoreConfig `yaml:"firestore,omitempty"`
}

// EventConfig is the operator's definition of an event and its shift grid
type EventConfig struct {
	ID                  string    `yaml:"id" validate:"required"`
	Name                string    `yaml:"name" validate:"required"`
	Slug                string    `yaml:"slug,omitempty"`
	CoordinatorName     string    `yaml:"coordinatorName,omitempty"`
	CoordinatorCallsign string    `yaml:"coordinatorCallsign,omitempty"`
	Admins              []string  `yaml:"admins" validate:"dive,required"`
	Start               time.Time `yaml:"start" validate:"required"`
	End                 time.Time `yaml:"end" validate:"required,gtfield=Start"`
	TimeZoneID          string    `yaml:"timeZoneId,omitempty" validate:"omitempty,timezone"`
	// Bands and Modes restrict the grid; empty means all
	Bands []string `yaml:"bands,omitempty" validate:"dive,band"`
	Modes []string `yaml:"modes,omitempty" validate:"dive,mode"`
	// Step is the slot length, default 2h
	Step time.Duration `yaml:"step,omitempty" validate:"omitempty,min=1m"`
	// SlotRule is an RRULE opening only recurring windows, e.g.
	// FREQ=DAILY;BYHOUR=18,20;BYMINUTE=0;BYSECOND=0
	SlotRule string `yaml:"slotRule,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Store            StoreConfig   `yaml:"store"`
	ShiftIDAlgorithm string        `yaml:"shiftIdAlgorithm,omitempty" validate:"omitempty,oneof=djb2 uuidv5"`
	BatchSize        int           `yaml:"batchSize,omitempty" validate:"omitempty,min=1,max=500"`
	WriteConcurrency int           `yaml:"writeConcurrency,omitempty" validate:"omitempty,min=1,max=100"`
	Events           []EventConfig `yaml:"events" validate:"unique=ID,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("band", func(fl validator.FieldLevel) bool {
		return model.ValidBand(fl.Field().String())
	})
	validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		return model.ValidMode(fl.Field().String())
	})
}

// LoadWithEnv loads and validates the config, preferring
// shift_config.<env>.yaml over shift_config.yaml so each environment can point
// at its own store. It looks in the current directory first, then in the
// user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	var names []string
	if env != "" {
		names = append(names, fmt.Sprintf("%s.%s.yaml", configFileBase, env))
	}
	names = append(names, configFileBase+".yaml")

	configPath, err := findConfigFile(names...)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Store.Driver == DriverFirestore && cfg.Store.Firestore.ProjectID == "" {
		return errors.New("config validation failed: store.firestore.projectID is required for the firestore driver")
	}

	for i, event := range cfg.Events {
		if event.SlotRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(event.SlotRule); err != nil {
			return fmt.Errorf("invalid rrule in events[%d].slotRule: %w", i, err)
		}
	}

	return nil
}

// Event returns the configured event with the given id
func (c *Config) Event(id string) (*EventConfig, error) {
	for i := range c.Events {
		if c.Events[i].ID == id {
			return &c.Events[i], nil
		}
	}
	return nil, fmt.Errorf("event %q is not configured", id)
}

// ToModel converts the configured event into its stored document
func (e EventConfig) ToModel() model.Event {
	return model.Event{
		ID:                  e.ID,
		Name:                e.Name,
		Slug:                e.Slug,
		CoordinatorName:     e.CoordinatorName,
		CoordinatorCallsign: e.CoordinatorCallsign,
		Admins:              e.Admins,
		StartTime:           e.Start.UTC(),
		EndTime:             e.End.UTC(),
		TimeZoneID:          e.TimeZoneID,
	}
}

// findConfigFile returns the first of names found in the current directory,
// then the first found in the home directory
func findConfigFile(names ...string) (string, error) {
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range names {
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
