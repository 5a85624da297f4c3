package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStart = time.Date(2026, 5, 27, 0, 0, 0, 0, time.UTC)
	testEnd   = testStart.Add(48 * time.Hour)
)

func validEvent() EventConfig {
	return EventConfig{
		ID:     "fd2026",
		Name:   "Field Day 2026",
		Admins: []string{"admin-a"},
		Start:  testStart,
		End:    testEnd,
	}
}

func postgresStore() StoreConfig {
	return StoreConfig{Driver: DriverPostgres, PostgresURL: "postgres://localhost:5432/shifts"}
}

func TestValidate_ValidConfig(t *testing.T) {
	event := validEvent()
	event.Bands = []string{"20", "40", "satellite"}
	event.Modes = []string{"phone", "cw"}
	event.Step = time.Hour
	event.TimeZoneID = "America/New_York"
	event.SlotRule = "FREQ=DAILY;BYHOUR=18,20;BYMINUTE=0;BYSECOND=0"

	cfg := &Config{
		Store:            postgresStore(),
		ShiftIDAlgorithm: "uuidv5",
		BatchSize:        250,
		WriteConcurrency: 8,
		Events:           []EventConfig{event},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{Store: postgresStore()}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		Store: StoreConfig{Driver: DriverPostgres},
		// Missing PostgresURL
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_FirestoreNeedsProject(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Driver: DriverFirestore}}
	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "projectID")

	cfg.Store.Firestore = FirestoreConfig{ProjectID: "hamshifts", EmulatorHost: "localhost:8080"}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"unknown driver", func(cfg *Config) { cfg.Store.Driver = "mongo" }},
		{"unknown algorithm", func(cfg *Config) { cfg.ShiftIDAlgorithm = "sha256" }},
		{"batch too large", func(cfg *Config) { cfg.BatchSize = 501 }},
		{"end before start", func(cfg *Config) { cfg.Events[0].End = testStart.Add(-time.Hour) }},
		{"unknown band", func(cfg *Config) { cfg.Events[0].Bands = []string{"11"} }},
		{"unknown mode", func(cfg *Config) { cfg.Events[0].Modes = []string{"ssb"} }},
		{"empty admin", func(cfg *Config) { cfg.Events[0].Admins = []string{""} }},
		{"tiny step", func(cfg *Config) { cfg.Events[0].Step = time.Second }},
		{"bad timezone", func(cfg *Config) { cfg.Events[0].TimeZoneID = "Mars/Olympus" }},
		{"duplicate event id", func(cfg *Config) { cfg.Events = append(cfg.Events, validEvent()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Store: postgresStore(), Events: []EventConfig{validEvent()}}
			tt.mutate(cfg)

			err := Validate(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidate_InvalidRRule(t *testing.T) {
	event := validEvent()
	event.SlotRule = "INVALID_RRULE_SYNTAX"
	cfg := &Config{Store: postgresStore(), Events: []EventConfig{event}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_MultipleEventsOneInvalidRRule(t *testing.T) {
	first := validEvent()
	first.SlotRule = "FREQ=HOURLY;INTERVAL=4"
	second := validEvent()
	second.ID = "wfd2027"
	second.SlotRule = "INVALID_RRULE"
	cfg := &Config{Store: postgresStore(), Events: []EventConfig{first, second}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "events[1]")
}

func TestConfigEvent(t *testing.T) {
	cfg := &Config{Events: []EventConfig{validEvent()}}

	event, err := cfg.Event("fd2026")
	require.NoError(t, err)
	assert.Equal(t, "Field Day 2026", event.Name)

	_, err = cfg.Event("missing")
	assert.Error(t, err)
}

func TestEventConfigToModel(t *testing.T) {
	event := validEvent()
	event.Start = testStart.In(time.FixedZone("EDT", -4*3600))

	m := event.ToModel()
	assert.Equal(t, "fd2026", m.ID)
	assert.Equal(t, []string{"admin-a"}, m.Admins)
	assert.True(t, m.StartTime.Equal(testStart))
	assert.Equal(t, time.UTC, m.StartTime.Location())
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
store:
  driver: firestore
  firestore:
    projectID: hamshifts-dev
    emulatorHost: localhost:8080
shiftIdAlgorithm: djb2
batchSize: 100
events:
  - id: fd2026
    name: Field Day 2026
    coordinatorCallsign: W1AW
    admins:
      - admin-a
      - admin-b
    start: 2026-05-27T00:00:00Z
    end: 2026-05-29T00:00:00Z
    timeZoneId: America/New_York
    bands: ["20", "40"]
    modes: [phone, cw]
    step: 3h
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, DriverFirestore, cfg.Store.Driver)
	assert.Equal(t, "hamshifts-dev", cfg.Store.Firestore.ProjectID)
	assert.Equal(t, "localhost:8080", cfg.Store.Firestore.EmulatorHost)
	assert.Equal(t, "djb2", cfg.ShiftIDAlgorithm)
	assert.Equal(t, 100, cfg.BatchSize)

	require.Len(t, cfg.Events, 1)
	event := cfg.Events[0]
	assert.Equal(t, "W1AW", event.CoordinatorCallsign)
	assert.Equal(t, []string{"admin-a", "admin-b"}, event.Admins)
	assert.True(t, event.Start.Equal(testStart))
	assert.True(t, event.End.Equal(testEnd))
	assert.Equal(t, []string{"20", "40"}, event.Bands)
	assert.Equal(t, 3*time.Hour, event.Step)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	invalidConfig := `
store:
  driver: postgres
  postgresURL: postgres://localhost/shifts
events:
  - id: fd2026
    name: Field Day 2026
    admins: [admin-a]
    start: 2026-05-27T00:00:00Z
    end: 2026-05-29T00:00:00Z
    slotRule: "NOT_A_RULE"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte("store: [unclosed"), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFindConfigFile_PrefersEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.WriteFile("shift_config.yaml", []byte(""), 0644))
	require.NoError(t, os.WriteFile("shift_config.staging.yaml", []byte(""), 0644))

	path, err := findConfigFile("shift_config.staging.yaml", "shift_config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "shift_config.staging.yaml", path)

	path, err = findConfigFile("shift_config.prod.yaml", "shift_config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "shift_config.yaml", path)

	_, err = findConfigFile("missing.yaml")
	assert.Error(t, err)
}
