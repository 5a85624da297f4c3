package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/internal/config"
	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/core/services"
	"github.com/hamshifts/shift-scheduler/pkg/core/shiftid"
)

func testApp() *AppContext {
	return &AppContext{
		Cfg: &config.Config{
			ShiftIDAlgorithm: "djb2",
			Events: []config.EventConfig{
				{
					ID:         "field-day",
					Name:       "Field Day",
					Start:      time.Date(2026, 5, 27, 0, 0, 0, 0, time.UTC),
					End:        time.Date(2026, 5, 27, 6, 0, 0, 0, time.UTC),
					TimeZoneID: "America/New_York",
				},
			},
		},
		Logger: zap.NewNop(),
	}
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseShiftTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"RFC 3339 UTC", "2026-05-27T00:00:00Z", 1779840000000, false},
		{"RFC 3339 with offset", "2026-05-26T20:00:00-04:00", 1779840000000, false},
		{"sub-second dropped", "2026-05-27T00:00:00.750Z", 1779840000000, false},
		{"milliseconds", "1779840000000", 1779840000000, false},
		{"milliseconds with remainder", "1779840000999", 1779840000000, false},
		{"garbage", "yesterday", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, err := parseShiftTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ms)
		})
	}
}

func TestShiftIDCmd(t *testing.T) {
	t.Run("uses configured algorithm", func(t *testing.T) {
		out, err := runCmd(t, ShiftIDCmd(testApp()), "2026-05-27T00:00:00Z", "20", "phone")
		require.NoError(t, err)
		assert.Equal(t, "9adbca2f\n", out)
	})

	t.Run("algorithm flag overrides config", func(t *testing.T) {
		out, err := runCmd(t, ShiftIDCmd(testApp()), "--algorithm", "uuidv5", "1779840000000", "20", "phone")
		require.NoError(t, err)
		assert.Equal(t, shiftid.ComputeShiftUUID(1779840000000, "20", "phone")+"\n", out)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := runCmd(t, ShiftIDCmd(testApp()), "--algorithm", "md5", "1779840000000", "20", "phone")
		assert.Error(t, err)
	})

	t.Run("wrong arg count", func(t *testing.T) {
		_, err := runCmd(t, ShiftIDCmd(testApp()), "1779840000000", "20")
		assert.Error(t, err)
	})
}

func TestSlotsCmd(t *testing.T) {
	out, err := runCmd(t, SlotsCmd(testApp()), "field-day")
	require.NoError(t, err)

	assert.Contains(t, out, "1. 2026-05-27T00:00:00Z")
	assert.Contains(t, out, "3. 2026-05-27T04:00:00Z")
	assert.Contains(t, out, "EDT")
	assert.Contains(t, out, "3 slots")

	_, err = runCmd(t, SlotsCmd(testApp()), "unknown")
	assert.Error(t, err)
}

func TestParseDocument(t *testing.T) {
	t.Run("null is absent", func(t *testing.T) {
		doc, err := parseDocument([]byte(" null\n"))
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("empty is absent", func(t *testing.T) {
		doc, err := parseDocument(nil)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("object", func(t *testing.T) {
		doc, err := parseDocument([]byte(`{"reservedBy": null, "band": "20"}`))
		require.NoError(t, err)
		assert.Equal(t, "20", doc["band"])
		reservedBy, ok := doc.NullableString("reservedBy")
		assert.True(t, ok)
		assert.Nil(t, reservedBy)
	})

	t.Run("array rejected", func(t *testing.T) {
		_, err := parseDocument([]byte(`[1, 2]`))
		assert.Error(t, err)
	})
}

func TestReadDocument_EmptyPath(t *testing.T) {
	doc, err := readDocument("")
	require.NoError(t, err)
	assert.Nil(t, doc)

	_, err = readDocument(t.TempDir() + "/missing.json")
	assert.Error(t, err)
}

func TestRosterCell(t *testing.T) {
	uid := "alice"

	tests := []struct {
		name     string
		shift    *model.Shift
		expected string
		color    string
	}{
		{"missing", nil, "-", colorDim},
		{"open", &model.Shift{ID: "a"}, "open", colorGreen},
		{"reserved with callsign", &model.Shift{ReservedBy: &uid, ReservedDetails: &model.ReservedDetails{Callsign: "K1ABC"}}, "K1ABC", colorRed},
		{"reserved without details", &model.Shift{ReservedBy: &uid}, "alice", colorRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, color := rosterCell(tt.shift)
			assert.Equal(t, tt.expected, cell)
			assert.Equal(t, tt.color, color)
		})
	}
}

func TestRenderRoster(t *testing.T) {
	uid := "alice"
	slot := time.Date(2026, 5, 27, 0, 0, 0, 0, time.UTC)
	result := &services.ListShiftsResult{
		Event:   &model.Event{ID: "field-day", Name: "Field Day"},
		Slots:   []time.Time{slot},
		Columns: []services.RosterColumn{{Band: "40", Mode: "cw"}, {Band: "20", Mode: "phone"}},
		Matrix: [][]*model.Shift{{
			{ID: "a", Time: slot, Band: "40", Mode: "cw", ReservedBy: &uid, ReservedDetails: &model.ReservedDetails{Callsign: "W1AW"}},
			nil,
		}},
		Total:    1,
		Reserved: 1,
	}

	var out bytes.Buffer
	renderRoster(&out, result, time.UTC, false)
	text := out.String()

	assert.Contains(t, text, "Field Day (1 of 1 shifts reserved)")
	assert.Contains(t, text, "40/cw")
	assert.Contains(t, text, "20/phone")
	assert.Contains(t, text, "W1AW")
	assert.NotContains(t, text, "\033[")
}

func TestRunSession(t *testing.T) {
	var called []string
	echo := &cobra.Command{
		Use:   "echo <word>",
		Short: "Echo a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			called = append(called, args[0])
			return nil
		},
	}
	commands := map[string]*cobra.Command{"echo": echo}

	input := strings.NewReader("help\n\necho one\necho\nbogus\necho two\nexit\necho three\n")
	var out bytes.Buffer

	require.NoError(t, runSession(input, &out, commands))

	assert.Equal(t, []string{"one", "two"}, called)
	assert.Contains(t, out.String(), "Available commands:")
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunSession_QuotedFlag(t *testing.T) {
	var (
		gotArgs []string
		name    string
	)
	claim := &cobra.Command{
		Use:   "claimShift <event_id> <shift_id>",
		Short: "Reserve a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gotArgs = args
			return nil
		},
	}
	claim.Flags().StringVar(&name, "name", "", "Operator name")
	claim.Flags().String("callsign", "", "Operator callsign")

	input := strings.NewReader(`claimShift fd2026 9adbca2f --callsign K1ABC --name "Alice Smith"` + "\nexit\n")
	var out bytes.Buffer

	require.NoError(t, runSession(input, &out, map[string]*cobra.Command{"claimShift": claim}))

	assert.Equal(t, []string{"fd2026", "9adbca2f"}, gotArgs)
	assert.Equal(t, "Alice Smith", name)
	assert.NotContains(t, out.String(), "Error")
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
		wantErr  bool
	}{
		{"plain words", "listShifts fd2026", []string{"listShifts", "fd2026"}, false},
		{"extra spaces", "  slots   fd2026  ", []string{"slots", "fd2026"}, false},
		{"double quotes", `claimShift a b --name "Alice Smith"`, []string{"claimShift", "a", "b", "--name", "Alice Smith"}, false},
		{"single quotes", `decide read 'users/a b'`, []string{"decide", "read", "users/a b"}, false},
		{"quote inside word", `--name="Alice Smith"`, []string{"--name=Alice Smith"}, false},
		{"empty quoted arg", `claimShift a b --grid ""`, []string{"claimShift", "a", "b", "--grid", ""}, false},
		{"empty line", "", nil, false},
		{"unclosed quote", `claimShift --name "Alice`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}
