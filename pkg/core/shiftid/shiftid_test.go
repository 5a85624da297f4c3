package shiftid

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeShiftID_ReferenceVectors(t *testing.T) {
	tests := []struct {
		name     string
		millis   int64
		band     string
		mode     string
		expected string
	}{
		{"20m phone", 1779840000000, "20", "phone", "9adbca2f"},
		{"20m cw", 1779840000000, "20", "cw", "81602887"},
		{"40m cw two hours later", 1779847200000, "40", "cw", "83d7e444"},
		{"epoch 80m digital", 0, "80", "digital", "5e10a3c7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeShiftID(tt.millis, tt.band, tt.mode))
		})
	}
}

func TestComputeShiftID_Deterministic(t *testing.T) {
	for _, ms := range []int64{0, 1, 1779840000000, 4102444800000} {
		for _, band := range []string{"160", "20", "satellite"} {
			for _, mode := range []string{"phone", "cw", "digital"} {
				assert.Equal(t, ComputeShiftID(ms, band, mode), ComputeShiftID(ms, band, mode))
			}
		}
	}
}

func TestComputeShiftID_SubSecondNormalization(t *testing.T) {
	clean := ComputeShiftID(1779840000000, "20", "phone")

	for _, raw := range []int64{1779840000000, 1779840000001, 1779840000227, 1779840000999} {
		assert.Equal(t, clean, ComputeShiftID(NormalizeMillis(raw), "20", "phone"), "raw millis %d", raw)
	}

	// Without normalization the keys diverge, which is why callers must normalize
	assert.NotEqual(t, clean, ComputeShiftID(1779840000227, "20", "phone"))
}

func TestNormalizeMillis_Negative(t *testing.T) {
	assert.Equal(t, int64(-1000), NormalizeMillis(-1))
	assert.Equal(t, int64(-2000), NormalizeMillis(-1001))
	assert.Equal(t, int64(-1000), NormalizeMillis(-1000))
}

func TestNormalizeTime(t *testing.T) {
	at := time.Date(2026, 5, 27, 0, 0, 0, 227_000_000, time.UTC)
	assert.Equal(t, int64(1779840000000), NormalizeTime(at))
	assert.Equal(t, "9adbca2f", ForTime(ComputeShiftID, at, "20", "phone"))
}

func TestComputeShiftUUID(t *testing.T) {
	a := ComputeShiftUUID(1779840000000, "20", "phone")
	b := ComputeShiftUUID(1779840000000, "20", "phone")
	c := ComputeShiftUUID(1779840000000, "20", "cw")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestParseAlgorithm(t *testing.T) {
	algo, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmDJB2, algo)

	algo, err = ParseAlgorithm("uuidv5")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmUUIDv5, algo)
	assert.Equal(t, ComputeShiftUUID(5000, "20", "cw"), algo.Func()(5000, "20", "cw"))

	_, err = ParseAlgorithm("md5")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shift id algorithm")
}
