// Package shiftid derives deterministic shift document keys and enumerates
// the time slots of an event.
//
// A shift key depends only on (time, band, mode), so generating the same slot
// twice always addresses the same document. Every producer and consumer of
// keys must agree on one Algorithm; mixing them silently splits reads and
// writes for the same logical shift.
package shiftid

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Algorithm names a key derivation scheme
type Algorithm string

const (
	// AlgorithmDJB2 is a 32-bit djb2 (xor variant) hash rendered as hex
	AlgorithmDJB2 Algorithm = "djb2"
	// AlgorithmUUIDv5 is a namespaced SHA-1 UUID
	AlgorithmUUIDv5 Algorithm = "uuidv5"
)

// Namespace is the UUIDv5 namespace for shift keys
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://hamshifts.org/shift"))

// IDFunc computes a shift key from normalized epoch milliseconds, band and mode
type IDFunc func(timeMillis int64, band, mode string) string

// ParseAlgorithm resolves a configured algorithm name. Empty selects djb2.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case "", AlgorithmDJB2:
		return AlgorithmDJB2, nil
	case AlgorithmUUIDv5:
		return AlgorithmUUIDv5, nil
	}
	return "", fmt.Errorf("unknown shift id algorithm %q", name)
}

// Func returns the key function for the algorithm
func (a Algorithm) Func() IDFunc {
	if a == AlgorithmUUIDv5 {
		return ComputeShiftUUID
	}
	return ComputeShiftID
}

// ComputeShiftID hashes "<timeMillis>-<band>-<mode>" with djb2.
// Callers must normalize timeMillis to whole seconds first (see
// NormalizeMillis); the hash does not do it for them.
func ComputeShiftID(timeMillis int64, band, mode string) string {
	return djb2(keyString(timeMillis, band, mode))
}

// ComputeShiftUUID is the UUIDv5 alternative to ComputeShiftID
func ComputeShiftUUID(timeMillis int64, band, mode string) string {
	return uuid.NewSHA1(Namespace, []byte(keyString(timeMillis, band, mode))).String()
}

func keyString(timeMillis int64, band, mode string) string {
	return strconv.FormatInt(timeMillis, 10) + "-" + band + "-" + mode
}

func djb2(s string) string {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		h = (h * 33) ^ uint32(s[i])
	}
	return strconv.FormatUint(uint64(h), 16)
}

// NormalizeMillis zeroes the sub-second part of an epoch millisecond value
func NormalizeMillis(ms int64) int64 {
	r := ms % 1000
	if r < 0 {
		r += 1000
	}
	return ms - r
}

// NormalizeTime returns t as whole-second epoch milliseconds
func NormalizeTime(t time.Time) int64 {
	return t.Unix() * 1000
}

// ForTime normalizes t and computes its key with fn
func ForTime(fn IDFunc, t time.Time, band, mode string) string {
	return fn(NormalizeTime(t), band, mode)
}
