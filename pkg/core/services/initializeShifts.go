package services

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/core/shiftid"
)

const (
	// MaxBatchSize is the largest number of documents written per batch
	MaxBatchSize = 500
	// DefaultWriteConcurrency bounds in-flight writes within a batch
	DefaultWriteConcurrency = 10
)

// InitializeShiftsStore defines the database operations needed to seed shifts
type InitializeShiftsStore interface {
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	UpsertShift(ctx context.Context, eventID string, shift *model.Shift) (bool, error)
}

// InitOptions controls how the shift universe is built and written
type InitOptions struct {
	Generator shiftid.Generator
	// Bands and Modes default to every known band and mode when empty
	Bands []string
	Modes []string
	// BatchSize is clamped to [1, MaxBatchSize]; zero means MaxBatchSize
	BatchSize   int
	Concurrency int
}

// InitResult reports seeding progress. It is returned alongside any error
// so the caller can see how far a failed run got.
type InitResult struct {
	EventID string
	// Total is the size of the shift universe
	Total int
	// Written counts shifts created by this run
	Written int
	// Skipped counts shifts that already existed; their reservation was kept
	Skipped int
	Batches int
}

// InitializeShifts writes every (slot, band, mode) shift of an event.
// Existing shifts keep their reservation, so running it again is safe.
// Batches are written one after another; a failing batch stops the run and
// nothing already written is rolled back.
func InitializeShifts(ctx context.Context, database InitializeShiftsStore, logger *zap.Logger, eventID string, opts InitOptions) (*InitResult, error) {
	result := &InitResult{EventID: eventID}

	logger.Debug("Initializing shifts", zap.String("event_id", eventID))

	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return result, fmt.Errorf("failed to fetch event: %w", err)
	}

	bands := opts.Bands
	if len(bands) == 0 {
		bands = model.Bands
	}
	modes := opts.Modes
	if len(modes) == 0 {
		modes = model.Modes
	}

	shifts, err := opts.Generator.Universe(*event, bands, modes)
	if err != nil {
		return result, fmt.Errorf("failed to generate shifts: %w", err)
	}
	result.Total = len(shifts)

	for i := range shifts {
		if err := model.Validate(shifts[i]); err != nil {
			return result, fmt.Errorf("invalid shift %s/%s at %s: %w",
				shifts[i].Band, shifts[i].Mode, shifts[i].Time.Format("2006-01-02T15:04Z"), err)
		}
	}

	if len(shifts) == 0 {
		logger.Warn("Event window produced no shifts",
			zap.String("event_id", eventID),
			zap.Time("start", event.StartTime),
			zap.Time("end", event.EndTime))
		return result, nil
	}

	batchSize := clampBatchSize(opts.BatchSize)
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultWriteConcurrency
	}

	logger.Debug("Generated shift universe",
		zap.Int("total", len(shifts)),
		zap.Int("bands", len(bands)),
		zap.Int("modes", len(modes)),
		zap.Int("batch_size", batchSize))

	for batch := range slices.Chunk(shifts, batchSize) {
		created, existing, err := writeBatch(ctx, database, eventID, batch, concurrency)
		result.Written += created
		result.Skipped += existing
		if err != nil {
			return result, fmt.Errorf("failed to write batch %d: %w", result.Batches+1, err)
		}
		result.Batches++

		logger.Debug("Batch written",
			zap.Int("batch", result.Batches),
			zap.Int("created", created),
			zap.Int("existing", existing))
	}

	logger.Debug("Shifts initialized",
		zap.String("event_id", eventID),
		zap.Int("total", result.Total),
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// writeBatch upserts one batch with bounded concurrency. The counts cover
// every write that succeeded, even when another write in the batch failed.
func writeBatch(ctx context.Context, database InitializeShiftsStore, eventID string, batch []model.Shift, concurrency int) (created, existing int, err error) {
	var createdCount, existingCount atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range batch {
		shift := &batch[i]
		g.Go(func() error {
			wasCreated, err := database.UpsertShift(gctx, eventID, shift)
			if err != nil {
				return fmt.Errorf("failed to upsert shift %s: %w", shift.ID, err)
			}
			if wasCreated {
				createdCount.Add(1)
			} else {
				existingCount.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	return int(createdCount.Load()), int(existingCount.Load()), err
}

func clampBatchSize(n int) int {
	if n <= 0 || n > MaxBatchSize {
		return MaxBatchSize
	}
	return n
}
