package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/core/policy"
)

// CheckAccessStore defines the database operations needed to resolve admins
type CheckAccessStore interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
}

// CheckAccess evaluates a request with admin membership taken from the
// current event documents
func CheckAccess(ctx context.Context, database CheckAccessStore, logger *zap.Logger, req policy.Request) (policy.Result, error) {
	events, err := database.ListEvents(ctx)
	if err != nil {
		return policy.Result{}, fmt.Errorf("failed to fetch events: %w", err)
	}

	logger.Debug("Loaded admin index", zap.Int("event_count", len(events)))

	engine := policy.NewEngine(policy.NewAdminIndex(events...), logger)
	return engine.Decide(req), nil
}
