package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/db"
)

// mockStore is an in-memory db.Database. UpdateShift holds the store lock
// for the whole callback, which gives it transaction semantics.
type mockStore struct {
	mu          sync.Mutex
	events      map[string]model.Event
	shifts      map[string]map[string]model.Shift
	upsertCalls int

	getEventErr   error
	listEventsErr error
	upsertErr     error
	// failShiftIDs makes UpsertShift fail for these ids
	failShiftIDs map[string]error
}

func newMockStore(events ...model.Event) *mockStore {
	m := &mockStore{
		events: make(map[string]model.Event),
		shifts: make(map[string]map[string]model.Shift),
	}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockStore) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getEventErr != nil {
		return nil, m.getEventErr
	}
	e, ok := m.events[eventID]
	if !ok {
		return nil, db.ErrEventNotFound
	}
	return &e, nil
}

func (m *mockStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listEventsErr != nil {
		return nil, m.listEventsErr
	}
	var events []model.Event
	for _, e := range m.events {
		events = append(events, e)
	}
	slices.SortFunc(events, func(a, b model.Event) int { return strings.Compare(a.ID, b.ID) })
	return events, nil
}

func (m *mockStore) UpsertEvent(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.events[event.ID] = *event
	return nil
}

func (m *mockStore) UpsertShift(ctx context.Context, eventID string, shift *model.Shift) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if err, ok := m.failShiftIDs[shift.ID]; ok {
		return false, err
	}
	if _, ok := m.shifts[eventID]; !ok {
		m.shifts[eventID] = make(map[string]model.Shift)
	}
	existing, ok := m.shifts[eventID][shift.ID]
	if !ok {
		m.shifts[eventID][shift.ID] = *shift
		return true, nil
	}
	existing.Time = shift.Time
	existing.Band = shift.Band
	existing.Mode = shift.Mode
	m.shifts[eventID][shift.ID] = existing
	return false, nil
}

func (m *mockStore) GetShifts(ctx context.Context, eventID string) ([]model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var shifts []model.Shift
	for _, s := range m.shifts[eventID] {
		shifts = append(shifts, s)
	}
	slices.SortFunc(shifts, func(a, b model.Shift) int { return strings.Compare(a.ID, b.ID) })
	return shifts, nil
}

func (m *mockStore) UpdateShift(ctx context.Context, eventID, shiftID string, fn db.ShiftUpdateFunc) (*model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[eventID]
	if !ok {
		return nil, db.ErrEventNotFound
	}
	shift, ok := m.shifts[eventID][shiftID]
	if !ok {
		return nil, db.ErrShiftNotFound
	}

	updated, err := fn(&event, shift.ToDocument())
	if err != nil {
		return nil, err
	}
	shift.ReservedBy, shift.ReservedDetails, err = updated.Reservation()
	if err != nil {
		return nil, err
	}
	m.shifts[eventID][shiftID] = shift
	return &shift, nil
}

func (m *mockStore) Close() error {
	return nil
}

func (m *mockStore) shift(eventID, shiftID string) (model.Shift, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shifts[eventID][shiftID]
	return s, ok
}

func (m *mockStore) putShift(eventID string, s model.Shift) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[eventID]; !ok {
		m.shifts[eventID] = make(map[string]model.Shift)
	}
	m.shifts[eventID][s.ID] = s
}

var _ db.Database = (*mockStore)(nil)

// testEvent is a 24 hour event starting 2026-05-27T00:00Z
func testEvent(id string, admins ...string) model.Event {
	start := time.Date(2026, 5, 27, 0, 0, 0, 0, time.UTC)
	return model.Event{
		ID:        id,
		Name:      "Field Day " + id,
		Admins:    admins,
		StartTime: start,
		EndTime:   start.Add(24 * time.Hour),
	}
}
