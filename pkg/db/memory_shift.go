package db

import (
	"context"
	"sync"
	"time"

	"treelot/pkg/core/model"
)

// MemoryShiftStore is the in-memory reference implementation of ShiftStore.
// One mutex guards the primary map and both secondary indices; every
// operation holds it for its full duration, giving per-store
// linearizability but no cross-store atomicity.
type MemoryShiftStore struct {
	mu       sync.Mutex
	shifts   map[model.ShiftID]model.Shift
	bySeason map[model.SeasonID]map[model.ShiftID]struct{}
}

// NewMemoryShiftStore creates an empty in-memory shift store.
func NewMemoryShiftStore(initial ...model.Shift) *MemoryShiftStore {
	s := &MemoryShiftStore{
		shifts:   make(map[model.ShiftID]model.Shift),
		bySeason: make(map[model.SeasonID]map[model.ShiftID]struct{}),
	}
	for _, shift := range initial {
		s.shifts[shift.ID] = shift
		s.indexSeason(shift)
	}
	return s
}

func (s *MemoryShiftStore) indexSeason(shift model.Shift) {
	if shift.SeasonID == "" {
		return
	}
	if s.bySeason[shift.SeasonID] == nil {
		s.bySeason[shift.SeasonID] = make(map[model.ShiftID]struct{})
	}
	s.bySeason[shift.SeasonID][shift.ID] = struct{}{}
}

func (s *MemoryShiftStore) GetShift(_ context.Context, id model.ShiftID) (model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[id]
	if !ok {
		return model.Shift{}, model.ErrShiftNotFound
	}
	return shift, nil
}

func (s *MemoryShiftStore) GetShiftsForDateRange(_ context.Context, start, end time.Time) ([]model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Shift
	for _, shift := range s.shifts {
		if !shift.Date.Before(start) && !shift.Date.After(end) {
			out = append(out, shift)
		}
	}
	return out, nil
}

func (s *MemoryShiftStore) GetShiftsForSeason(_ context.Context, seasonID model.SeasonID) ([]model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Shift
	for id := range s.bySeason[seasonID] {
		out = append(out, s.shifts[id])
	}
	return out, nil
}

func (s *MemoryShiftStore) CreateShift(_ context.Context, shift model.Shift) (model.ShiftID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.shifts[shift.ID]; exists {
		return "", model.ErrAlreadyExists
	}
	s.shifts[shift.ID] = shift
	s.indexSeason(shift)
	return shift.ID, nil
}

func (s *MemoryShiftStore) UpdateShift(_ context.Context, shift model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exists := s.shifts[shift.ID]
	if !exists {
		return model.ErrShiftNotFound
	}
	if old.SeasonID != shift.SeasonID && old.SeasonID != "" {
		delete(s.bySeason[old.SeasonID], shift.ID)
	}
	s.shifts[shift.ID] = shift
	s.indexSeason(shift)
	return nil
}

func (s *MemoryShiftStore) DeleteShift(_ context.Context, id model.ShiftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, exists := s.shifts[id]
	if !exists {
		return model.ErrShiftNotFound
	}
	if shift.SeasonID != "" {
		delete(s.bySeason[shift.SeasonID], id)
	}
	delete(s.shifts, id)
	return nil
}

// ObserveShift emits the current snapshot and closes. A remote backend
// would keep this subscription live.
func (s *MemoryShiftStore) ObserveShift(ctx context.Context, id model.ShiftID) <-chan model.Shift {
	ch := make(chan model.Shift, 1)
	if shift, err := s.GetShift(ctx, id); err == nil {
		ch <- shift
	}
	close(ch)
	return ch
}
