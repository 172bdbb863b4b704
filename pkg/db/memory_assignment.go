package db

import (
	"context"
	"sync"
	"time"

	"treelot/pkg/core/model"
)

// MemoryAssignmentStore is the in-memory reference implementation of
// AssignmentStore. The shift and user indices are maintained under the same
// lock as the primary map.
type MemoryAssignmentStore struct {
	mu          sync.Mutex
	assignments map[model.AssignmentID]model.Assignment
	byShift     map[model.ShiftID]map[model.AssignmentID]struct{}
	byUser      map[model.UserID]map[model.AssignmentID]struct{}
	shifts      map[model.AssignmentID]time.Time // assignment id -> shift date, for range queries
}

// NewMemoryAssignmentStore creates an empty in-memory assignment store.
// Date-range lookups need the shift dates; RecordShiftDate supplies them
// when assignments are seeded directly.
func NewMemoryAssignmentStore(initial ...model.Assignment) *MemoryAssignmentStore {
	s := &MemoryAssignmentStore{
		assignments: make(map[model.AssignmentID]model.Assignment),
		byShift:     make(map[model.ShiftID]map[model.AssignmentID]struct{}),
		byUser:      make(map[model.UserID]map[model.AssignmentID]struct{}),
		shifts:      make(map[model.AssignmentID]time.Time),
	}
	for _, a := range initial {
		s.assignments[a.ID] = a
		s.index(a)
	}
	return s
}

func (s *MemoryAssignmentStore) index(a model.Assignment) {
	if s.byShift[a.ShiftID] == nil {
		s.byShift[a.ShiftID] = make(map[model.AssignmentID]struct{})
	}
	s.byShift[a.ShiftID][a.ID] = struct{}{}
	if s.byUser[a.UserID] == nil {
		s.byUser[a.UserID] = make(map[model.AssignmentID]struct{})
	}
	s.byUser[a.UserID][a.ID] = struct{}{}
}

func (s *MemoryAssignmentStore) unindex(a model.Assignment) {
	delete(s.byShift[a.ShiftID], a.ID)
	delete(s.byUser[a.UserID], a.ID)
}

// RecordShiftDate associates an assignment with its shift's date so
// GetAssignmentsForUserInDateRange can answer without a shift store.
func (s *MemoryAssignmentStore) RecordShiftDate(id model.AssignmentID, date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shifts[id] = date
}

func (s *MemoryAssignmentStore) GetAssignment(_ context.Context, id model.AssignmentID) (model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return model.Assignment{}, model.ErrAssignmentNotFound
	}
	return a, nil
}

func (s *MemoryAssignmentStore) GetAssignmentsForShift(_ context.Context, shiftID model.ShiftID) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Assignment
	for id := range s.byShift[shiftID] {
		out = append(out, s.assignments[id])
	}
	return out, nil
}

func (s *MemoryAssignmentStore) GetAssignmentsForUser(_ context.Context, userID model.UserID) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Assignment
	for id := range s.byUser[userID] {
		out = append(out, s.assignments[id])
	}
	return out, nil
}

func (s *MemoryAssignmentStore) GetAssignmentsForUserInDateRange(_ context.Context, userID model.UserID, start, end time.Time) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Assignment
	for id := range s.byUser[userID] {
		date, ok := s.shifts[id]
		if !ok {
			continue
		}
		if !date.Before(start) && !date.After(end) {
			out = append(out, s.assignments[id])
		}
	}
	return out, nil
}

func (s *MemoryAssignmentStore) CreateAssignment(_ context.Context, a model.Assignment) (model.AssignmentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assignments[a.ID]; exists {
		return "", model.ErrAlreadyExists
	}
	s.assignments[a.ID] = a
	s.index(a)
	return a.ID, nil
}

func (s *MemoryAssignmentStore) UpdateAssignment(_ context.Context, a model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exists := s.assignments[a.ID]
	if !exists {
		return model.ErrAssignmentNotFound
	}
	s.unindex(old)
	s.assignments[a.ID] = a
	s.index(a)
	return nil
}

func (s *MemoryAssignmentStore) DeleteAssignment(_ context.Context, id model.AssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, exists := s.assignments[id]
	if !exists {
		return model.ErrAssignmentNotFound
	}
	s.unindex(a)
	delete(s.assignments, id)
	delete(s.shifts, id)
	return nil
}

// ObserveAssignmentsForShift emits the current snapshot and closes.
func (s *MemoryAssignmentStore) ObserveAssignmentsForShift(ctx context.Context, shiftID model.ShiftID) <-chan []model.Assignment {
	ch := make(chan []model.Assignment, 1)
	if assignments, err := s.GetAssignmentsForShift(ctx, shiftID); err == nil {
		ch <- assignments
	}
	close(ch)
	return ch
}
