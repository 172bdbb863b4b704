package db

import (
	"context"
	"sync"

	"treelot/pkg/core/model"
)

// MemoryAttendanceStore is the in-memory reference implementation of
// AttendanceStore. The by-assignment index is 1:1; the shift and user
// indices are sets.
type MemoryAttendanceStore struct {
	mu           sync.Mutex
	records      map[model.AttendanceRecordID]model.AttendanceRecord
	byAssignment map[model.AssignmentID]model.AttendanceRecordID
	byShift      map[model.ShiftID]map[model.AttendanceRecordID]struct{}
	byUser       map[model.UserID]map[model.AttendanceRecordID]struct{}
}

// NewMemoryAttendanceStore creates an empty in-memory attendance store.
func NewMemoryAttendanceStore(initial ...model.AttendanceRecord) *MemoryAttendanceStore {
	s := &MemoryAttendanceStore{
		records:      make(map[model.AttendanceRecordID]model.AttendanceRecord),
		byAssignment: make(map[model.AssignmentID]model.AttendanceRecordID),
		byShift:      make(map[model.ShiftID]map[model.AttendanceRecordID]struct{}),
		byUser:       make(map[model.UserID]map[model.AttendanceRecordID]struct{}),
	}
	for _, r := range initial {
		s.records[r.ID] = r
		s.index(r)
	}
	return s
}

func (s *MemoryAttendanceStore) index(r model.AttendanceRecord) {
	s.byAssignment[r.AssignmentID] = r.ID
	if s.byShift[r.ShiftID] == nil {
		s.byShift[r.ShiftID] = make(map[model.AttendanceRecordID]struct{})
	}
	s.byShift[r.ShiftID][r.ID] = struct{}{}
	if s.byUser[r.UserID] == nil {
		s.byUser[r.UserID] = make(map[model.AttendanceRecordID]struct{})
	}
	s.byUser[r.UserID][r.ID] = struct{}{}
}

func (s *MemoryAttendanceStore) GetAttendanceRecord(_ context.Context, id model.AttendanceRecordID) (model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return model.AttendanceRecord{}, model.ErrAttendanceRecordNotFound
	}
	return r, nil
}

func (s *MemoryAttendanceStore) GetAttendanceRecordByAssignment(_ context.Context, assignmentID model.AssignmentID) (model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byAssignment[assignmentID]
	if !ok {
		return model.AttendanceRecord{}, model.ErrAttendanceRecordNotFound
	}
	return s.records[id], nil
}

func (s *MemoryAttendanceStore) GetAttendanceRecordsForShift(_ context.Context, shiftID model.ShiftID) ([]model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AttendanceRecord
	for id := range s.byShift[shiftID] {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *MemoryAttendanceStore) GetAttendanceRecordsForUser(_ context.Context, userID model.UserID) ([]model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AttendanceRecord
	for id := range s.byUser[userID] {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *MemoryAttendanceStore) CreateAttendanceRecord(_ context.Context, r model.AttendanceRecord) (model.AttendanceRecordID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[r.ID]; exists {
		return "", model.ErrAlreadyExists
	}
	if _, exists := s.byAssignment[r.AssignmentID]; exists {
		// At most one record per assignment.
		return "", model.ErrAlreadyExists
	}
	s.records[r.ID] = r
	s.index(r)
	return r.ID, nil
}

func (s *MemoryAttendanceStore) UpdateAttendanceRecord(_ context.Context, r model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exists := s.records[r.ID]
	if !exists {
		return model.ErrAttendanceRecordNotFound
	}
	delete(s.byShift[old.ShiftID], r.ID)
	delete(s.byUser[old.UserID], r.ID)
	s.records[r.ID] = r
	s.index(r)
	return nil
}

// ObserveAttendanceRecordByAssignment emits the current snapshot, if any,
// and closes.
func (s *MemoryAttendanceStore) ObserveAttendanceRecordByAssignment(ctx context.Context, assignmentID model.AssignmentID) <-chan model.AttendanceRecord {
	ch := make(chan model.AttendanceRecord, 1)
	if r, err := s.GetAttendanceRecordByAssignment(ctx, assignmentID); err == nil {
		ch <- r
	}
	close(ch)
	return ch
}
