package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treelot/pkg/core/model"
)

func TestMemoryShiftStore_NotFound(t *testing.T) {
	store := NewMemoryShiftStore()

	_, err := store.GetShift(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrShiftNotFound)

	err = store.UpdateShift(context.Background(), model.Shift{ID: "missing"})
	assert.ErrorIs(t, err, model.ErrShiftNotFound)

	err = store.DeleteShift(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrShiftNotFound)
}

func TestMemoryShiftStore_DuplicateCreate(t *testing.T) {
	store := NewMemoryShiftStore(model.Shift{ID: "shift-1"})

	_, err := store.CreateShift(context.Background(), model.Shift{ID: "shift-1"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestMemoryShiftStore_DateRange(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
	}
	store := NewMemoryShiftStore(
		model.Shift{ID: "early", Date: day(1)},
		model.Shift{ID: "inside", Date: day(6)},
		model.Shift{ID: "boundary", Date: day(10)},
		model.Shift{ID: "late", Date: day(11)},
	)

	shifts, err := store.GetShiftsForDateRange(context.Background(), day(2), day(10))
	require.NoError(t, err)

	ids := make([]model.ShiftID, 0, len(shifts))
	for _, s := range shifts {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []model.ShiftID{"inside", "boundary"}, ids)
}

func TestMemoryShiftStore_SeasonIndexFollowsUpdates(t *testing.T) {
	store := NewMemoryShiftStore(model.Shift{ID: "shift-1", SeasonID: "season-a"})

	shifts, err := store.GetShiftsForSeason(context.Background(), "season-a")
	require.NoError(t, err)
	require.Len(t, shifts, 1)

	// Moving the shift to another season must update both indices.
	err = store.UpdateShift(context.Background(), model.Shift{ID: "shift-1", SeasonID: "season-b"})
	require.NoError(t, err)

	shifts, err = store.GetShiftsForSeason(context.Background(), "season-a")
	require.NoError(t, err)
	assert.Empty(t, shifts)

	shifts, err = store.GetShiftsForSeason(context.Background(), "season-b")
	require.NoError(t, err)
	assert.Len(t, shifts, 1)

	require.NoError(t, store.DeleteShift(context.Background(), "shift-1"))
	shifts, err = store.GetShiftsForSeason(context.Background(), "season-b")
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestMemoryShiftStore_ObserveSnapshot(t *testing.T) {
	store := NewMemoryShiftStore(model.Shift{ID: "shift-1", Label: "Saturday AM"})

	ch := store.ObserveShift(context.Background(), "shift-1")
	shift, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, "Saturday AM", shift.Label)

	_, ok = <-ch
	assert.False(t, ok, "channel should close after the snapshot")
}

func TestMemoryShiftStore_ObserveMissingClosesEmpty(t *testing.T) {
	store := NewMemoryShiftStore()

	ch := store.ObserveShift(context.Background(), "missing")
	_, ok := <-ch
	assert.False(t, ok)
}

func TestMemoryAssignmentStore_Indices(t *testing.T) {
	store := NewMemoryAssignmentStore(
		model.Assignment{ID: "a-1", ShiftID: "shift-1", UserID: "user-1"},
		model.Assignment{ID: "a-2", ShiftID: "shift-1", UserID: "user-2"},
		model.Assignment{ID: "a-3", ShiftID: "shift-2", UserID: "user-1"},
	)

	byShift, err := store.GetAssignmentsForShift(context.Background(), "shift-1")
	require.NoError(t, err)
	assert.Len(t, byShift, 2)

	byUser, err := store.GetAssignmentsForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	require.NoError(t, store.DeleteAssignment(context.Background(), "a-1"))
	byShift, err = store.GetAssignmentsForShift(context.Background(), "shift-1")
	require.NoError(t, err)
	assert.Len(t, byShift, 1)
}

func TestMemoryAssignmentStore_DateRangeNeedsRecordedDates(t *testing.T) {
	store := NewMemoryAssignmentStore(
		model.Assignment{ID: "a-1", ShiftID: "shift-1", UserID: "user-1"},
		model.Assignment{ID: "a-2", ShiftID: "shift-2", UserID: "user-1"},
	)
	store.RecordShiftDate("a-1", time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC))
	// a-2's date is never recorded; it must be skipped, not matched.

	got, err := store.GetAssignmentsForUserInDateRange(context.Background(), "user-1",
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.AssignmentID("a-1"), got[0].ID)
}

func TestMemoryAttendanceStore_OneRecordPerAssignment(t *testing.T) {
	store := NewMemoryAttendanceStore()

	_, err := store.CreateAttendanceRecord(context.Background(), model.AttendanceRecord{
		ID: "rec-1", AssignmentID: "a-1", ShiftID: "shift-1", UserID: "user-1",
	})
	require.NoError(t, err)

	_, err = store.CreateAttendanceRecord(context.Background(), model.AttendanceRecord{
		ID: "rec-2", AssignmentID: "a-1", ShiftID: "shift-1", UserID: "user-1",
	})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestMemoryAttendanceStore_ByAssignmentLookup(t *testing.T) {
	store := NewMemoryAttendanceStore(model.AttendanceRecord{
		ID: "rec-1", AssignmentID: "a-1", ShiftID: "shift-1", UserID: "user-1",
		Status: model.AttendanceCheckedIn,
	})

	record, err := store.GetAttendanceRecordByAssignment(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceRecordID("rec-1"), record.ID)

	_, err = store.GetAttendanceRecordByAssignment(context.Background(), "a-2")
	assert.ErrorIs(t, err, model.ErrAttendanceRecordNotFound)
}

func TestMemoryAttendanceStore_UpdateReindexes(t *testing.T) {
	store := NewMemoryAttendanceStore(model.AttendanceRecord{
		ID: "rec-1", AssignmentID: "a-1", ShiftID: "shift-1", UserID: "user-1",
	})

	err := store.UpdateAttendanceRecord(context.Background(), model.AttendanceRecord{
		ID: "rec-1", AssignmentID: "a-1", ShiftID: "shift-2", UserID: "user-1",
	})
	require.NoError(t, err)

	old, err := store.GetAttendanceRecordsForShift(context.Background(), "shift-1")
	require.NoError(t, err)
	assert.Empty(t, old)

	moved, err := store.GetAttendanceRecordsForShift(context.Background(), "shift-2")
	require.NoError(t, err)
	assert.Len(t, moved, 1)
}

func TestMemoryUserStore_RoleFilter(t *testing.T) {
	store := NewMemoryUserStore(
		model.User{ID: "scout-1", Role: model.UserScout},
		model.User{ID: "scout-2", Role: model.UserScout},
		model.User{ID: "parent-1", Role: model.UserParent},
	)

	scouts, err := store.GetUsersByRole(context.Background(), model.UserScout)
	require.NoError(t, err)
	assert.Len(t, scouts, 2)

	all, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemorySeasonStore_ActiveSeason(t *testing.T) {
	store := NewMemorySeasonStore(
		model.Season{ID: "season-2024", Status: model.SeasonCompleted},
		model.Season{ID: "season-2025", Status: model.SeasonActive},
	)

	season, err := store.GetActiveSeason(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SeasonID("season-2025"), season.ID)
}

func TestMemorySeasonStore_NoActiveSeason(t *testing.T) {
	store := NewMemorySeasonStore(model.Season{ID: "season-2024", Status: model.SeasonArchived})

	_, err := store.GetActiveSeason(context.Background())
	assert.ErrorIs(t, err, model.ErrSeasonNotFound)
}

func TestMemoryTemplateStore_CRUD(t *testing.T) {
	store := NewMemoryTemplateStore()

	_, err := store.CreateTemplate(context.Background(), model.ShiftTemplate{ID: "tpl-1", Name: "Weekend AM"})
	require.NoError(t, err)

	tpl, err := store.GetTemplate(context.Background(), "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekend AM", tpl.Name)

	tpl.Name = "Weekend PM"
	require.NoError(t, store.UpdateTemplate(context.Background(), tpl))

	tpl, err = store.GetTemplate(context.Background(), "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekend PM", tpl.Name)

	err = store.UpdateTemplate(context.Background(), model.ShiftTemplate{ID: "missing"})
	assert.ErrorIs(t, err, model.ErrTemplateNotFound)
}

func TestMemoryHouseholdStore_NotFound(t *testing.T) {
	store := NewMemoryHouseholdStore()

	_, err := store.GetHousehold(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrHouseholdNotFound)
}
