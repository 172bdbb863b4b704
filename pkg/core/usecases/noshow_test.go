package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

func TestMarkNoShow_OverwritesExistingRecord(t *testing.T) {
	ctx := context.Background()
	assignment := confirmedAssignment("assign-1", "shift-1", "scout-1", model.RoleScout)
	record := checkedInRecord("rec-1", "assign-1", "shift-1", "scout-1")
	record.Notes = "Arrived late"
	hours := 2.0
	record.HoursWorked = &hours

	attendance := db.NewMemoryAttendanceStore(record)
	uc := NewNoShowUseCase(
		db.NewMemoryAssignmentStore(assignment),
		attendance,
		db.NewMemoryUserStore(committeeUser("lead-1")),
		nil, zap.NewNop())

	err := uc.MarkNoShow(ctx, MarkNoShowRequest{
		AssignmentID: "assign-1",
		RequesterID:  "lead-1",
		Reason:       "left without checking out",
	})
	require.NoError(t, err)

	got, err := attendance.GetAttendanceRecord(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceNoShow, got.Status)
	assert.Nil(t, got.HoursWorked)
	assert.Equal(t, "Arrived late | Marked no-show by Morgan Lead: left without checking out", got.Notes)
}

func TestMarkNoShow_CreatesRecordWhenMissing(t *testing.T) {
	ctx := context.Background()
	assignment := confirmedAssignment("assign-1", "shift-1", "scout-1", model.RoleScout)
	attendance := db.NewMemoryAttendanceStore()
	uc := NewNoShowUseCase(
		db.NewMemoryAssignmentStore(assignment),
		attendance,
		db.NewMemoryUserStore(committeeUser("lead-1")),
		nil, zap.NewNop())

	err := uc.MarkNoShow(ctx, MarkNoShowRequest{AssignmentID: "assign-1", RequesterID: "lead-1"})
	require.NoError(t, err)

	got, err := attendance.GetAttendanceRecordByAssignment(ctx, "assign-1")
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceNoShow, got.Status)
	assert.Equal(t, model.MethodAdminOverride, got.Method)
	assert.Nil(t, got.CheckInTime)
	assert.Contains(t, got.Notes, "Marked no-show by Morgan Lead")
}

func TestMarkNoShow_RequiresCommittee(t *testing.T) {
	ctx := context.Background()
	assignment := confirmedAssignment("assign-1", "shift-1", "scout-1", model.RoleScout)
	uc := NewNoShowUseCase(
		db.NewMemoryAssignmentStore(assignment),
		db.NewMemoryAttendanceStore(),
		db.NewMemoryUserStore(scoutUser("scout-1", "Sam")),
		nil, zap.NewNop())

	err := uc.MarkNoShow(ctx, MarkNoShowRequest{AssignmentID: "assign-1", RequesterID: "scout-1"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
