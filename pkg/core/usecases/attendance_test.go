package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/core/services"
	"treelot/pkg/db"
)

func TestCheckInUseCase_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	assignment := confirmedAssignment("assign-1", "shift-1", "scout-1", model.RoleScout)
	assignments := db.NewMemoryAssignmentStore(assignment)
	svc := services.NewAttendanceService(assignments, db.NewMemoryAttendanceStore(), nil, zap.NewNop())
	uc := NewCheckInUseCase(assignments, svc, zap.NewNop())

	_, err := uc.CheckIn(ctx, SelfCheckInRequest{AssignmentID: "assign-1", UserID: "someone-else"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	result, err := uc.CheckIn(ctx, SelfCheckInRequest{AssignmentID: "assign-1", UserID: "scout-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RecordID)
}

func TestCheckOutUseCase_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	assignment := confirmedAssignment("assign-1", "shift-1", "scout-1", model.RoleScout)
	assignments := db.NewMemoryAssignmentStore(assignment)
	attendance := db.NewMemoryAttendanceStore(checkedInRecord("rec-1", "assign-1", "shift-1", "scout-1"))
	svc := services.NewAttendanceService(assignments, attendance, nil, zap.NewNop())
	uc := NewCheckOutUseCase(assignments, svc, zap.NewNop())

	_, err := uc.CheckOut(ctx, SelfCheckOutRequest{AssignmentID: "assign-1", UserID: "someone-else"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	result, err := uc.CheckOut(ctx, SelfCheckOutRequest{AssignmentID: "assign-1", UserID: "scout-1"})
	require.NoError(t, err)
	assert.Greater(t, result.HoursWorked, 0.0)
}

func TestUpdateAttendanceRecord_RecomputesHours(t *testing.T) {
	ctx := context.Background()
	record := checkedInRecord("rec-1", "assign-1", "shift-1", "scout-1")
	attendance := db.NewMemoryAttendanceStore(record)
	uc := NewAdminUpdateUseCase(attendance, db.NewMemoryUserStore(committeeUser("lead-1")), zap.NewNop())

	checkOut := record.CheckInTime.Add(3 * time.Hour)
	status := model.AttendanceCheckedOut
	got, err := uc.UpdateAttendanceRecord(ctx, UpdateAttendanceRecordRequest{
		RecordID:     "rec-1",
		RequesterID:  "lead-1",
		CheckOutTime: &checkOut,
		Status:       &status,
	})
	require.NoError(t, err)

	require.NotNil(t, got.HoursWorked)
	assert.InDelta(t, 3.0, *got.HoursWorked, 1e-9)
	assert.Equal(t, model.MethodAdminOverride, got.Method)
	assert.Contains(t, got.Notes, "Admin override by Morgan Lead")
}

func TestUpdateAttendanceRecord_ClearCheckOutDropsHours(t *testing.T) {
	ctx := context.Background()
	record := checkedInRecord("rec-1", "assign-1", "shift-1", "scout-1")
	out := record.CheckInTime.Add(2 * time.Hour)
	hours := 2.0
	record.CheckOutTime = &out
	record.HoursWorked = &hours
	record.Status = model.AttendanceCheckedOut

	attendance := db.NewMemoryAttendanceStore(record)
	uc := NewAdminUpdateUseCase(attendance, db.NewMemoryUserStore(committeeUser("lead-1")), zap.NewNop())

	status := model.AttendanceCheckedIn
	got, err := uc.UpdateAttendanceRecord(ctx, UpdateAttendanceRecordRequest{
		RecordID:      "rec-1",
		RequesterID:   "lead-1",
		ClearCheckOut: true,
		Status:        &status,
	})
	require.NoError(t, err)
	assert.Nil(t, got.CheckOutTime)
	assert.Nil(t, got.HoursWorked)
}

func TestUpdateAttendanceRecord_RequiresCommittee(t *testing.T) {
	ctx := context.Background()
	record := checkedInRecord("rec-1", "assign-1", "shift-1", "scout-1")
	attendance := db.NewMemoryAttendanceStore(record)
	uc := NewAdminUpdateUseCase(attendance, db.NewMemoryUserStore(scoutUser("scout-1", "Sam")), zap.NewNop())

	_, err := uc.UpdateAttendanceRecord(ctx, UpdateAttendanceRecordRequest{
		RecordID:    "rec-1",
		RequesterID: "scout-1",
	})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
