package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

func activeAssignment(id model.AssignmentID, userID model.UserID) model.Assignment {
	return model.Assignment{
		ID:      id,
		ShiftID: "shift-1",
		UserID:  userID,
		Role:    model.RoleScout,
		Status:  model.AssignmentConfirmed,
	}
}

func newAttendanceFixture(t *testing.T, assignments ...model.Assignment) (*AttendanceService, *db.MemoryAttendanceStore) {
	t.Helper()
	attendance := db.NewMemoryAttendanceStore()
	svc := NewAttendanceService(db.NewMemoryAssignmentStore(assignments...), attendance, nil, zap.NewNop())
	return svc, attendance
}

func TestCheckIn_CreatesRecord(t *testing.T) {
	ctx := context.Background()
	svc, attendance := newAttendanceFixture(t, activeAssignment("assign-1", "scout-1"))
	at := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	result, err := svc.CheckIn(ctx, CheckInRequest{
		AssignmentID: "assign-1",
		Location:     &model.GeoLocation{Latitude: 47.6, Longitude: -122.3},
	})
	require.NoError(t, err)
	assert.Equal(t, at, result.CheckInTime)

	record, err := attendance.GetAttendanceRecordByAssignment(ctx, "assign-1")
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceCheckedIn, record.Status)
	assert.Equal(t, model.MethodManual, record.Method)
	require.NotNil(t, record.CheckInLocation)
	assert.Equal(t, 47.6, record.CheckInLocation.Latitude)
	assert.True(t, record.IsCheckedIn())
}

func TestCheckIn_QRPayloadSetsMethod(t *testing.T) {
	ctx := context.Background()
	svc, attendance := newAttendanceFixture(t, activeAssignment("assign-1", "scout-1"))

	_, err := svc.CheckIn(ctx, CheckInRequest{AssignmentID: "assign-1", QRPayload: "shift-1"})
	require.NoError(t, err)

	record, err := attendance.GetAttendanceRecordByAssignment(ctx, "assign-1")
	require.NoError(t, err)
	assert.Equal(t, model.MethodQRCode, record.Method)
}

func TestCheckIn_AssignmentNotActive(t *testing.T) {
	ctx := context.Background()
	cancelled := activeAssignment("assign-1", "scout-1")
	cancelled.Status = model.AssignmentCancelled
	svc, _ := newAttendanceFixture(t, cancelled)

	_, err := svc.CheckIn(ctx, CheckInRequest{AssignmentID: "assign-1"})
	assert.ErrorIs(t, err, model.ErrAssignmentNotActive)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAttendanceFixture(t, activeAssignment("assign-1", "scout-1"))

	_, err := svc.CheckIn(ctx, CheckInRequest{AssignmentID: "assign-1"})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, CheckInRequest{AssignmentID: "assign-1"})
	assert.ErrorIs(t, err, model.ErrAlreadyCheckedIn)
}

func TestCheckOut_ComputesFractionalHours(t *testing.T) {
	ctx := context.Background()
	svc, attendance := newAttendanceFixture(t, activeAssignment("assign-1", "scout-1"))
	start := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	_, err := svc.CheckIn(ctx, CheckInRequest{AssignmentID: "assign-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(90 * time.Minute) }
	result, err := svc.CheckOut(ctx, "assign-1", "swept the lot")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, result.HoursWorked, 1e-9)

	record, err := attendance.GetAttendanceRecordByAssignment(ctx, "assign-1")
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceCheckedOut, record.Status)
	assert.True(t, record.IsComplete())
	require.NotNil(t, record.HoursWorked)
	assert.InDelta(t, 1.5, *record.HoursWorked, 1e-9)
	assert.Contains(t, record.Notes, "swept the lot")
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAttendanceFixture(t, activeAssignment("assign-1", "scout-1"))

	_, err := svc.CheckOut(ctx, "assign-1", "")
	assert.ErrorIs(t, err, model.ErrNotCheckedIn)
}

func TestAdminCheckIn_CreatesOverrideRecord(t *testing.T) {
	ctx := context.Background()
	// Cancelled assignment: the admin path skips the active guard.
	cancelled := activeAssignment("assign-1", "scout-1")
	cancelled.Status = model.AssignmentCancelled
	svc, attendance := newAttendanceFixture(t, cancelled)
	override := time.Date(2025, 12, 6, 8, 30, 0, 0, time.UTC)

	result, err := svc.AdminCheckIn(ctx, AdminCheckInRequest{
		AssignmentID: "assign-1",
		AdminName:    "Pat Smith",
		OverrideTime: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, override, result.CheckInTime)

	record, err := attendance.GetAttendanceRecordByAssignment(ctx, "assign-1")
	require.NoError(t, err)
	assert.Equal(t, model.MethodAdminOverride, record.Method)
	assert.Contains(t, record.Notes, "Checked in by Pat Smith")
}

func TestAdminCheckOut_AppendsAuditNote(t *testing.T) {
	ctx := context.Background()
	svc, attendance := newAttendanceFixture(t, activeAssignment("assign-1", "scout-1"))
	start := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	_, err := svc.CheckIn(ctx, CheckInRequest{AssignmentID: "assign-1"})
	require.NoError(t, err)

	override := start.Add(2 * time.Hour)
	result, err := svc.AdminCheckOut(ctx, AdminCheckOutRequest{
		AssignmentID: "assign-1",
		AdminName:    "Pat Smith",
		OverrideTime: &override,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.HoursWorked, 1e-9)

	record, err := attendance.GetAttendanceRecordByAssignment(ctx, "assign-1")
	require.NoError(t, err)
	assert.Equal(t, model.MethodAdminOverride, record.Method)
	assert.Contains(t, record.Notes, "Checked out by Pat Smith")
}

func TestAdminCheckOut_NoRecordFails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAttendanceFixture(t, activeAssignment("assign-1", "scout-1"))

	_, err := svc.AdminCheckOut(ctx, AdminCheckOutRequest{AssignmentID: "assign-1", AdminName: "Pat"})
	assert.ErrorIs(t, err, model.ErrAttendanceRecordNotFound)
}
