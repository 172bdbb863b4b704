package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
	"treelot/pkg/metrics"
)

// AttendanceService drives the attendance state machine: check-in,
// check-out, and the administrative overrides that bypass the self-service
// guards.
type AttendanceService struct {
	assignments db.AssignmentStore
	attendance  db.AttendanceStore
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewAttendanceService builds an AttendanceService.
func NewAttendanceService(assignments db.AssignmentStore, attendance db.AttendanceStore, m *metrics.Metrics, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		assignments: assignments,
		attendance:  attendance,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// CheckInRequest describes a self-service check-in. A non-empty QRPayload
// marks the check-in as QR-triggered; otherwise it is manual.
type CheckInRequest struct {
	AssignmentID model.AssignmentID
	QRPayload    string
	Location     *model.GeoLocation
}

// CheckInResult is returned on successful check-in.
type CheckInResult struct {
	RecordID    model.AttendanceRecordID
	CheckInTime time.Time
}

// CheckOutResult is returned on successful check-out.
type CheckOutResult struct {
	CheckOutTime time.Time
	HoursWorked  float64
}

// CheckIn records a volunteer's arrival against an active assignment. The
// attendance record is created lazily on first check-in; a record left in a
// non-checked-in state (for example after an admin correction) is reused.
func (s *AttendanceService) CheckIn(ctx context.Context, req CheckInRequest) (CheckInResult, error) {
	assignment, err := s.assignments.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return CheckInResult{}, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if !assignment.IsActive() {
		return CheckInResult{}, model.ErrAssignmentNotActive
	}

	method := model.MethodManual
	if req.QRPayload != "" {
		method = model.MethodQRCode
	}
	checkInTime := s.now()

	record, err := s.attendance.GetAttendanceRecordByAssignment(ctx, req.AssignmentID)
	switch {
	case err == nil:
		if record.IsCheckedIn() {
			return CheckInResult{}, model.ErrAlreadyCheckedIn
		}
		record.CheckInTime = &checkInTime
		record.CheckOutTime = nil
		record.HoursWorked = nil
		record.Method = method
		record.CheckInLocation = req.Location
		record.Status = model.AttendanceCheckedIn
		if err := s.attendance.UpdateAttendanceRecord(ctx, record); err != nil {
			return CheckInResult{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
	case errorsIsNotFound(err):
		record = model.AttendanceRecord{
			ID:              model.AttendanceRecordID(uuid.New().String()),
			AssignmentID:    assignment.ID,
			ShiftID:         assignment.ShiftID,
			UserID:          assignment.UserID,
			CheckInTime:     &checkInTime,
			Method:          method,
			CheckInLocation: req.Location,
			Status:          model.AttendanceCheckedIn,
		}
		if _, err := s.attendance.CreateAttendanceRecord(ctx, record); err != nil {
			return CheckInResult{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
	default:
		return CheckInResult{}, fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	s.metrics.IncCheckIns()
	s.logger.Info("Checked in",
		zap.String("assignment_id", req.AssignmentID.String()),
		zap.String("method", string(method)))

	return CheckInResult{RecordID: record.ID, CheckInTime: checkInTime}, nil
}

// CheckOut records a volunteer's departure and computes hours worked as
// fractional hours. Fails with ErrNotCheckedIn unless the record is
// currently checked in.
func (s *AttendanceService) CheckOut(ctx context.Context, assignmentID model.AssignmentID, notes string) (CheckOutResult, error) {
	record, err := s.attendance.GetAttendanceRecordByAssignment(ctx, assignmentID)
	if err != nil {
		if errorsIsNotFound(err) {
			return CheckOutResult{}, model.ErrNotCheckedIn
		}
		return CheckOutResult{}, fmt.Errorf("failed to fetch attendance record: %w", err)
	}
	if !record.IsCheckedIn() {
		return CheckOutResult{}, model.ErrNotCheckedIn
	}

	checkOutTime := s.now()
	hours := model.HoursBetween(*record.CheckInTime, checkOutTime)

	record.CheckOutTime = &checkOutTime
	record.HoursWorked = &hours
	record.Status = model.AttendanceCheckedOut
	record.Notes = model.AppendNote(record.Notes, notes)
	if err := s.attendance.UpdateAttendanceRecord(ctx, record); err != nil {
		return CheckOutResult{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	s.metrics.IncCheckOuts()
	s.logger.Info("Checked out",
		zap.String("assignment_id", assignmentID.String()),
		zap.Float64("hours_worked", hours))

	return CheckOutResult{CheckOutTime: checkOutTime, HoursWorked: hours}, nil
}

// AdminCheckInRequest describes a committee-initiated check-in correction.
type AdminCheckInRequest struct {
	AssignmentID model.AssignmentID
	AdminName    string
	OverrideTime *time.Time
}

// AdminCheckIn checks a volunteer in on their behalf. It skips the
// active-assignment and already-checked-in guards, accepts an override
// timestamp, tags the record as admin_override, and appends an audit note.
func (s *AttendanceService) AdminCheckIn(ctx context.Context, req AdminCheckInRequest) (CheckInResult, error) {
	assignment, err := s.assignments.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return CheckInResult{}, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	checkInTime := s.now()
	if req.OverrideTime != nil {
		checkInTime = *req.OverrideTime
	}
	note := fmt.Sprintf("Checked in by %s", req.AdminName)

	record, err := s.attendance.GetAttendanceRecordByAssignment(ctx, req.AssignmentID)
	switch {
	case err == nil:
		record.CheckInTime = &checkInTime
		record.CheckOutTime = nil
		record.HoursWorked = nil
		record.Method = model.MethodAdminOverride
		record.Status = model.AttendanceCheckedIn
		record.Notes = model.AppendNote(record.Notes, note)
		if err := s.attendance.UpdateAttendanceRecord(ctx, record); err != nil {
			return CheckInResult{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
	case errorsIsNotFound(err):
		record = model.AttendanceRecord{
			ID:           model.AttendanceRecordID(uuid.New().String()),
			AssignmentID: assignment.ID,
			ShiftID:      assignment.ShiftID,
			UserID:       assignment.UserID,
			CheckInTime:  &checkInTime,
			Method:       model.MethodAdminOverride,
			Status:       model.AttendanceCheckedIn,
			Notes:        note,
		}
		if _, err := s.attendance.CreateAttendanceRecord(ctx, record); err != nil {
			return CheckInResult{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
	default:
		return CheckInResult{}, fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	s.metrics.IncCheckIns()
	s.logger.Info("Admin check-in",
		zap.String("assignment_id", req.AssignmentID.String()),
		zap.String("admin", req.AdminName))

	return CheckInResult{RecordID: record.ID, CheckInTime: checkInTime}, nil
}

// AdminCheckOutRequest describes a committee-initiated check-out correction.
type AdminCheckOutRequest struct {
	AssignmentID model.AssignmentID
	AdminName    string
	OverrideTime *time.Time
}

// AdminCheckOut checks a volunteer out on their behalf, skipping the
// checked-in guard. Hours are computed only when a check-in time exists.
func (s *AttendanceService) AdminCheckOut(ctx context.Context, req AdminCheckOutRequest) (CheckOutResult, error) {
	record, err := s.attendance.GetAttendanceRecordByAssignment(ctx, req.AssignmentID)
	if err != nil {
		return CheckOutResult{}, fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	checkOutTime := s.now()
	if req.OverrideTime != nil {
		checkOutTime = *req.OverrideTime
	}

	var hours float64
	record.CheckOutTime = &checkOutTime
	if record.CheckInTime != nil {
		hours = model.HoursBetween(*record.CheckInTime, checkOutTime)
		record.HoursWorked = &hours
	}
	record.Method = model.MethodAdminOverride
	record.Status = model.AttendanceCheckedOut
	record.Notes = model.AppendNote(record.Notes, fmt.Sprintf("Checked out by %s", req.AdminName))
	if err := s.attendance.UpdateAttendanceRecord(ctx, record); err != nil {
		return CheckOutResult{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	s.metrics.IncCheckOuts()
	s.logger.Info("Admin check-out",
		zap.String("assignment_id", req.AssignmentID.String()),
		zap.String("admin", req.AdminName))

	return CheckOutResult{CheckOutTime: checkOutTime, HoursWorked: hours}, nil
}
