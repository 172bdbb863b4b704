package usecases

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

// AdminUpdateUseCase lets the committee correct an attendance record's
// times and status directly.
type AdminUpdateUseCase struct {
	attendance db.AttendanceStore
	users      db.UserStore
	logger     *zap.Logger
}

// NewAdminUpdateUseCase builds an AdminUpdateUseCase.
func NewAdminUpdateUseCase(attendance db.AttendanceStore, users db.UserStore, logger *zap.Logger) *AdminUpdateUseCase {
	return &AdminUpdateUseCase{
		attendance: attendance,
		users:      users,
		logger:     logger,
	}
}

// UpdateAttendanceRecordRequest carries the fields to override. Nil fields
// are left as they are; ClearCheckOut drops the check-out time entirely.
type UpdateAttendanceRecordRequest struct {
	RecordID      model.AttendanceRecordID
	RequesterID   model.UserID
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	ClearCheckOut bool
	Status        *model.AttendanceStatus
}

// UpdateAttendanceRecord applies a committee override. Hours are recomputed
// when both timestamps end up present, the method is forced to
// admin_override, and an audit note naming the requester is appended.
func (u *AdminUpdateUseCase) UpdateAttendanceRecord(ctx context.Context, req UpdateAttendanceRecordRequest) (model.AttendanceRecord, error) {
	requester, err := requireCommittee(ctx, u.users, req.RequesterID)
	if err != nil {
		return model.AttendanceRecord{}, err
	}

	record, err := u.attendance.GetAttendanceRecord(ctx, req.RecordID)
	if err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	if req.CheckInTime != nil {
		record.CheckInTime = req.CheckInTime
	}
	if req.CheckOutTime != nil {
		record.CheckOutTime = req.CheckOutTime
	}
	if req.ClearCheckOut {
		record.CheckOutTime = nil
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return model.AttendanceRecord{}, model.NewInvalidInput(fmt.Sprintf("unknown attendance status %q", *req.Status))
		}
		record.Status = *req.Status
	}

	if record.IsComplete() {
		hours := model.HoursBetween(*record.CheckInTime, *record.CheckOutTime)
		record.HoursWorked = &hours
	} else {
		record.HoursWorked = nil
	}

	record.Method = model.MethodAdminOverride
	record.Notes = model.AppendNote(record.Notes, fmt.Sprintf("Admin override by %s", requester.FullName()))

	if err := u.attendance.UpdateAttendanceRecord(ctx, record); err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	u.logger.Info("Admin attendance override",
		zap.String("record_id", req.RecordID.String()),
		zap.String("requester_id", req.RequesterID.String()))

	return record, nil
}
