package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
	"treelot/pkg/metrics"
)

// NoShowUseCase marks an assignment as a no-show. Committee only.
type NoShowUseCase struct {
	assignments db.AssignmentStore
	attendance  db.AttendanceStore
	users       db.UserStore
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewNoShowUseCase builds a NoShowUseCase.
func NewNoShowUseCase(assignments db.AssignmentStore, attendance db.AttendanceStore, users db.UserStore, m *metrics.Metrics, logger *zap.Logger) *NoShowUseCase {
	return &NoShowUseCase{
		assignments: assignments,
		attendance:  attendance,
		users:       users,
		metrics:     m,
		logger:      logger,
	}
}

// MarkNoShowRequest identifies the assignment and who is marking it.
type MarkNoShowRequest struct {
	AssignmentID model.AssignmentID
	RequesterID  model.UserID
	Reason       string
}

// MarkNoShow overwrites an existing attendance record to no_show with the
// hours cleared and an audit note appended to whatever was there, or
// creates a fresh no_show record with method admin_override when the
// volunteer never checked in.
func (u *NoShowUseCase) MarkNoShow(ctx context.Context, req MarkNoShowRequest) error {
	requester, err := requireCommittee(ctx, u.users, req.RequesterID)
	if err != nil {
		return err
	}

	assignment, err := u.assignments.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}

	note := fmt.Sprintf("Marked no-show by %s", requester.FullName())
	if req.Reason != "" {
		note = fmt.Sprintf("%s: %s", note, req.Reason)
	}

	record, err := u.attendance.GetAttendanceRecordByAssignment(ctx, req.AssignmentID)
	switch {
	case err == nil:
		record.Status = model.AttendanceNoShow
		record.HoursWorked = nil
		record.Notes = model.AppendNote(record.Notes, note)
		if err := u.attendance.UpdateAttendanceRecord(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
	case errors.Is(err, model.ErrAttendanceRecordNotFound):
		record = model.AttendanceRecord{
			ID:           model.AttendanceRecordID(uuid.New().String()),
			AssignmentID: assignment.ID,
			ShiftID:      assignment.ShiftID,
			UserID:       assignment.UserID,
			Method:       model.MethodAdminOverride,
			Status:       model.AttendanceNoShow,
			Notes:        note,
		}
		if _, err := u.attendance.CreateAttendanceRecord(ctx, record); err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
	default:
		return fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	u.metrics.IncNoShows()
	u.logger.Info("Marked no-show",
		zap.String("assignment_id", req.AssignmentID.String()),
		zap.String("requester_id", req.RequesterID.String()))

	return nil
}
