package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
	"treelot/pkg/metrics"
)

// WalkInUseCase adds a volunteer to a shift that is already underway and
// checks them in immediately. Walk-ins bypass the normal signup-then-
// check-in sequencing, so this use case writes the assignment and the
// attendance record itself instead of delegating to the services.
type WalkInUseCase struct {
	shifts      db.ShiftStore
	assignments db.AssignmentStore
	attendance  db.AttendanceStore
	users       db.UserStore
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewWalkInUseCase builds a WalkInUseCase.
func NewWalkInUseCase(shifts db.ShiftStore, assignments db.AssignmentStore, attendance db.AttendanceStore, users db.UserStore, m *metrics.Metrics, logger *zap.Logger) *WalkInUseCase {
	return &WalkInUseCase{
		shifts:      shifts,
		assignments: assignments,
		attendance:  attendance,
		users:       users,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// AddWalkInRequest identifies who is being added, to which shift, and by whom.
type AddWalkInRequest struct {
	ShiftID     model.ShiftID
	RequesterID model.UserID
	SubjectID   model.UserID
	Role        model.RoleType
}

// AddWalkInResult reports the outcome. Business-rule rejections set Success
// to false with an explanatory message and write nothing.
type AddWalkInResult struct {
	Success      bool
	Message      string
	AssignmentID model.AssignmentID
	RecordID     model.AttendanceRecordID
}

// AddWalkIn runs the guards in order: the shift must have started, the
// requester must be committee or currently checked in to the same shift,
// and the subject must not already hold an active assignment there. On
// success it creates a confirmed assignment tagged with the requester and a
// checked-in attendance record with an audit note naming them.
func (u *WalkInUseCase) AddWalkIn(ctx context.Context, req AddWalkInRequest) (AddWalkInResult, error) {
	if !req.Role.IsValid() {
		return AddWalkInResult{}, model.NewInvalidInput(fmt.Sprintf("unknown role type %q", req.Role))
	}

	shift, err := u.shifts.GetShift(ctx, req.ShiftID)
	if err != nil {
		return AddWalkInResult{}, fmt.Errorf("failed to fetch shift: %w", err)
	}

	now := u.now()
	if shift.StartTime.After(now) {
		return AddWalkInResult{Message: "shift has not started yet"}, nil
	}

	requester, err := u.users.GetUser(ctx, req.RequesterID)
	if err != nil {
		return AddWalkInResult{}, fmt.Errorf("failed to fetch requester: %w", err)
	}

	shiftAssignments, err := u.assignments.GetAssignmentsForShift(ctx, req.ShiftID)
	if err != nil {
		return AddWalkInResult{}, fmt.Errorf("failed to fetch shift assignments: %w", err)
	}

	if !requester.IsCommittee() {
		authorized, err := u.requesterCheckedIn(ctx, shiftAssignments, req.RequesterID)
		if err != nil {
			return AddWalkInResult{}, err
		}
		if !authorized {
			return AddWalkInResult{}, model.ErrUnauthorized
		}
	}

	if _, exists := activeAssignmentForUser(shiftAssignments, req.SubjectID); exists {
		return AddWalkInResult{Message: "volunteer already has an active assignment on this shift"}, nil
	}

	assignment := model.Assignment{
		ID:         model.AssignmentID(uuid.New().String()),
		ShiftID:    req.ShiftID,
		UserID:     req.SubjectID,
		Role:       req.Role,
		Status:     model.AssignmentConfirmed,
		AssignedAt: now,
		AssignedBy: req.RequesterID,
	}
	if _, err := u.assignments.CreateAssignment(ctx, assignment); err != nil {
		return AddWalkInResult{}, fmt.Errorf("failed to create walk-in assignment: %w", err)
	}

	// Counters move in lock-step with assignment writes, walk-ins included.
	updated := shift.WithCurrent(req.Role, shift.Current(req.Role)+1)
	if err := u.shifts.UpdateShift(ctx, updated); err != nil {
		if delErr := u.assignments.DeleteAssignment(ctx, assignment.ID); delErr != nil {
			u.logger.Error("failed to compensate orphaned walk-in assignment",
				zap.String("assignment_id", assignment.ID.String()),
				zap.Error(delErr))
		}
		return AddWalkInResult{}, fmt.Errorf("failed to update shift counters: %w", err)
	}

	record := model.AttendanceRecord{
		ID:           model.AttendanceRecordID(uuid.New().String()),
		AssignmentID: assignment.ID,
		ShiftID:      req.ShiftID,
		UserID:       req.SubjectID,
		CheckInTime:  &now,
		Method:       model.MethodManual,
		Status:       model.AttendanceCheckedIn,
		Notes:        fmt.Sprintf("Walk-in added by %s", requester.FullName()),
	}
	if _, err := u.attendance.CreateAttendanceRecord(ctx, record); err != nil {
		return AddWalkInResult{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	u.metrics.IncWalkIns()
	u.logger.Info("Added walk-in",
		zap.String("shift_id", req.ShiftID.String()),
		zap.String("subject_id", req.SubjectID.String()),
		zap.String("requester_id", req.RequesterID.String()))

	return AddWalkInResult{
		Success:      true,
		AssignmentID: assignment.ID,
		RecordID:     record.ID,
	}, nil
}

// requesterCheckedIn reports whether the requester is currently checked in
// to an active assignment on the shift.
func (u *WalkInUseCase) requesterCheckedIn(ctx context.Context, shiftAssignments []model.Assignment, requesterID model.UserID) (bool, error) {
	assignment, ok := activeAssignmentForUser(shiftAssignments, requesterID)
	if !ok {
		return false, nil
	}
	record, err := u.attendance.GetAttendanceRecordByAssignment(ctx, assignment.ID)
	if err != nil {
		if errors.Is(err, model.ErrAttendanceRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch requester attendance: %w", err)
	}
	return record.IsCheckedIn(), nil
}
