// Package services holds the domain operations that span multiple entities:
// signup and cancellation, the attendance state machine, schedule
// generation, and leaderboard aggregation. Each service keeps the
// cross-entity invariants a single store cannot.
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

// SignupService creates and cancels assignments while keeping the owning
// shift's fill counters in lock-step with the assignment writes.
type SignupService struct {
	shifts      db.ShiftStore
	assignments db.AssignmentStore
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewSignupService builds a SignupService.
func NewSignupService(shifts db.ShiftStore, assignments db.AssignmentStore, m *metrics.Metrics, logger *zap.Logger) *SignupService {
	return &SignupService{
		shifts:      shifts,
		assignments: assignments,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// SignUpRequest describes a self-service signup.
type SignUpRequest struct {
	ShiftID model.ShiftID
	UserID  model.UserID
	Role    model.RoleType
	Notes   string
}

// SignUp creates a pending assignment and increments the shift's counter
// for the role. The two writes hit separate stores; if the counter write
// fails the created assignment is deleted so no slot is silently claimed.
func (s *SignupService) SignUp(ctx context.Context, req SignUpRequest) (model.AssignmentID, error) {
	if !req.Role.IsValid() {
		return "", model.NewInvalidInput(fmt.Sprintf("unknown role type %q", req.Role))
	}

	shift, err := s.shifts.GetShift(ctx, req.ShiftID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch shift: %w", err)
	}
	if !shift.Status.CanAcceptSignups() {
		return "", model.ErrShiftNotPublished
	}

	existing, err := s.assignments.GetAssignmentsForShift(ctx, req.ShiftID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch shift assignments: %w", err)
	}
	for _, a := range existing {
		if a.UserID == req.UserID && a.IsActive() {
			return "", model.ErrAlreadyAssignedToShift
		}
	}

	if shift.Current(req.Role) >= shift.Required(req.Role) {
		return "", model.ErrShiftFull
	}

	assignment := model.Assignment{
		ID:         model.AssignmentID(uuid.New().String()),
		ShiftID:    req.ShiftID,
		UserID:     req.UserID,
		Role:       req.Role,
		Status:     model.AssignmentPending,
		Notes:      req.Notes,
		AssignedAt: s.now(),
	}
	if _, err := s.assignments.CreateAssignment(ctx, assignment); err != nil {
		return "", fmt.Errorf("failed to create assignment: %w", err)
	}

	updated := shift.WithCurrent(req.Role, shift.Current(req.Role)+1)
	if err := s.shifts.UpdateShift(ctx, updated); err != nil {
		// Compensate so the failed signup does not hold a slot.
		if delErr := s.assignments.DeleteAssignment(ctx, assignment.ID); delErr != nil {
			s.logger.Error("failed to compensate orphaned assignment",
				zap.String("assignment_id", assignment.ID.String()),
				zap.Error(delErr))
		}
		return "", fmt.Errorf("failed to update shift counters: %w", err)
	}

	s.metrics.IncSignups()
	s.logger.Info("Signed up for shift",
		zap.String("shift_id", req.ShiftID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.String("role", string(req.Role)))

	return assignment.ID, nil
}

// CancelAssignment moves an active assignment to cancelled and decrements
// the shift's counter for its role, clamped at zero. Cancelling an
// assignment that is no longer active fails with ErrAssignmentNotActive,
// so a double cancel can never double-decrement.
func (s *SignupService) CancelAssignment(ctx context.Context, id model.AssignmentID, reason string) error {
	assignment, err := s.assignments.GetAssignment(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if !assignment.IsActive() {
		return model.ErrAssignmentNotActive
	}

	cancelled := assignment.WithStatus(model.AssignmentCancelled)
	if reason != "" {
		cancelled.Notes = model.AppendNote(cancelled.Notes, "Cancelled: "+reason)
	}
	if err := s.assignments.UpdateAssignment(ctx, cancelled); err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	shift, err := s.shifts.GetShift(ctx, assignment.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to fetch shift: %w", err)
	}
	updated := shift.WithCurrent(assignment.Role, shift.Current(assignment.Role)-1)
	if err := s.shifts.UpdateShift(ctx, updated); err != nil {
		// Restore the assignment so counters and assignments stay consistent.
		if revErr := s.assignments.UpdateAssignment(ctx, assignment); revErr != nil {
			s.logger.Error("failed to revert assignment after counter failure",
				zap.String("assignment_id", id.String()),
				zap.Error(revErr))
		}
		return fmt.Errorf("failed to update shift counters: %w", err)
	}

	s.metrics.IncCancellations()
	s.logger.Info("Cancelled assignment",
		zap.String("assignment_id", id.String()),
		zap.String("shift_id", assignment.ShiftID.String()))

	return nil
}
