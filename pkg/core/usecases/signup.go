package usecases

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/core/services"
	"treelot/pkg/db"
)

// ShiftSigner creates and cancels assignments while keeping the owning
// shift's counters consistent. services.SignupService implements it with
// compensated two-store writes; services.TxSignupService implements it over
// a single-transaction backend.
type ShiftSigner interface {
	SignUp(ctx context.Context, req services.SignUpRequest) (model.AssignmentID, error)
	CancelAssignment(ctx context.Context, id model.AssignmentID, reason string) error
}

// SignUpUseCase wraps the signup engine with the account and timing guards
// the self-service surface applies before any mutation.
type SignUpUseCase struct {
	shifts      db.ShiftStore
	assignments db.AssignmentStore
	users       db.UserStore
	signup      ShiftSigner
	logger      *zap.Logger
	now         func() time.Time
}

// NewSignUpUseCase builds a SignUpUseCase.
func NewSignUpUseCase(shifts db.ShiftStore, assignments db.AssignmentStore, users db.UserStore, signup ShiftSigner, logger *zap.Logger) *SignUpUseCase {
	return &SignUpUseCase{
		shifts:      shifts,
		assignments: assignments,
		users:       users,
		signup:      signup,
		logger:      logger,
		now:         time.Now,
	}
}

// SignUpForShiftRequest is a volunteer claiming a slot on a shift.
type SignUpForShiftRequest struct {
	ShiftID model.ShiftID
	UserID  model.UserID
	Role    model.RoleType
	Notes   string
}

// SignUpForShift guards that the account may sign up and the shift has not
// already started, then delegates to the signup service.
func (u *SignUpUseCase) SignUpForShift(ctx context.Context, req SignUpForShiftRequest) (model.AssignmentID, error) {
	user, err := u.users.GetUser(ctx, req.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}
	if !user.CanSignUpForShifts() {
		return "", model.ErrUserAccountInactive
	}

	shift, err := u.shifts.GetShift(ctx, req.ShiftID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch shift: %w", err)
	}
	if shift.StartTime.Before(u.now()) {
		return "", model.ErrShiftInPast
	}

	return u.signup.SignUp(ctx, services.SignUpRequest{
		ShiftID: req.ShiftID,
		UserID:  req.UserID,
		Role:    req.Role,
		Notes:   req.Notes,
	})
}

// CancelAssignmentRequest is a volunteer (or the committee on their behalf)
// releasing a claimed slot.
type CancelAssignmentRequest struct {
	AssignmentID model.AssignmentID
	RequesterID  model.UserID
	Reason       string
}

// CancelAssignment guards ownership (committee may cancel anyone's) and
// that the shift has not already started, then delegates to the signup
// service.
func (u *SignUpUseCase) CancelAssignment(ctx context.Context, req CancelAssignmentRequest) error {
	assignment, err := u.assignments.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}

	if assignment.UserID != req.RequesterID {
		requester, err := u.users.GetUser(ctx, req.RequesterID)
		if err != nil {
			return fmt.Errorf("failed to fetch requester: %w", err)
		}
		if !requester.IsCommittee() {
			return model.ErrUnauthorized
		}
	}

	shift, err := u.shifts.GetShift(ctx, assignment.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to fetch shift: %w", err)
	}
	if shift.StartTime.Before(u.now()) {
		return model.ErrCannotCancelAssignment
	}

	if err := u.signup.CancelAssignment(ctx, req.AssignmentID, req.Reason); err != nil {
		return err
	}

	u.logger.Debug("Assignment cancelled",
		zap.String("assignment_id", req.AssignmentID.String()),
		zap.String("requester_id", req.RequesterID.String()))

	return nil
}
