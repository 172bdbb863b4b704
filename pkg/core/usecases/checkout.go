package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/core/services"
	"treelot/pkg/db"
)

// CheckOutUseCase wraps the attendance service's check-out with the
// ownership guard applied before any mutation.
type CheckOutUseCase struct {
	assignments db.AssignmentStore
	attendance  *services.AttendanceService
	logger      *zap.Logger
}

// NewCheckOutUseCase builds a CheckOutUseCase.
func NewCheckOutUseCase(assignments db.AssignmentStore, attendance *services.AttendanceService, logger *zap.Logger) *CheckOutUseCase {
	return &CheckOutUseCase{
		assignments: assignments,
		attendance:  attendance,
		logger:      logger,
	}
}

// SelfCheckOutRequest is a volunteer checking themselves out.
type SelfCheckOutRequest struct {
	AssignmentID model.AssignmentID
	UserID       model.UserID
	Notes        string
}

// CheckOut verifies the assignment belongs to the caller, then delegates to
// the attendance service.
func (u *CheckOutUseCase) CheckOut(ctx context.Context, req SelfCheckOutRequest) (services.CheckOutResult, error) {
	assignment, err := u.assignments.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return services.CheckOutResult{}, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment.UserID != req.UserID {
		return services.CheckOutResult{}, model.ErrUnauthorized
	}

	result, err := u.attendance.CheckOut(ctx, req.AssignmentID, req.Notes)
	if err != nil {
		return services.CheckOutResult{}, err
	}

	u.logger.Debug("Self check-out complete",
		zap.String("assignment_id", req.AssignmentID.String()),
		zap.Float64("hours_worked", result.HoursWorked))

	return result, nil
}
