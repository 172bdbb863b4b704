package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/core/services"
	"treelot/pkg/db"
)

// CheckInUseCase wraps the attendance service's check-in with the
// ownership guard applied before any mutation.
type CheckInUseCase struct {
	assignments db.AssignmentStore
	attendance  *services.AttendanceService
	logger      *zap.Logger
}

// NewCheckInUseCase builds a CheckInUseCase.
func NewCheckInUseCase(assignments db.AssignmentStore, attendance *services.AttendanceService, logger *zap.Logger) *CheckInUseCase {
	return &CheckInUseCase{
		assignments: assignments,
		attendance:  attendance,
		logger:      logger,
	}
}

// SelfCheckInRequest is a volunteer checking themselves in.
type SelfCheckInRequest struct {
	AssignmentID model.AssignmentID
	UserID       model.UserID
	QRPayload    string
	Location     *model.GeoLocation
}

// CheckIn verifies the assignment belongs to the caller, then delegates to
// the attendance service.
func (u *CheckInUseCase) CheckIn(ctx context.Context, req SelfCheckInRequest) (services.CheckInResult, error) {
	assignment, err := u.assignments.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return services.CheckInResult{}, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment.UserID != req.UserID {
		return services.CheckInResult{}, model.ErrUnauthorized
	}

	result, err := u.attendance.CheckIn(ctx, services.CheckInRequest{
		AssignmentID: req.AssignmentID,
		QRPayload:    req.QRPayload,
		Location:     req.Location,
	})
	if err != nil {
		return services.CheckInResult{}, err
	}

	u.logger.Debug("Self check-in complete",
		zap.String("assignment_id", req.AssignmentID.String()),
		zap.String("user_id", req.UserID.String()))

	return result, nil
}
