package services

import (
	"context"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/metrics"
)

// SignupTxStore is a backend that can run the signup guards, the assignment
// write, and the counter update inside one transaction. The postgres store
// provides it; the in-memory stores cannot.
type SignupTxStore interface {
	SignUpTx(ctx context.Context, shiftID model.ShiftID, userID model.UserID, role model.RoleType, notes string) (model.AssignmentID, error)
	CancelTx(ctx context.Context, id model.AssignmentID, reason string) error
}

// TxSignupService is the transactional counterpart of SignupService. Both
// writes land atomically, so there is no compensation step to take.
type TxSignupService struct {
	store   SignupTxStore
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewTxSignupService builds a TxSignupService over a transactional backend.
func NewTxSignupService(store SignupTxStore, m *metrics.Metrics, logger *zap.Logger) *TxSignupService {
	return &TxSignupService{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// SignUp creates a pending assignment and increments the shift's counter for
// the role in a single transaction.
func (s *TxSignupService) SignUp(ctx context.Context, req SignUpRequest) (model.AssignmentID, error) {
	id, err := s.store.SignUpTx(ctx, req.ShiftID, req.UserID, req.Role, req.Notes)
	if err != nil {
		return "", err
	}

	s.metrics.IncSignups()
	s.logger.Info("Signed up for shift",
		zap.String("shift_id", req.ShiftID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.String("role", string(req.Role)))

	return id, nil
}

// CancelAssignment moves an active assignment to cancelled and decrements
// the shift's counter for its role in a single transaction.
func (s *TxSignupService) CancelAssignment(ctx context.Context, id model.AssignmentID, reason string) error {
	if err := s.store.CancelTx(ctx, id, reason); err != nil {
		return err
	}

	s.metrics.IncCancellations()
	s.logger.Info("Cancelled assignment", zap.String("assignment_id", id.String()))

	return nil
}
