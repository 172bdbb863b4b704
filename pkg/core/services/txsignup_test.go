package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
)

type fakeSignupTxStore struct {
	signUpShift model.ShiftID
	signUpUser  model.UserID
	signUpRole  model.RoleType
	signUpNotes string
	signUpErr   error

	cancelID     model.AssignmentID
	cancelReason string
	cancelErr    error
}

func (f *fakeSignupTxStore) SignUpTx(_ context.Context, shiftID model.ShiftID, userID model.UserID, role model.RoleType, notes string) (model.AssignmentID, error) {
	f.signUpShift = shiftID
	f.signUpUser = userID
	f.signUpRole = role
	f.signUpNotes = notes
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	return "assign-tx-1", nil
}

func (f *fakeSignupTxStore) CancelTx(_ context.Context, id model.AssignmentID, reason string) error {
	f.cancelID = id
	f.cancelReason = reason
	return f.cancelErr
}

func TestTxSignupService_SignUpDelegatesToTransaction(t *testing.T) {
	store := &fakeSignupTxStore{}
	svc := NewTxSignupService(store, nil, zap.NewNop())

	id, err := svc.SignUp(context.Background(), SignUpRequest{
		ShiftID: "shift-1",
		UserID:  "user-1",
		Role:    model.RoleScout,
		Notes:   "first time",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AssignmentID("assign-tx-1"), id)

	assert.Equal(t, model.ShiftID("shift-1"), store.signUpShift)
	assert.Equal(t, model.UserID("user-1"), store.signUpUser)
	assert.Equal(t, model.RoleScout, store.signUpRole)
	assert.Equal(t, "first time", store.signUpNotes)
}

func TestTxSignupService_SignUpPropagatesGuardErrors(t *testing.T) {
	store := &fakeSignupTxStore{signUpErr: model.ErrShiftFull}
	svc := NewTxSignupService(store, nil, zap.NewNop())

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		ShiftID: "shift-1",
		UserID:  "user-1",
		Role:    model.RoleScout,
	})
	assert.ErrorIs(t, err, model.ErrShiftFull)
}

func TestTxSignupService_CancelDelegatesToTransaction(t *testing.T) {
	store := &fakeSignupTxStore{}
	svc := NewTxSignupService(store, nil, zap.NewNop())

	err := svc.CancelAssignment(context.Background(), "assign-1", "sick")
	require.NoError(t, err)
	assert.Equal(t, model.AssignmentID("assign-1"), store.cancelID)
	assert.Equal(t, "sick", store.cancelReason)
}

func TestTxSignupService_CancelPropagatesGuardErrors(t *testing.T) {
	store := &fakeSignupTxStore{cancelErr: model.ErrAssignmentNotActive}
	svc := NewTxSignupService(store, nil, zap.NewNop())

	err := svc.CancelAssignment(context.Background(), "assign-1", "")
	assert.ErrorIs(t, err, model.ErrAssignmentNotActive)

	// A rejected cancel must not hide double-cancel protection behind
	// the transactional path.
	err = svc.CancelAssignment(context.Background(), "assign-1", "")
	assert.ErrorIs(t, err, model.ErrAssignmentNotActive)
}
