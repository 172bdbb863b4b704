package model

import "errors"

// Domain error sentinels. Callers branch with errors.Is; stores and
// services wrap them with context where useful.
var (
	// Not-found, per entity.
	ErrShiftNotFound            = errors.New("shift not found")
	ErrAssignmentNotFound       = errors.New("assignment not found")
	ErrAttendanceRecordNotFound = errors.New("attendance record not found")
	ErrUserNotFound             = errors.New("user not found")
	ErrHouseholdNotFound        = errors.New("household not found")
	ErrSeasonNotFound           = errors.New("season not found")
	ErrTemplateNotFound         = errors.New("template not found")

	// Permission.
	ErrUnauthorized = errors.New("not authorized to perform this action")

	// Conflict.
	ErrAlreadyExists          = errors.New("entity already exists")
	ErrAlreadyCheckedIn       = errors.New("already checked in")
	ErrAlreadyAssignedToShift = errors.New("already assigned to this shift")

	// State violations.
	ErrAssignmentNotActive    = errors.New("assignment is not active")
	ErrNotCheckedIn           = errors.New("not checked in")
	ErrShiftNotPublished      = errors.New("shift is not open for signup")
	ErrShiftFull              = errors.New("shift is full for this role")
	ErrShiftInPast            = errors.New("shift is in the past")
	ErrCannotCancelAssignment = errors.New("assignment can no longer be cancelled")
	ErrUserAccountInactive    = errors.New("user account cannot sign up for shifts")
)

// InvalidInputError is a validation failure carrying a caller-facing message.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(msg string) error {
	return &InvalidInputError{Message: msg}
}

// IsInvalidInput reports whether err is a validation failure.
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}
