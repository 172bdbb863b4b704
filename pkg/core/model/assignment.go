package model

import "time"

// Assignment is a user's claim on a shift, independent of whether they ever
// attend. AssignedBy is empty for self-service signups; a non-empty value
// different from UserID marks a walk-in.
type Assignment struct {
	ID         AssignmentID
	ShiftID    ShiftID
	UserID     UserID
	Role       RoleType
	Status     AssignmentStatus
	Notes      string
	AssignedAt time.Time
	AssignedBy UserID
}

// IsActive reports whether the assignment still claims a slot.
func (a Assignment) IsActive() bool {
	return a.Status.IsActive()
}

// IsWalkIn reports whether the assignment was created on the spot by
// someone other than the assignee.
func (a Assignment) IsWalkIn() bool {
	return a.AssignedBy != "" && a.AssignedBy != a.UserID
}

// WithStatus returns a copy in the given lifecycle status.
func (a Assignment) WithStatus(status AssignmentStatus) Assignment {
	a.Status = status
	return a
}
