package model

import "time"

// Shift is a scheduled block of volunteer work at the tree lot with target
// headcounts per role. CurrentScouts/CurrentParents are denormalized fill
// counters maintained by the signup service in lock-step with assignment
// writes; they are never recomputed from assignments on read.
type Shift struct {
	ID              ShiftID
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	RequiredScouts  int
	RequiredParents int
	CurrentScouts   int
	CurrentParents  int
	Location        string
	Label           string
	Notes           string
	Status          ShiftStatus
	SeasonID        SeasonID
	TemplateID      TemplateID
	CreatedAt       time.Time
}

// NeedsScouts reports whether the scout slots are not yet filled.
func (s Shift) NeedsScouts() bool {
	return s.CurrentScouts < s.RequiredScouts
}

// NeedsParents reports whether the parent slots are not yet filled.
func (s Shift) NeedsParents() bool {
	return s.CurrentParents < s.RequiredParents
}

// Duration is the scheduled length of the shift.
func (s Shift) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Current returns the fill counter for the given role.
func (s Shift) Current(role RoleType) int {
	if role == RoleScout {
		return s.CurrentScouts
	}
	return s.CurrentParents
}

// Required returns the capacity target for the given role.
func (s Shift) Required(role RoleType) int {
	if role == RoleScout {
		return s.RequiredScouts
	}
	return s.RequiredParents
}

// WithCurrent returns a copy with the counter for role set to n, clamped
// at zero. Identity and creation timestamp are never touched.
func (s Shift) WithCurrent(role RoleType, n int) Shift {
	if n < 0 {
		n = 0
	}
	if role == RoleScout {
		s.CurrentScouts = n
	} else {
		s.CurrentParents = n
	}
	return s
}

// WithStatus returns a copy in the given lifecycle status.
func (s Shift) WithStatus(status ShiftStatus) Shift {
	s.Status = status
	return s
}
