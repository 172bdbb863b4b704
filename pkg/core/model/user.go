package model

import "time"

// User is a scout, parent, or leadership member.
type User struct {
	ID            UserID
	Email         string
	FirstName     string
	LastName      string
	Role          UserRole
	AccountStatus AccountStatus
	Households    []HouseholdID
	IsClaimed     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName is the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsCommittee reports whether the user holds committee permissions.
func (u User) IsCommittee() bool {
	return u.Role.IsLeadership()
}

// CanSignUpForShifts reports whether the account may claim shift slots.
func (u User) CanSignUpForShifts() bool {
	return u.AccountStatus == AccountActive && u.IsClaimed
}

// Household groups the users of one family for reporting.
type Household struct {
	ID        HouseholdID
	Name      string
	Members   []UserID
	Managers  []UserID
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
