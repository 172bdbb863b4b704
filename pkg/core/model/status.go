package model

// ShiftStatus is the lifecycle status of a shift.
type ShiftStatus string

const (
	ShiftDraft     ShiftStatus = "draft"
	ShiftPublished ShiftStatus = "published"
	ShiftCompleted ShiftStatus = "completed"
	ShiftCancelled ShiftStatus = "cancelled"
)

// CanAcceptSignups reports whether volunteers may sign up for a shift in
// this status.
func (s ShiftStatus) CanAcceptSignups() bool {
	return s == ShiftPublished
}

func (s ShiftStatus) IsValid() bool {
	switch s {
	case ShiftDraft, ShiftPublished, ShiftCompleted, ShiftCancelled:
		return true
	}
	return false
}

// AssignmentStatus is the lifecycle status of a shift assignment.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentCancelled AssignmentStatus = "cancelled"
	AssignmentCompleted AssignmentStatus = "completed"
)

// IsActive reports whether the assignment still claims a slot on its shift.
func (s AssignmentStatus) IsActive() bool {
	return s == AssignmentPending || s == AssignmentConfirmed
}

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentPending, AssignmentConfirmed, AssignmentCancelled, AssignmentCompleted:
		return true
	}
	return false
}

// AttendanceStatus is the state of an attendance record.
type AttendanceStatus string

const (
	AttendancePending    AttendanceStatus = "pending"
	AttendanceCheckedIn  AttendanceStatus = "checked_in"
	AttendanceCheckedOut AttendanceStatus = "checked_out"
	AttendanceNoShow     AttendanceStatus = "no_show"
	AttendanceExcused    AttendanceStatus = "excused"
)

// IsTerminal reports whether the record has reached a final state.
func (s AttendanceStatus) IsTerminal() bool {
	return s == AttendanceCheckedOut || s == AttendanceNoShow || s == AttendanceExcused
}

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePending, AttendanceCheckedIn, AttendanceCheckedOut, AttendanceNoShow, AttendanceExcused:
		return true
	}
	return false
}

// CheckInMethod records how a check-in was triggered.
type CheckInMethod string

const (
	MethodQRCode        CheckInMethod = "qr_code"
	MethodManual        CheckInMethod = "manual"
	MethodAdminOverride CheckInMethod = "admin_override"
)

// RoleType is the role an assignment fills on a shift.
type RoleType string

const (
	RoleScout  RoleType = "scout"
	RoleParent RoleType = "parent"
)

func (r RoleType) IsValid() bool {
	return r == RoleScout || r == RoleParent
}

// UserRole is the role a user holds in the troop.
type UserRole string

const (
	UserScout                UserRole = "scout"
	UserParent               UserRole = "parent"
	UserScoutmaster          UserRole = "scoutmaster"
	UserAssistantScoutmaster UserRole = "assistant_scoutmaster"
)

// IsLeadership reports whether the role carries committee permissions.
func (r UserRole) IsLeadership() bool {
	return r == UserScoutmaster || r == UserAssistantScoutmaster
}

// AccountStatus is the activation state of a user account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountPending  AccountStatus = "pending"
)

// SeasonStatus is the lifecycle status of a fundraising season.
type SeasonStatus string

const (
	SeasonDraft     SeasonStatus = "draft"
	SeasonActive    SeasonStatus = "active"
	SeasonCompleted SeasonStatus = "completed"
	SeasonArchived  SeasonStatus = "archived"
)
