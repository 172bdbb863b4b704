package model

import "strings"

// Entity identifiers are named string types so they cannot be mixed up at
// call sites. ParseXxxID is the validating constructor; a raw conversion
// bypasses validation and belongs in tests and seed fixtures only.

type ShiftID string

type AssignmentID string

type AttendanceRecordID string

type UserID string

type HouseholdID string

type SeasonID string

type TemplateID string

// ParseShiftID validates and returns a shift identifier.
func ParseShiftID(v string) (ShiftID, error) {
	if strings.TrimSpace(v) == "" {
		return "", NewInvalidInput("shift id cannot be empty")
	}
	return ShiftID(v), nil
}

// ParseAssignmentID validates and returns an assignment identifier.
func ParseAssignmentID(v string) (AssignmentID, error) {
	if strings.TrimSpace(v) == "" {
		return "", NewInvalidInput("assignment id cannot be empty")
	}
	return AssignmentID(v), nil
}

// ParseAttendanceRecordID validates and returns an attendance record identifier.
func ParseAttendanceRecordID(v string) (AttendanceRecordID, error) {
	if strings.TrimSpace(v) == "" {
		return "", NewInvalidInput("attendance record id cannot be empty")
	}
	return AttendanceRecordID(v), nil
}

// ParseUserID validates and returns a user identifier.
func ParseUserID(v string) (UserID, error) {
	if strings.TrimSpace(v) == "" {
		return "", NewInvalidInput("user id cannot be empty")
	}
	return UserID(v), nil
}

// ParseSeasonID validates and returns a season identifier.
func ParseSeasonID(v string) (SeasonID, error) {
	if strings.TrimSpace(v) == "" {
		return "", NewInvalidInput("season id cannot be empty")
	}
	return SeasonID(v), nil
}

// ParseTemplateID validates and returns a template identifier.
func ParseTemplateID(v string) (TemplateID, error) {
	if strings.TrimSpace(v) == "" {
		return "", NewInvalidInput("template id cannot be empty")
	}
	return TemplateID(v), nil
}

func (id ShiftID) String() string            { return string(id) }
func (id AssignmentID) String() string       { return string(id) }
func (id AttendanceRecordID) String() string { return string(id) }
func (id UserID) String() string             { return string(id) }
func (id HouseholdID) String() string        { return string(id) }
func (id SeasonID) String() string           { return string(id) }
func (id TemplateID) String() string         { return string(id) }
