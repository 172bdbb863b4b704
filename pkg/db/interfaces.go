// Package db defines the store contracts for the scheduling domain and an
// in-memory reference implementation used by tests and local development.
package db

import (
	"context"
	"time"

	"treelot/pkg/core/model"
)

// ShiftStore defines the interface for shift persistence operations.
type ShiftStore interface {
	GetShift(ctx context.Context, id model.ShiftID) (model.Shift, error)
	GetShiftsForDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error)
	GetShiftsForSeason(ctx context.Context, seasonID model.SeasonID) ([]model.Shift, error)
	CreateShift(ctx context.Context, shift model.Shift) (model.ShiftID, error)
	UpdateShift(ctx context.Context, shift model.Shift) error
	DeleteShift(ctx context.Context, id model.ShiftID) error
	// ObserveShift yields snapshots of the shift. The reference
	// implementation emits the current snapshot and closes the channel; a
	// remote backend would keep the subscription live.
	ObserveShift(ctx context.Context, id model.ShiftID) <-chan model.Shift
}

// AssignmentStore defines the interface for assignment persistence operations.
type AssignmentStore interface {
	GetAssignment(ctx context.Context, id model.AssignmentID) (model.Assignment, error)
	GetAssignmentsForShift(ctx context.Context, shiftID model.ShiftID) ([]model.Assignment, error)
	GetAssignmentsForUser(ctx context.Context, userID model.UserID) ([]model.Assignment, error)
	GetAssignmentsForUserInDateRange(ctx context.Context, userID model.UserID, start, end time.Time) ([]model.Assignment, error)
	CreateAssignment(ctx context.Context, assignment model.Assignment) (model.AssignmentID, error)
	UpdateAssignment(ctx context.Context, assignment model.Assignment) error
	DeleteAssignment(ctx context.Context, id model.AssignmentID) error
	ObserveAssignmentsForShift(ctx context.Context, shiftID model.ShiftID) <-chan []model.Assignment
}

// AttendanceStore defines the interface for attendance record persistence
// operations. GetAttendanceRecordByAssignment returns
// model.ErrAttendanceRecordNotFound when no record exists yet; at most one
// record ever exists per assignment.
type AttendanceStore interface {
	GetAttendanceRecord(ctx context.Context, id model.AttendanceRecordID) (model.AttendanceRecord, error)
	GetAttendanceRecordByAssignment(ctx context.Context, assignmentID model.AssignmentID) (model.AttendanceRecord, error)
	GetAttendanceRecordsForShift(ctx context.Context, shiftID model.ShiftID) ([]model.AttendanceRecord, error)
	GetAttendanceRecordsForUser(ctx context.Context, userID model.UserID) ([]model.AttendanceRecord, error)
	CreateAttendanceRecord(ctx context.Context, record model.AttendanceRecord) (model.AttendanceRecordID, error)
	UpdateAttendanceRecord(ctx context.Context, record model.AttendanceRecord) error
	ObserveAttendanceRecordByAssignment(ctx context.Context, assignmentID model.AssignmentID) <-chan model.AttendanceRecord
}

// UserStore defines the interface for user persistence operations.
type UserStore interface {
	GetUser(ctx context.Context, id model.UserID) (model.User, error)
	GetUsersByRole(ctx context.Context, role model.UserRole) ([]model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.UserID, error)
	UpdateUser(ctx context.Context, user model.User) error
}

// HouseholdStore defines the interface for household persistence operations.
type HouseholdStore interface {
	GetHousehold(ctx context.Context, id model.HouseholdID) (model.Household, error)
	ListHouseholds(ctx context.Context) ([]model.Household, error)
	CreateHousehold(ctx context.Context, household model.Household) (model.HouseholdID, error)
	UpdateHousehold(ctx context.Context, household model.Household) error
}

// SeasonStore defines the interface for season persistence operations.
type SeasonStore interface {
	GetSeason(ctx context.Context, id model.SeasonID) (model.Season, error)
	GetActiveSeason(ctx context.Context) (model.Season, error)
	ListSeasons(ctx context.Context) ([]model.Season, error)
	CreateSeason(ctx context.Context, season model.Season) (model.SeasonID, error)
	UpdateSeason(ctx context.Context, season model.Season) error
}

// TemplateStore defines the interface for shift template persistence
// operations.
type TemplateStore interface {
	GetTemplate(ctx context.Context, id model.TemplateID) (model.ShiftTemplate, error)
	ListTemplates(ctx context.Context) ([]model.ShiftTemplate, error)
	CreateTemplate(ctx context.Context, template model.ShiftTemplate) (model.TemplateID, error)
	UpdateTemplate(ctx context.Context, template model.ShiftTemplate) error
}
