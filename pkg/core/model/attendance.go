package model

import (
	"strings"
	"time"
)

// GeoLocation is a coordinate captured at check-in. It is stored as-is; no
// geofencing validation happens at the domain layer.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
}

// AttendanceRecord is the record of actual presence or absence against an
// assignment. Exactly one record exists per assignment, created lazily on
// first check-in or administrative action. Notes is an append-only,
// pipe-delimited audit trail of administrative actions.
type AttendanceRecord struct {
	ID              AttendanceRecordID
	AssignmentID    AssignmentID
	ShiftID         ShiftID
	UserID          UserID
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	Method          CheckInMethod
	CheckInLocation *GeoLocation
	HoursWorked     *float64
	Status          AttendanceStatus
	Notes           string
}

// IsCheckedIn reports whether the volunteer is currently on shift.
func (r AttendanceRecord) IsCheckedIn() bool {
	return r.CheckInTime != nil && r.CheckOutTime == nil
}

// IsComplete reports whether both check-in and check-out times are present.
func (r AttendanceRecord) IsComplete() bool {
	return r.CheckInTime != nil && r.CheckOutTime != nil
}

// AppendNote joins the existing audit trail with additional entries,
// skipping empties, pipe-delimited.
func AppendNote(existing string, entries ...string) string {
	parts := make([]string, 0, len(entries)+1)
	if existing != "" {
		parts = append(parts, existing)
	}
	for _, e := range entries {
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, " | ")
}

// HoursBetween computes worked hours as fractional hours. No rounding is
// applied at the domain layer.
func HoursBetween(checkIn, checkOut time.Time) float64 {
	return checkOut.Sub(checkIn).Seconds() / 3600.0
}
