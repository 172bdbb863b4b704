package services

import (
	"errors"

	"treelot/pkg/core/model"
)

// errorsIsNotFound reports whether err means the attendance record does not
// exist yet, which for check-in paths is the lazy-creation case rather than
// a failure.
func errorsIsNotFound(err error) bool {
	return errors.Is(err, model.ErrAttendanceRecordNotFound)
}

// summarizeRecords folds a user's attendance records into the totals the
// statistics and leaderboard paths share. Hours count only checked-out
// records; completed counts records with both timestamps present.
func summarizeRecords(records []model.AttendanceRecord) (hours float64, completed, noShows int) {
	for _, r := range records {
		if r.Status == model.AttendanceCheckedOut && r.HoursWorked != nil {
			hours += *r.HoursWorked
		}
		if r.IsComplete() {
			completed++
		}
		if r.Status == model.AttendanceNoShow {
			noShows++
		}
	}
	return hours, completed, noShows
}

// filterRecordsToWindow keeps records whose check-in time falls inside the
// season window. Records that never got a check-in time are dropped; they
// cannot be attributed to a window.
func filterRecordsToWindow(records []model.AttendanceRecord, season model.Season) []model.AttendanceRecord {
	filtered := make([]model.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.CheckInTime != nil && season.Contains(*r.CheckInTime) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
