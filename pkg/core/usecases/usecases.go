// Package usecases orchestrates the user-facing operations: each use case
// runs its permission and validation guards before any mutation, calls the
// stores and services it needs in order, and shapes the response. Expected
// business-rule rejections come back as results with Success set to false;
// exceptional conditions are returned as errors.
package usecases

import (
	"context"
	"fmt"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

// requireCommittee fetches the requester and fails with ErrUnauthorized
// unless they hold a leadership role.
func requireCommittee(ctx context.Context, users db.UserStore, id model.UserID) (model.User, error) {
	user, err := users.GetUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to fetch requester: %w", err)
	}
	if !user.IsCommittee() {
		return model.User{}, model.ErrUnauthorized
	}
	return user, nil
}

// activeAssignmentForUser returns the user's active assignment on the shift,
// or false when they hold none.
func activeAssignmentForUser(assignments []model.Assignment, userID model.UserID) (model.Assignment, bool) {
	for _, a := range assignments {
		if a.UserID == userID && a.IsActive() {
			return a, true
		}
	}
	return model.Assignment{}, false
}

// recordsInWindow keeps attendance records whose check-in time falls inside
// the season's date window.
func recordsInWindow(records []model.AttendanceRecord, season model.Season) []model.AttendanceRecord {
	kept := make([]model.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.CheckInTime != nil && season.Contains(*r.CheckInTime) {
			kept = append(kept, r)
		}
	}
	return kept
}
