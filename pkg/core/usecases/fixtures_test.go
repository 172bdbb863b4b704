package usecases

import (
	"time"

	"treelot/pkg/core/model"
)

var testClock = time.Date(2025, 12, 6, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testClock }

func committeeUser(id model.UserID) model.User {
	return model.User{
		ID:            id,
		FirstName:     "Morgan",
		LastName:      "Lead",
		Role:          model.UserScoutmaster,
		AccountStatus: model.AccountActive,
		IsClaimed:     true,
	}
}

func scoutUser(id model.UserID, first string) model.User {
	return model.User{
		ID:            id,
		FirstName:     first,
		LastName:      "Scout",
		Role:          model.UserScout,
		AccountStatus: model.AccountActive,
		IsClaimed:     true,
	}
}

func parentUser(id model.UserID, first string) model.User {
	return model.User{
		ID:            id,
		FirstName:     first,
		LastName:      "Parent",
		Role:          model.UserParent,
		AccountStatus: model.AccountActive,
		IsClaimed:     true,
	}
}

// startedShift began two hours before the test clock.
func startedShift(id model.ShiftID, requiredScouts, requiredParents int) model.Shift {
	return model.Shift{
		ID:              id,
		Date:            testClock.Truncate(24 * time.Hour),
		StartTime:       testClock.Add(-2 * time.Hour),
		EndTime:         testClock.Add(4 * time.Hour),
		RequiredScouts:  requiredScouts,
		RequiredParents: requiredParents,
		Status:          model.ShiftPublished,
	}
}

// futureShift starts the day after the test clock.
func futureShift(id model.ShiftID, requiredScouts, requiredParents int) model.Shift {
	start := testClock.Add(24 * time.Hour)
	return model.Shift{
		ID:              id,
		Date:            start.Truncate(24 * time.Hour),
		StartTime:       start,
		EndTime:         start.Add(4 * time.Hour),
		RequiredScouts:  requiredScouts,
		RequiredParents: requiredParents,
		Status:          model.ShiftPublished,
	}
}

func confirmedAssignment(id model.AssignmentID, shiftID model.ShiftID, userID model.UserID, role model.RoleType) model.Assignment {
	return model.Assignment{
		ID:      id,
		ShiftID: shiftID,
		UserID:  userID,
		Role:    role,
		Status:  model.AssignmentConfirmed,
	}
}

func checkedInRecord(id model.AttendanceRecordID, assignmentID model.AssignmentID, shiftID model.ShiftID, userID model.UserID) model.AttendanceRecord {
	checkIn := testClock.Add(-time.Hour)
	return model.AttendanceRecord{
		ID:           id,
		AssignmentID: assignmentID,
		ShiftID:      shiftID,
		UserID:       userID,
		CheckInTime:  &checkIn,
		Method:       model.MethodManual,
		Status:       model.AttendanceCheckedIn,
	}
}
