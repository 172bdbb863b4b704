package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

func checkedOutRecord(id model.AttendanceRecordID, userID model.UserID, checkIn time.Time, hours float64) model.AttendanceRecord {
	out := checkIn.Add(time.Duration(hours * float64(time.Hour)))
	return model.AttendanceRecord{
		ID:           id,
		AssignmentID: model.AssignmentID("assign-" + id),
		ShiftID:      "shift-1",
		UserID:       userID,
		CheckInTime:  &checkIn,
		CheckOutTime: &out,
		HoursWorked:  &hours,
		Status:       model.AttendanceCheckedOut,
	}
}

func testUser(id model.UserID, first string, role model.UserRole) model.User {
	return model.User{
		ID:            id,
		FirstName:     first,
		LastName:      "Tester",
		Role:          role,
		AccountStatus: model.AccountActive,
		IsClaimed:     true,
	}
}

func TestGetLeaderboard_RanksByDescendingHours(t *testing.T) {
	ctx := context.Background()
	inSeason := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)

	users := db.NewMemoryUserStore(
		testUser("user-a", "Alice", model.UserScout),
		testUser("user-b", "Ben", model.UserScout),
		testUser("user-c", "Cal", model.UserParent),
		testUser("user-d", "Dot", model.UserScout), // no activity
	)
	attendance := db.NewMemoryAttendanceStore(
		checkedOutRecord("r1", "user-a", inSeason, 4),
		checkedOutRecord("r2", "user-b", inSeason, 8),
		checkedOutRecord("r3", "user-c", inSeason, 2),
	)
	svc := NewLeaderboardService(users, attendance, db.NewMemorySeasonStore(), zap.NewNop())

	entries, err := svc.GetLeaderboard(ctx, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, model.UserID("user-b"), entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 8.0, entries[0].TotalHours)
	assert.Equal(t, model.UserID("user-a"), entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, model.UserID("user-c"), entries[2].UserID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestGetLeaderboard_SeasonWindowFilters(t *testing.T) {
	ctx := context.Background()
	inSeason := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, 12, 6, 9, 0, 0, 0, time.UTC)

	users := db.NewMemoryUserStore(
		testUser("user-a", "Alice", model.UserScout),
		testUser("user-b", "Ben", model.UserScout),
	)
	attendance := db.NewMemoryAttendanceStore(
		checkedOutRecord("r1", "user-a", inSeason, 4),
		checkedOutRecord("r2", "user-b", lastYear, 8),
	)
	seasons := db.NewMemorySeasonStore(model.Season{
		ID:        "season-2025",
		StartDate: time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
		Status:    model.SeasonActive,
	})
	svc := NewLeaderboardService(users, attendance, seasons, zap.NewNop())

	seasonID := model.SeasonID("season-2025")
	entries, err := svc.GetLeaderboard(ctx, &seasonID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.UserID("user-a"), entries[0].UserID)
}

func TestGetUserStatistics(t *testing.T) {
	ctx := context.Background()
	inSeason := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)

	noShow := model.AttendanceRecord{
		ID:           "r3",
		AssignmentID: "assign-r3",
		ShiftID:      "shift-2",
		UserID:       "user-a",
		Status:       model.AttendanceNoShow,
	}
	users := db.NewMemoryUserStore(
		testUser("user-a", "Alice", model.UserScout),
		testUser("user-b", "Ben", model.UserScout),
	)
	attendance := db.NewMemoryAttendanceStore(
		checkedOutRecord("r1", "user-a", inSeason, 3),
		checkedOutRecord("r2", "user-a", inSeason.Add(24*time.Hour), 5),
		noShow,
		checkedOutRecord("r4", "user-b", inSeason, 10),
	)
	svc := NewLeaderboardService(users, attendance, db.NewMemorySeasonStore(), zap.NewNop())

	stats, err := svc.GetUserStatistics(ctx, "user-a", nil)
	require.NoError(t, err)
	assert.Equal(t, 8.0, stats.TotalHours)
	assert.Equal(t, 2, stats.CompletedShifts)
	assert.Equal(t, 1, stats.NoShows)
	assert.InDelta(t, 4.0, stats.AvgHoursPerShift, 1e-9)
	assert.Equal(t, 2, stats.Rank)
}

func TestGetUserStatistics_SeasonFilterKeepsNoShows(t *testing.T) {
	ctx := context.Background()
	inSeason := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, 12, 6, 9, 0, 0, 0, time.UTC)

	// Never checked in, so the record carries no timestamp to place it in
	// any season window.
	noShow := model.AttendanceRecord{
		ID:           "r3",
		AssignmentID: "assign-r3",
		ShiftID:      "shift-2",
		UserID:       "user-a",
		Status:       model.AttendanceNoShow,
	}
	users := db.NewMemoryUserStore(testUser("user-a", "Alice", model.UserScout))
	attendance := db.NewMemoryAttendanceStore(
		checkedOutRecord("r1", "user-a", inSeason, 3),
		checkedOutRecord("r2", "user-a", lastYear, 5),
		noShow,
	)
	seasons := db.NewMemorySeasonStore(model.Season{
		ID:        "season-2025",
		StartDate: time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
		Status:    model.SeasonActive,
	})
	svc := NewLeaderboardService(users, attendance, seasons, zap.NewNop())

	seasonID := model.SeasonID("season-2025")
	stats, err := svc.GetUserStatistics(ctx, "user-a", &seasonID)
	require.NoError(t, err)

	// Hours and completed shifts honor the window; no-shows do not.
	assert.Equal(t, 3.0, stats.TotalHours)
	assert.Equal(t, 1, stats.CompletedShifts)
	assert.Equal(t, 1, stats.NoShows)
}

func TestGetUserStatistics_NoActivity(t *testing.T) {
	ctx := context.Background()
	users := db.NewMemoryUserStore(testUser("user-a", "Alice", model.UserScout))
	svc := NewLeaderboardService(users, db.NewMemoryAttendanceStore(), db.NewMemorySeasonStore(), zap.NewNop())

	stats, err := svc.GetUserStatistics(ctx, "user-a", nil)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalHours)
	assert.Zero(t, stats.CompletedShifts)
	assert.Zero(t, stats.Rank)
}
