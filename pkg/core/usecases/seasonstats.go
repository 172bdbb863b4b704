package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/core/services"
	"treelot/pkg/db"
)

// SeasonStatsUseCase builds the committee's season-wide report:
// participation, fill rates, hour totals, and top volunteers.
type SeasonStatsUseCase struct {
	shifts      db.ShiftStore
	attendance  db.AttendanceStore
	users       db.UserStore
	households  db.HouseholdStore
	seasons     db.SeasonStore
	leaderboard *services.LeaderboardService
	logger      *zap.Logger
}

// NewSeasonStatsUseCase builds a SeasonStatsUseCase.
func NewSeasonStatsUseCase(shifts db.ShiftStore, attendance db.AttendanceStore, users db.UserStore, households db.HouseholdStore, seasons db.SeasonStore, leaderboard *services.LeaderboardService, logger *zap.Logger) *SeasonStatsUseCase {
	return &SeasonStatsUseCase{
		shifts:      shifts,
		attendance:  attendance,
		users:       users,
		households:  households,
		seasons:     seasons,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

const topVolunteerLimit = 5

// SeasonStatistics is the season-wide aggregate report.
type SeasonStatistics struct {
	SeasonID           model.SeasonID
	SeasonName         string
	TotalShifts        int
	FullyStaffedShifts int
	ShiftFillRate      float64 // fraction of shifts fully staffed
	SlotFillRate       float64 // filled slots over required slots
	TotalHours         float64
	ActiveVolunteers   int // distinct users with attendance activity
	ActiveHouseholds   int // distinct households those users belong to
	NoShows            int
	TopVolunteers      []services.LeaderboardEntry
}

// GetSeasonStatistics aggregates over the season's shifts and their
// attendance. Committee only. A household that no longer exists is skipped
// rather than failing the report.
func (u *SeasonStatsUseCase) GetSeasonStatistics(ctx context.Context, requesterID model.UserID, seasonID model.SeasonID) (SeasonStatistics, error) {
	if _, err := requireCommittee(ctx, u.users, requesterID); err != nil {
		return SeasonStatistics{}, err
	}

	season, err := u.seasons.GetSeason(ctx, seasonID)
	if err != nil {
		return SeasonStatistics{}, fmt.Errorf("failed to fetch season: %w", err)
	}

	shifts, err := u.shifts.GetShiftsForSeason(ctx, seasonID)
	if err != nil {
		return SeasonStatistics{}, fmt.Errorf("failed to fetch season shifts: %w", err)
	}

	stats := SeasonStatistics{
		SeasonID:   season.ID,
		SeasonName: season.Name,
	}

	var requiredSlots, filledSlots int
	activeUsers := make(map[model.UserID]bool)
	for _, shift := range shifts {
		if shift.Status == model.ShiftCancelled {
			continue
		}
		stats.TotalShifts++
		requiredSlots += shift.RequiredScouts + shift.RequiredParents
		filledSlots += shift.CurrentScouts + shift.CurrentParents
		if !shift.NeedsScouts() && !shift.NeedsParents() {
			stats.FullyStaffedShifts++
		}

		records, err := u.attendance.GetAttendanceRecordsForShift(ctx, shift.ID)
		if err != nil {
			return SeasonStatistics{}, fmt.Errorf("failed to fetch attendance for shift %s: %w", shift.ID, err)
		}
		for _, r := range records {
			if r.Status == model.AttendanceCheckedOut && r.HoursWorked != nil {
				stats.TotalHours += *r.HoursWorked
			}
			if r.Status == model.AttendanceNoShow {
				stats.NoShows++
			}
			if r.CheckInTime != nil || r.Status == model.AttendanceNoShow {
				activeUsers[r.UserID] = true
			}
		}
	}

	if stats.TotalShifts > 0 {
		stats.ShiftFillRate = float64(stats.FullyStaffedShifts) / float64(stats.TotalShifts)
	}
	if requiredSlots > 0 {
		stats.SlotFillRate = float64(filledSlots) / float64(requiredSlots)
	}
	stats.ActiveVolunteers = len(activeUsers)

	households, err := u.countHouseholds(ctx, activeUsers)
	if err != nil {
		return SeasonStatistics{}, err
	}
	stats.ActiveHouseholds = households

	entries, err := u.leaderboard.GetLeaderboard(ctx, &seasonID)
	if err != nil {
		return SeasonStatistics{}, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	if len(entries) > topVolunteerLimit {
		entries = entries[:topVolunteerLimit]
	}
	stats.TopVolunteers = entries

	u.logger.Info("Computed season statistics",
		zap.String("season_id", seasonID.String()),
		zap.Int("total_shifts", stats.TotalShifts),
		zap.Float64("total_hours", stats.TotalHours))

	return stats, nil
}

// countHouseholds resolves the distinct households of the active users. A
// missing user or household is skipped, not fatal.
func (u *SeasonStatsUseCase) countHouseholds(ctx context.Context, activeUsers map[model.UserID]bool) (int, error) {
	seen := make(map[model.HouseholdID]bool)
	for userID := range activeUsers {
		user, err := u.users.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return 0, fmt.Errorf("failed to fetch user %s: %w", userID, err)
		}
		for _, hid := range user.Households {
			if seen[hid] {
				continue
			}
			if _, err := u.households.GetHousehold(ctx, hid); err != nil {
				if errors.Is(err, model.ErrHouseholdNotFound) {
					continue
				}
				return 0, fmt.Errorf("failed to fetch household %s: %w", hid, err)
			}
			seen[hid] = true
		}
	}
	return len(seen), nil
}
