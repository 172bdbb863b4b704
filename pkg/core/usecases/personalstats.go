package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/core/services"
	"treelot/pkg/db"
)

// Milestone thresholds for achievement badges, derived from cumulative
// all-time totals.
var (
	hourMilestones  = []float64{10, 25, 50, 100, 200}
	shiftMilestones = []int{5, 10, 25, 50, 100}
)

// PersonalStatsUseCase assembles a volunteer's own statistics view: season
// and all-time totals, leaderboard rank, recent history, and badges.
type PersonalStatsUseCase struct {
	attendance  db.AttendanceStore
	seasons     db.SeasonStore
	leaderboard *services.LeaderboardService
	logger      *zap.Logger
}

// NewPersonalStatsUseCase builds a PersonalStatsUseCase.
func NewPersonalStatsUseCase(attendance db.AttendanceStore, seasons db.SeasonStore, leaderboard *services.LeaderboardService, logger *zap.Logger) *PersonalStatsUseCase {
	return &PersonalStatsUseCase{
		attendance:  attendance,
		seasons:     seasons,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// PersonalStats is the assembled statistics view for one volunteer.
// SeasonStats is nil when no season is active.
type PersonalStats struct {
	UserID      model.UserID
	SeasonStats *services.UserStatistics
	AllTime     services.UserStatistics
	Recent      []model.AttendanceRecord
	Badges      []string
}

const recentHistoryLimit = 10

// GetPersonalStats computes the view. A missing active season or an empty
// leaderboard degrades the view rather than failing it.
func (u *PersonalStatsUseCase) GetPersonalStats(ctx context.Context, userID model.UserID) (PersonalStats, error) {
	allTime, err := u.leaderboard.GetUserStatistics(ctx, userID, nil)
	if err != nil {
		return PersonalStats{}, fmt.Errorf("failed to compute all-time statistics: %w", err)
	}

	stats := PersonalStats{
		UserID:  userID,
		AllTime: allTime,
		Badges:  earnedBadges(allTime),
	}

	season, err := u.seasons.GetActiveSeason(ctx)
	switch {
	case err == nil:
		seasonStats, err := u.leaderboard.GetUserStatistics(ctx, userID, &season.ID)
		if err != nil {
			return PersonalStats{}, fmt.Errorf("failed to compute season statistics: %w", err)
		}
		stats.SeasonStats = &seasonStats
	case errors.Is(err, model.ErrSeasonNotFound):
		u.logger.Debug("No active season for personal stats", zap.String("user_id", userID.String()))
	default:
		return PersonalStats{}, fmt.Errorf("failed to fetch active season: %w", err)
	}

	records, err := u.attendance.GetAttendanceRecordsForUser(ctx, userID)
	if err != nil {
		return PersonalStats{}, fmt.Errorf("failed to fetch attendance records: %w", err)
	}
	stats.Recent = recentRecords(records, recentHistoryLimit)

	return stats, nil
}

// recentRecords returns the newest records by check-in time, newest first.
// Records that never got a check-in time sort last.
func recentRecords(records []model.AttendanceRecord, limit int) []model.AttendanceRecord {
	sorted := make([]model.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CheckInTime, sorted[j].CheckInTime
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// earnedBadges thresholds the cumulative totals into badge labels.
func earnedBadges(stats services.UserStatistics) []string {
	var badges []string
	if stats.CompletedShifts >= 1 {
		badges = append(badges, "First Shift")
	}
	for _, m := range hourMilestones {
		if stats.TotalHours >= m {
			badges = append(badges, fmt.Sprintf("%.0f Hours", m))
		}
	}
	for _, m := range shiftMilestones {
		if stats.CompletedShifts >= m {
			badges = append(badges, fmt.Sprintf("%d Shifts", m))
		}
	}
	return badges
}
