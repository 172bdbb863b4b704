package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

// LeaderboardService aggregates attendance into hour-ranked standings
// across every user, optionally restricted to one season's window.
type LeaderboardService struct {
	users      db.UserStore
	attendance db.AttendanceStore
	seasons    db.SeasonStore
	logger     *zap.Logger
}

// NewLeaderboardService builds a LeaderboardService.
func NewLeaderboardService(users db.UserStore, attendance db.AttendanceStore, seasons db.SeasonStore, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{
		users:      users,
		attendance: attendance,
		seasons:    seasons,
		logger:     logger,
	}
}

// LeaderboardEntry is one ranked row. Ranks start at 1.
type LeaderboardEntry struct {
	Rank            int
	UserID          model.UserID
	Name            string
	Role            model.UserRole
	TotalHours      float64
	CompletedShifts int
}

// UserStatistics are a single user's aggregate attendance numbers.
type UserStatistics struct {
	UserID           model.UserID
	TotalHours       float64
	CompletedShifts  int
	NoShows          int
	AvgHoursPerShift float64
	Rank             int // 0 when the user has no ranked activity
}

// GetLeaderboard lists every user and folds their attendance records into
// standings ordered by descending hours; ties keep user-list order. Users
// with no completed activity are omitted. A nil seasonID means all time.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, seasonID *model.SeasonID) ([]LeaderboardEntry, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	var season model.Season
	if seasonID != nil {
		season, err = s.seasons.GetSeason(ctx, *seasonID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch season: %w", err)
		}
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		records, err := s.attendance.GetAttendanceRecordsForUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch attendance for user %s: %w", user.ID, err)
		}
		if seasonID != nil {
			records = filterRecordsToWindow(records, season)
		}

		hours, completed, _ := summarizeRecords(records)
		if hours == 0 && completed == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:          user.ID,
			Name:            user.FullName(),
			Role:            user.Role,
			TotalHours:      hours,
			CompletedShifts: completed,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalHours > entries[j].TotalHours
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	s.logger.Debug("Built leaderboard", zap.Int("entries", len(entries)))

	return entries, nil
}

// GetUserStatistics computes one user's totals plus their leaderboard rank.
// A user absent from the leaderboard gets rank 0.
func (s *LeaderboardService) GetUserStatistics(ctx context.Context, userID model.UserID, seasonID *model.SeasonID) (UserStatistics, error) {
	records, err := s.attendance.GetAttendanceRecordsForUser(ctx, userID)
	if err != nil {
		return UserStatistics{}, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	// No-show totals stay season-agnostic: a volunteer who never arrived
	// has no check-in time to place the record in any season window.
	_, _, noShows := summarizeRecords(records)

	if seasonID != nil {
		season, err := s.seasons.GetSeason(ctx, *seasonID)
		if err != nil {
			return UserStatistics{}, fmt.Errorf("failed to fetch season: %w", err)
		}
		records = filterRecordsToWindow(records, season)
	}

	hours, completed, _ := summarizeRecords(records)

	stats := UserStatistics{
		UserID:          userID,
		TotalHours:      hours,
		CompletedShifts: completed,
		NoShows:         noShows,
	}
	if completed > 0 {
		stats.AvgHoursPerShift = hours / float64(completed)
	}

	entries, err := s.GetLeaderboard(ctx, seasonID)
	if err != nil {
		return UserStatistics{}, err
	}
	for _, entry := range entries {
		if entry.UserID == userID {
			stats.Rank = entry.Rank
			break
		}
	}

	return stats, nil
}
