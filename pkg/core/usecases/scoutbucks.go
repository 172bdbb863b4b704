package usecases

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"treelot/internal/config"
	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

// ScoutBucksUseCase generates the scout-bucks payout report: hours worked
// converted to bucks for scouts that clear the minimum-hours bar.
// Committee only.
type ScoutBucksUseCase struct {
	users      db.UserStore
	attendance db.AttendanceStore
	seasons    db.SeasonStore
	params     config.ScoutBucks
	logger     *zap.Logger
}

// NewScoutBucksUseCase builds a ScoutBucksUseCase.
func NewScoutBucksUseCase(users db.UserStore, attendance db.AttendanceStore, seasons db.SeasonStore, params config.ScoutBucks, logger *zap.Logger) *ScoutBucksUseCase {
	return &ScoutBucksUseCase{
		users:      users,
		attendance: attendance,
		seasons:    seasons,
		params:     params,
		logger:     logger,
	}
}

// ScoutBucksRow is one scout's line in the report.
type ScoutBucksRow struct {
	UserID   model.UserID
	Name     string
	Hours    float64
	Bucks    float64
	Eligible bool
}

// GenerateScoutBucksReport computes bucks as hours times the configured
// rate for every scout whose hours meet the minimum. Ineligible scouts
// appear only when the report is configured to include them. Rows are
// ordered by descending hours. A nil seasonID means all time.
func (u *ScoutBucksUseCase) GenerateScoutBucksReport(ctx context.Context, requesterID model.UserID, seasonID *model.SeasonID) ([]ScoutBucksRow, error) {
	if _, err := requireCommittee(ctx, u.users, requesterID); err != nil {
		return nil, err
	}

	var season model.Season
	if seasonID != nil {
		var err error
		season, err = u.seasons.GetSeason(ctx, *seasonID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch season: %w", err)
		}
	}

	scouts, err := u.users.GetUsersByRole(ctx, model.UserScout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scouts: %w", err)
	}
	sort.Slice(scouts, func(i, j int) bool { return scouts[i].ID < scouts[j].ID })

	rows := make([]ScoutBucksRow, 0, len(scouts))
	for _, scout := range scouts {
		records, err := u.attendance.GetAttendanceRecordsForUser(ctx, scout.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch attendance for scout %s: %w", scout.ID, err)
		}
		if seasonID != nil {
			records = recordsInWindow(records, season)
		}

		var hours float64
		for _, r := range records {
			if r.Status == model.AttendanceCheckedOut && r.HoursWorked != nil {
				hours += *r.HoursWorked
			}
		}

		eligible := hours >= u.params.MinimumHours
		if !eligible && !u.params.IncludeIneligible {
			continue
		}

		row := ScoutBucksRow{
			UserID:   scout.ID,
			Name:     scout.FullName(),
			Hours:    hours,
			Eligible: eligible,
		}
		if eligible {
			row.Bucks = hours * u.params.BucksPerHour
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Hours > rows[j].Hours })

	u.logger.Info("Generated scout bucks report",
		zap.Int("rows", len(rows)),
		zap.Float64("bucks_per_hour", u.params.BucksPerHour))

	return rows, nil
}
