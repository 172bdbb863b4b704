package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/core/staffing"
	"treelot/pkg/db"
)

// WeekStaffingUseCase produces the week-at-a-glance staffing overview.
// Committee only.
type WeekStaffingUseCase struct {
	shifts db.ShiftStore
	users  db.UserStore
	logger *zap.Logger
}

// NewWeekStaffingUseCase builds a WeekStaffingUseCase.
func NewWeekStaffingUseCase(shifts db.ShiftStore, users db.UserStore, logger *zap.Logger) *WeekStaffingUseCase {
	return &WeekStaffingUseCase{
		shifts: shifts,
		users:  users,
		logger: logger,
	}
}

// ShiftStaffing is one shift's staffing classification within the overview.
type ShiftStaffing struct {
	ShiftID         model.ShiftID
	Label           string
	StartTime       time.Time
	EndTime         time.Time
	Level           staffing.Level
	ScoutShortfall  int
	ParentShortfall int
}

// DayStaffing groups one calendar day's shifts with per-day level counts.
type DayStaffing struct {
	Date          time.Time
	Shifts        []ShiftStaffing
	CriticalCount int
	LowCount      int
	FullCount     int
}

// WeekStaffingResult covers seven days starting Sunday, with week-level
// counts accumulated over the same pass that builds the days.
type WeekStaffingResult struct {
	WeekStart     time.Time
	Days          []DayStaffing
	TotalShifts   int
	CriticalCount int
	LowCount      int
	FullCount     int
}

// GetWeekStaffing classifies every published shift in the week containing
// weekOf, grouped per calendar day. Weeks start on Sunday.
func (u *WeekStaffingUseCase) GetWeekStaffing(ctx context.Context, requesterID model.UserID, weekOf time.Time) (WeekStaffingResult, error) {
	if _, err := requireCommittee(ctx, u.users, requesterID); err != nil {
		return WeekStaffingResult{}, err
	}

	day := time.Date(weekOf.Year(), weekOf.Month(), weekOf.Day(), 0, 0, 0, 0, weekOf.Location())
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)

	shifts, err := u.shifts.GetShiftsForDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return WeekStaffingResult{}, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	result := WeekStaffingResult{WeekStart: weekStart}
	days := make(map[string]*DayStaffing, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		entry := &DayStaffing{Date: date}
		days[date.Format("2006-01-02")] = entry
	}

	for _, shift := range shifts {
		if shift.Status != model.ShiftPublished {
			continue
		}
		day, ok := days[shift.Date.Format("2006-01-02")]
		if !ok {
			continue
		}

		level := overallLevel(shift)
		day.Shifts = append(day.Shifts, ShiftStaffing{
			ShiftID:         shift.ID,
			Label:           shift.Label,
			StartTime:       shift.StartTime,
			EndTime:         shift.EndTime,
			Level:           level,
			ScoutShortfall:  staffing.Shortfall(shift.CurrentScouts, shift.RequiredScouts),
			ParentShortfall: staffing.Shortfall(shift.CurrentParents, shift.RequiredParents),
		})

		result.TotalShifts++
		switch level {
		case staffing.Critical:
			day.CriticalCount++
			result.CriticalCount++
		case staffing.Low:
			day.LowCount++
			result.LowCount++
		case staffing.Full:
			day.FullCount++
			result.FullCount++
		}
	}

	result.Days = make([]DayStaffing, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		day := days[date.Format("2006-01-02")]
		sort.SliceStable(day.Shifts, func(a, b int) bool {
			return day.Shifts[a].StartTime.Before(day.Shifts[b].StartTime)
		})
		result.Days = append(result.Days, *day)
	}

	u.logger.Debug("Computed week staffing",
		zap.Time("week_start", weekStart),
		zap.Int("total_shifts", result.TotalShifts))

	return result, nil
}
