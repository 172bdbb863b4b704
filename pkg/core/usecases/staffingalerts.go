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

// StaffingAlertsUseCase surfaces understaffed published shifts inside the
// configured lookahead window. Committee only.
type StaffingAlertsUseCase struct {
	shifts        db.ShiftStore
	users         db.UserStore
	lookaheadDays int
	logger        *zap.Logger
	now           func() time.Time
}

// NewStaffingAlertsUseCase builds a StaffingAlertsUseCase.
func NewStaffingAlertsUseCase(shifts db.ShiftStore, users db.UserStore, lookaheadDays int, logger *zap.Logger) *StaffingAlertsUseCase {
	return &StaffingAlertsUseCase{
		shifts:        shifts,
		users:         users,
		lookaheadDays: lookaheadDays,
		logger:        logger,
		now:           time.Now,
	}
}

// StaffingAlert is one understaffed shift with its open-slot breakdown.
type StaffingAlert struct {
	ShiftID         model.ShiftID
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	Label           string
	Location        string
	Level           staffing.Level
	ScoutShortfall  int
	ParentShortfall int
	TotalOpenSlots  int
	DaysUntilShift  int
}

// StaffingAlertsResult buckets alerts by severity. Shifts at ok or full are
// excluded entirely.
type StaffingAlertsResult struct {
	Critical []StaffingAlert
	Low      []StaffingAlert
}

// GetStaffingAlerts classifies every published shift between today and the
// lookahead horizon and returns the critical and low buckets, each sorted
// by days until the shift.
func (u *StaffingAlertsUseCase) GetStaffingAlerts(ctx context.Context, requesterID model.UserID) (StaffingAlertsResult, error) {
	if _, err := requireCommittee(ctx, u.users, requesterID); err != nil {
		return StaffingAlertsResult{}, err
	}

	now := u.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := today.AddDate(0, 0, u.lookaheadDays)

	shifts, err := u.shifts.GetShiftsForDateRange(ctx, today, horizon)
	if err != nil {
		return StaffingAlertsResult{}, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	var result StaffingAlertsResult
	for _, shift := range shifts {
		// Drafts never surface as alerts.
		if shift.Status != model.ShiftPublished {
			continue
		}

		level := overallLevel(shift)
		if level >= staffing.OK {
			continue
		}

		alert := buildAlert(shift, level, today)
		if level == staffing.Critical {
			result.Critical = append(result.Critical, alert)
		} else {
			result.Low = append(result.Low, alert)
		}
	}

	sortAlerts(result.Critical)
	sortAlerts(result.Low)

	u.logger.Debug("Computed staffing alerts",
		zap.Int("critical", len(result.Critical)),
		zap.Int("low", len(result.Low)))

	return result, nil
}

func overallLevel(shift model.Shift) staffing.Level {
	return staffing.Overall(
		staffing.Calculate(shift.CurrentScouts, shift.RequiredScouts),
		staffing.Calculate(shift.CurrentParents, shift.RequiredParents),
	)
}

func buildAlert(shift model.Shift, level staffing.Level, today time.Time) StaffingAlert {
	scoutShort := staffing.Shortfall(shift.CurrentScouts, shift.RequiredScouts)
	parentShort := staffing.Shortfall(shift.CurrentParents, shift.RequiredParents)
	return StaffingAlert{
		ShiftID:         shift.ID,
		Date:            shift.Date,
		StartTime:       shift.StartTime,
		EndTime:         shift.EndTime,
		Label:           shift.Label,
		Location:        shift.Location,
		Level:           level,
		ScoutShortfall:  scoutShort,
		ParentShortfall: parentShort,
		TotalOpenSlots:  scoutShort + parentShort,
		DaysUntilShift:  int(shift.Date.Sub(today).Hours() / 24),
	}
}

func sortAlerts(alerts []StaffingAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysUntilShift < alerts[j].DaysUntilShift
	})
}
