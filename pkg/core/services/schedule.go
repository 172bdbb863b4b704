package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"treelot/internal/config"
	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

// ScheduleService generates draft shifts from templates over a date range
// and publishes them when the committee is ready.
type ScheduleService struct {
	shifts    db.ShiftStore
	templates db.TemplateStore
	seasons   db.SeasonStore
	overrides []config.ScheduleOverride
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService builds a ScheduleService. overrides may be nil.
func NewScheduleService(shifts db.ShiftStore, templates db.TemplateStore, seasons db.SeasonStore, overrides []config.ScheduleOverride, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		shifts:    shifts,
		templates: templates,
		seasons:   seasons,
		overrides: overrides,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateScheduleRequest describes a bulk shift generation run.
type GenerateScheduleRequest struct {
	SeasonID      model.SeasonID
	StartDate     time.Time
	EndDate       time.Time
	TemplateIDs   []model.TemplateID
	DaysOfWeek    []time.Weekday
	ExcludedDates []time.Time
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

const dateLayout = "2006-01-02"

// GenerateSchedule expands the date range and requested weekdays into
// concrete dates with a recurrence rule, then creates one draft shift per
// date per active template. Inactive templates and excluded dates are
// skipped. Returns the identities of the created shifts.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, req GenerateScheduleRequest) ([]model.ShiftID, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, model.NewInvalidInput("end date cannot be before start date")
	}
	if len(req.DaysOfWeek) == 0 {
		return nil, model.NewInvalidInput("at least one day of week is required")
	}
	if len(req.TemplateIDs) == 0 {
		return nil, model.NewInvalidInput("at least one template is required")
	}

	season, err := s.seasons.GetSeason(ctx, req.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season: %w", err)
	}

	byWeekday := make([]rrule.Weekday, 0, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		byWeekday = append(byWeekday, rruleWeekdays[d])
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   req.StartDate,
		Until:     req.EndDate,
		Byweekday: byWeekday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	excluded := make(map[string]bool, len(req.ExcludedDates))
	for _, d := range req.ExcludedDates {
		excluded[d.Format(dateLayout)] = true
	}

	overridesByDate, err := s.matchOverrides(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var created []model.ShiftID
	for _, date := range rule.All() {
		dateKey := date.Format(dateLayout)
		if excluded[dateKey] {
			continue
		}

		for _, templateID := range req.TemplateIDs {
			template, err := s.templates.GetTemplate(ctx, templateID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch template: %w", err)
			}
			if !template.IsActive {
				continue
			}

			shift := shiftFromTemplate(template, date, season.ID, s.now())
			if override, ok := overridesByDate[dateKey]; ok {
				applyOverride(&shift, override)
			}

			id, err := s.shifts.CreateShift(ctx, shift)
			if err != nil {
				return nil, fmt.Errorf("failed to create shift for %s: %w", dateKey, err)
			}
			created = append(created, id)
		}
	}

	s.logger.Info("Generated schedule",
		zap.String("season_id", req.SeasonID.String()),
		zap.Int("shift_count", len(created)))

	return created, nil
}

// PublishSchedule flips draft shifts to published and activates the season.
// Shifts already past draft are left untouched.
func (s *ScheduleService) PublishSchedule(ctx context.Context, seasonID model.SeasonID, shiftIDs []model.ShiftID) error {
	season, err := s.seasons.GetSeason(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("failed to fetch season: %w", err)
	}

	published := 0
	for _, id := range shiftIDs {
		shift, err := s.shifts.GetShift(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch shift: %w", err)
		}
		if shift.Status != model.ShiftDraft {
			continue
		}
		if err := s.shifts.UpdateShift(ctx, shift.WithStatus(model.ShiftPublished)); err != nil {
			return fmt.Errorf("failed to publish shift %s: %w", id, err)
		}
		published++
	}

	if season.Status != model.SeasonActive {
		season.Status = model.SeasonActive
		season.UpdatedAt = s.now()
		if err := s.seasons.UpdateSeason(ctx, season); err != nil {
			return fmt.Errorf("failed to activate season: %w", err)
		}
	}

	s.logger.Info("Published schedule",
		zap.String("season_id", seasonID.String()),
		zap.Int("published", published))

	return nil
}

// matchOverrides expands each configured override rule across the range and
// returns the override that applies per date. Later overrides win on
// overlapping dates.
func (s *ScheduleService) matchOverrides(start, end time.Time) (map[string]config.ScheduleOverride, error) {
	matched := make(map[string]config.ScheduleOverride)
	for i, override := range s.overrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse override rrule %d: %w", i, err)
		}
		// Small buffer around the range so rules anchored off-range still
		// produce their in-range occurrences.
		searchStart := start.AddDate(0, 0, -7)
		rule.DTStart(searchStart)
		for _, occurrence := range rule.Between(searchStart, end.AddDate(0, 0, 7), true) {
			key := occurrence.Format(dateLayout)
			if !occurrence.Before(start) && !occurrence.After(end.AddDate(0, 0, 1)) {
				matched[key] = override
			}
		}
	}
	return matched, nil
}

// shiftFromTemplate builds a draft shift on the given date carrying the
// template's time of day, capacities, and location.
func shiftFromTemplate(template model.ShiftTemplate, date time.Time, seasonID model.SeasonID, createdAt time.Time) model.Shift {
	start := time.Date(date.Year(), date.Month(), date.Day(),
		template.StartTime.Hour(), template.StartTime.Minute(), 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(),
		template.EndTime.Hour(), template.EndTime.Minute(), 0, 0, date.Location())

	return model.Shift{
		ID:              model.ShiftID(uuid.New().String()),
		Date:            time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		StartTime:       start,
		EndTime:         end,
		RequiredScouts:  template.RequiredScouts,
		RequiredParents: template.RequiredParents,
		Location:        template.Location,
		Label:           template.Label,
		Notes:           template.Notes,
		Status:          model.ShiftDraft,
		SeasonID:        seasonID,
		TemplateID:      template.ID,
		CreatedAt:       createdAt,
	}
}

func applyOverride(shift *model.Shift, override config.ScheduleOverride) {
	if override.RequiredScouts != nil {
		shift.RequiredScouts = *override.RequiredScouts
	}
	if override.RequiredParents != nil {
		shift.RequiredParents = *override.RequiredParents
	}
	if override.Label != "" {
		shift.Label = override.Label
	}
}
