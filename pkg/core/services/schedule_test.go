package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treelot/internal/config"
	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

func testSeason() model.Season {
	return model.Season{
		ID:        "season-2025",
		Name:      "2025 Tree Lot",
		Year:      2025,
		StartDate: time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
		Status:    model.SeasonDraft,
	}
}

func testTemplate(id model.TemplateID, active bool) model.ShiftTemplate {
	return model.ShiftTemplate{
		ID:              id,
		Name:            "Morning",
		StartTime:       time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC),
		RequiredScouts:  4,
		RequiredParents: 2,
		Location:        "Main lot",
		Label:           "Morning",
		IsActive:        active,
	}
}

func newScheduleFixture(t *testing.T, overrides []config.ScheduleOverride, templates ...model.ShiftTemplate) (*ScheduleService, *db.MemoryShiftStore, *db.MemorySeasonStore) {
	t.Helper()
	shifts := db.NewMemoryShiftStore()
	seasons := db.NewMemorySeasonStore(testSeason())
	svc := NewScheduleService(shifts, db.NewMemoryTemplateStore(templates...), seasons, overrides, zap.NewNop())
	return svc, shifts, seasons
}

func TestGenerateSchedule_WeekendsOnly(t *testing.T) {
	ctx := context.Background()
	svc, shifts, _ := newScheduleFixture(t, nil, testTemplate("tmpl-1", true))

	// 2025-12-01 is a Monday; the week holds exactly one Saturday (06) and
	// one Sunday (07).
	ids, err := svc.GenerateSchedule(ctx, GenerateScheduleRequest{
		SeasonID:    "season-2025",
		StartDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC),
		TemplateIDs: []model.TemplateID{"tmpl-1"},
		DaysOfWeek:  []time.Weekday{time.Saturday, time.Sunday},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	for _, id := range ids {
		shift, err := shifts.GetShift(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.ShiftDraft, shift.Status)
		assert.Contains(t, []time.Weekday{time.Saturday, time.Sunday}, shift.Date.Weekday())
		assert.Equal(t, 9, shift.StartTime.Hour())
		assert.Equal(t, 13, shift.EndTime.Hour())
		assert.Equal(t, 4, shift.RequiredScouts)
		assert.Equal(t, "Main lot", shift.Location)
		assert.Equal(t, model.SeasonID("season-2025"), shift.SeasonID)
		assert.Equal(t, model.TemplateID("tmpl-1"), shift.TemplateID)
	}
}

func TestGenerateSchedule_SkipsExcludedDates(t *testing.T) {
	ctx := context.Background()
	svc, shifts, _ := newScheduleFixture(t, nil, testTemplate("tmpl-1", true))

	ids, err := svc.GenerateSchedule(ctx, GenerateScheduleRequest{
		SeasonID:      "season-2025",
		StartDate:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC),
		TemplateIDs:   []model.TemplateID{"tmpl-1"},
		DaysOfWeek:    []time.Weekday{time.Saturday, time.Sunday},
		ExcludedDates: []time.Time{time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	shift, err := shifts.GetShift(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, shift.Date.Weekday())
}

func TestGenerateSchedule_InactiveTemplateSkipped(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newScheduleFixture(t, nil, testTemplate("tmpl-1", false))

	ids, err := svc.GenerateSchedule(ctx, GenerateScheduleRequest{
		SeasonID:    "season-2025",
		StartDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC),
		TemplateIDs: []model.TemplateID{"tmpl-1"},
		DaysOfWeek:  []time.Weekday{time.Saturday},
	})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGenerateSchedule_OverrideAppliesOnMatchedDates(t *testing.T) {
	ctx := context.Background()
	scouts := 8
	overrides := []config.ScheduleOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SA", RequiredScouts: &scouts, Label: "Weekend rush"},
	}
	svc, shifts, _ := newScheduleFixture(t, overrides, testTemplate("tmpl-1", true))

	ids, err := svc.GenerateSchedule(ctx, GenerateScheduleRequest{
		SeasonID:    "season-2025",
		StartDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC),
		TemplateIDs: []model.TemplateID{"tmpl-1"},
		DaysOfWeek:  []time.Weekday{time.Saturday, time.Sunday},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	for _, id := range ids {
		shift, err := shifts.GetShift(ctx, id)
		require.NoError(t, err)
		if shift.Date.Weekday() == time.Saturday {
			assert.Equal(t, 8, shift.RequiredScouts)
			assert.Equal(t, "Weekend rush", shift.Label)
		} else {
			assert.Equal(t, 4, shift.RequiredScouts)
			assert.Equal(t, "Morning", shift.Label)
		}
	}
}

func TestGenerateSchedule_InvalidRange(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newScheduleFixture(t, nil, testTemplate("tmpl-1", true))

	_, err := svc.GenerateSchedule(ctx, GenerateScheduleRequest{
		SeasonID:    "season-2025",
		StartDate:   time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		TemplateIDs: []model.TemplateID{"tmpl-1"},
		DaysOfWeek:  []time.Weekday{time.Saturday},
	})
	assert.True(t, model.IsInvalidInput(err))
}

func TestPublishSchedule_FlipsDraftsAndActivatesSeason(t *testing.T) {
	ctx := context.Background()
	svc, shifts, seasons := newScheduleFixture(t, nil, testTemplate("tmpl-1", true))

	ids, err := svc.GenerateSchedule(ctx, GenerateScheduleRequest{
		SeasonID:    "season-2025",
		StartDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC),
		TemplateIDs: []model.TemplateID{"tmpl-1"},
		DaysOfWeek:  []time.Weekday{time.Saturday, time.Sunday},
	})
	require.NoError(t, err)

	// One shift is already cancelled; publish must leave it alone.
	cancelled, err := shifts.GetShift(ctx, ids[0])
	require.NoError(t, err)
	require.NoError(t, shifts.UpdateShift(ctx, cancelled.WithStatus(model.ShiftCancelled)))

	require.NoError(t, svc.PublishSchedule(ctx, "season-2025", ids))

	first, err := shifts.GetShift(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.ShiftCancelled, first.Status)

	second, err := shifts.GetShift(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, model.ShiftPublished, second.Status)

	season, err := seasons.GetSeason(ctx, "season-2025")
	require.NoError(t, err)
	assert.Equal(t, model.SeasonActive, season.Status)
}
