package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	scouts := 6
	cfg := &Config{
		AlertLookaheadDays: 7,
		ScoutBucks: ScoutBucks{
			BucksPerHour: 2.0,
			MinimumHours: 5.0,
		},
		MaxPhotoSizeBytes:      10 * 1024 * 1024,
		AllowedPhotoExtensions: []string{"jpg", "jpeg", "png"},
		ScheduleOverrides: []ScheduleOverride{
			{
				RRule:          "FREQ=WEEKLY;BYDAY=SA,SU",
				RequiredScouts: &scouts,
				Label:          "Weekend rush",
			},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingLookahead(t *testing.T) {
	cfg := &Config{
		ScoutBucks: ScoutBucks{BucksPerHour: 1.0},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		AlertLookaheadDays: 7,
		ScoutBucks:         ScoutBucks{BucksPerHour: 1.0},
		ScheduleOverrides: []ScheduleOverride{
			{RRule: "NOT_AN_RRULE"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	content := `
alertLookaheadDays: 14
scoutBucks:
  bucksPerHour: 2.5
  minimumHours: 4
  includeIneligible: true
databaseURL: postgres://localhost/treelot
scheduleOverrides:
  - rrule: FREQ=WEEKLY;BYDAY=SA
    requiredParents: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.AlertLookaheadDays)
	assert.Equal(t, 2.5, cfg.ScoutBucks.BucksPerHour)
	assert.Equal(t, 4.0, cfg.ScoutBucks.MinimumHours)
	assert.True(t, cfg.ScoutBucks.IncludeIneligible)
	assert.Equal(t, "postgres://localhost/treelot", cfg.DatabaseURL)
	require.Len(t, cfg.ScheduleOverrides, 1)
	require.NotNil(t, cfg.ScheduleOverrides[0].RequiredParents)
	assert.Equal(t, 3, *cfg.ScheduleOverrides[0].RequiredParents)
}

func TestLoadFromPath_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte("alertLookaheadDays: 7\n"), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, int64(10*1024*1024), cfg.MaxPhotoSizeBytes)
	assert.Equal(t, []string{"jpg", "jpeg", "png"}, cfg.AllowedPhotoExtensions)
	assert.Equal(t, 1.0, cfg.ScoutBucks.BucksPerHour)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte("alertLookaheadDays: [not an int"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
