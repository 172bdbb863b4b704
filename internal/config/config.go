// Package config loads and validates the application configuration from
// treelot_config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const configFileName = "treelot_config.yaml"

// ScheduleOverride tweaks generated shifts on the dates its recurrence rule
// matches.
type ScheduleOverride struct {
	RRule           string `yaml:"rrule" validate:"required"`
	RequiredScouts  *int   `yaml:"requiredScouts,omitempty" validate:"omitempty,min=0"`
	RequiredParents *int   `yaml:"requiredParents,omitempty" validate:"omitempty,min=0"`
	Label           string `yaml:"label,omitempty"`
}

// ScoutBucks configures the scout-bucks report.
type ScoutBucks struct {
	BucksPerHour      float64 `yaml:"bucksPerHour" validate:"gt=0"`
	MinimumHours      float64 `yaml:"minimumHours" validate:"gte=0"`
	IncludeIneligible bool    `yaml:"includeIneligible"`
}

// Config represents the application configuration
type Config struct {
	AlertLookaheadDays     int                `yaml:"alertLookaheadDays" validate:"required,min=1"`
	ScoutBucks             ScoutBucks         `yaml:"scoutBucks"`
	MaxPhotoSizeBytes      int64              `yaml:"maxPhotoSizeBytes" validate:"omitempty,min=1"`
	AllowedPhotoExtensions []string           `yaml:"allowedPhotoExtensions,omitempty"`
	DatabaseURL            string             `yaml:"databaseURL,omitempty"`
	ScheduleOverrides      []ScheduleOverride `yaml:"scheduleOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from treelot_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax of
// the schedule overrides.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.ScheduleOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in scheduleOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.MaxPhotoSizeBytes == 0 {
		cfg.MaxPhotoSizeBytes = 10 * 1024 * 1024
	}
	if len(cfg.AllowedPhotoExtensions) == 0 {
		cfg.AllowedPhotoExtensions = []string{"jpg", "jpeg", "png"}
	}
	if cfg.ScoutBucks.BucksPerHour == 0 {
		cfg.ScoutBucks.BucksPerHour = 1.0
	}
}

// findConfigFile searches for treelot_config.yaml in the current directory
// and the home directory.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
