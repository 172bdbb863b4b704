package model

import "time"

// Season is one fundraising campaign, typically a calendar year's tree lot.
type Season struct {
	ID        SeasonID
	Name      string
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Status    SeasonStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether t falls inside the season's date window.
func (s Season) Contains(t time.Time) bool {
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}

// ShiftTemplate holds predefined settings for bulk shift creation. Only the
// time of day of StartTime/EndTime is applied to generated shifts.
type ShiftTemplate struct {
	ID              TemplateID
	Name            string
	StartTime       time.Time
	EndTime         time.Time
	RequiredScouts  int
	RequiredParents int
	Location        string
	Label           string
	Notes           string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
