package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"treelot/pkg/core/model"
)

const shiftColumns = `id, date, start_time, end_time, required_scouts, required_parents,
	current_scouts, current_parents, location, label, notes, status, season_id, template_id, created_at`

func scanShift(row pgx.Row) (model.Shift, error) {
	var s model.Shift
	var seasonID, templateID *string
	err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.RequiredScouts, &s.RequiredParents,
		&s.CurrentScouts, &s.CurrentParents, &s.Location, &s.Label, &s.Notes, &s.Status, &seasonID, &templateID, &s.CreatedAt)
	if err != nil {
		return model.Shift{}, err
	}
	if seasonID != nil {
		s.SeasonID = model.SeasonID(*seasonID)
	}
	if templateID != nil {
		s.TemplateID = model.TemplateID(*templateID)
	}
	return s, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetShift retrieves a single shift by ID.
func (d *DB) GetShift(ctx context.Context, id model.ShiftID) (model.Shift, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)
	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Shift{}, model.ErrShiftNotFound
		}
		return model.Shift{}, fmt.Errorf("failed to query shift: %w", err)
	}
	return shift, nil
}

// GetShiftsForDateRange retrieves shifts dated between start and end inclusive.
func (d *DB) GetShiftsForDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE date >= $1 AND date <= $2 ORDER BY date, start_time`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

// GetShiftsForSeason retrieves all shifts linked to the season.
func (d *DB) GetShiftsForSeason(ctx context.Context, seasonID model.SeasonID) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE season_id = $1 ORDER BY date, start_time`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query season shifts: %w", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]model.Shift, error) {
	var shifts []model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}

// CreateShift inserts a new shift.
func (d *DB) CreateShift(ctx context.Context, shift model.Shift) (model.ShiftID, error) {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shifts (`+shiftColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, shift.ID, shift.Date, shift.StartTime, shift.EndTime, shift.RequiredScouts, shift.RequiredParents,
		shift.CurrentScouts, shift.CurrentParents, shift.Location, shift.Label, shift.Notes, shift.Status,
		nullableString(string(shift.SeasonID)), nullableString(string(shift.TemplateID)), shift.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert shift: %w", err)
	}
	return shift.ID, nil
}

// UpdateShift replaces a shift's mutable fields.
func (d *DB) UpdateShift(ctx context.Context, shift model.Shift) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shifts SET date = $2, start_time = $3, end_time = $4, required_scouts = $5,
			required_parents = $6, current_scouts = $7, current_parents = $8, location = $9,
			label = $10, notes = $11, status = $12, season_id = $13, template_id = $14
		WHERE id = $1
	`, shift.ID, shift.Date, shift.StartTime, shift.EndTime, shift.RequiredScouts, shift.RequiredParents,
		shift.CurrentScouts, shift.CurrentParents, shift.Location, shift.Label, shift.Notes, shift.Status,
		nullableString(string(shift.SeasonID)), nullableString(string(shift.TemplateID)))
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShiftNotFound
	}
	return nil
}

// DeleteShift removes a shift.
func (d *DB) DeleteShift(ctx context.Context, id model.ShiftID) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShiftNotFound
	}
	return nil
}

// ObserveShift emits the current snapshot and closes. A push-based backend
// would keep the subscription live.
func (d *DB) ObserveShift(ctx context.Context, id model.ShiftID) <-chan model.Shift {
	ch := make(chan model.Shift, 1)
	if shift, err := d.GetShift(ctx, id); err == nil {
		ch <- shift
	}
	close(ch)
	return ch
}
