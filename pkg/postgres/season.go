package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"treelot/pkg/core/model"
)

const seasonColumns = `id, name, year, start_date, end_date, status, created_at, updated_at`

func scanSeason(row pgx.Row) (model.Season, error) {
	var s model.Season
	err := row.Scan(&s.ID, &s.Name, &s.Year, &s.StartDate, &s.EndDate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Season{}, err
	}
	return s, nil
}

// GetSeason retrieves a single season by ID.
func (d *DB) GetSeason(ctx context.Context, id model.SeasonID) (model.Season, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+seasonColumns+` FROM seasons WHERE id = $1`, id)
	season, err := scanSeason(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Season{}, model.ErrSeasonNotFound
		}
		return model.Season{}, fmt.Errorf("failed to query season: %w", err)
	}
	return season, nil
}

// GetActiveSeason retrieves the season currently in the active state.
func (d *DB) GetActiveSeason(ctx context.Context) (model.Season, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT `+seasonColumns+` FROM seasons WHERE status = $1 ORDER BY start_date DESC LIMIT 1`,
		model.SeasonActive)
	season, err := scanSeason(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Season{}, model.ErrSeasonNotFound
		}
		return model.Season{}, fmt.Errorf("failed to query active season: %w", err)
	}
	return season, nil
}

// ListSeasons retrieves every season, newest first.
func (d *DB) ListSeasons(ctx context.Context) ([]model.Season, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+seasonColumns+` FROM seasons ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []model.Season
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seasons: %w", err)
	}
	return seasons, nil
}

// CreateSeason inserts a new season.
func (d *DB) CreateSeason(ctx context.Context, s model.Season) (model.SeasonID, error) {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO seasons (`+seasonColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.Name, s.Year, s.StartDate, s.EndDate, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert season: %w", err)
	}
	return s.ID, nil
}

// UpdateSeason replaces a season's mutable fields.
func (d *DB) UpdateSeason(ctx context.Context, s model.Season) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE seasons SET name = $2, year = $3, start_date = $4, end_date = $5, status = $6, updated_at = $7
		WHERE id = $1
	`, s.ID, s.Name, s.Year, s.StartDate, s.EndDate, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSeasonNotFound
	}
	return nil
}

const templateColumns = `id, name, start_time, end_time, required_scouts, required_parents,
	location, label, notes, is_active, created_at, updated_at`

func scanTemplate(row pgx.Row) (model.ShiftTemplate, error) {
	var t model.ShiftTemplate
	err := row.Scan(&t.ID, &t.Name, &t.StartTime, &t.EndTime, &t.RequiredScouts, &t.RequiredParents,
		&t.Location, &t.Label, &t.Notes, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.ShiftTemplate{}, err
	}
	return t, nil
}

// GetTemplate retrieves a single shift template by ID.
func (d *DB) GetTemplate(ctx context.Context, id model.TemplateID) (model.ShiftTemplate, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM shift_templates WHERE id = $1`, id)
	template, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ShiftTemplate{}, model.ErrTemplateNotFound
		}
		return model.ShiftTemplate{}, fmt.Errorf("failed to query template: %w", err)
	}
	return template, nil
}

// ListTemplates retrieves every shift template, ordered by name.
func (d *DB) ListTemplates(ctx context.Context) ([]model.ShiftTemplate, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+templateColumns+` FROM shift_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []model.ShiftTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}
	return templates, nil
}

// CreateTemplate inserts a new shift template.
func (d *DB) CreateTemplate(ctx context.Context, t model.ShiftTemplate) (model.TemplateID, error) {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift_templates (`+templateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, t.ID, t.Name, t.StartTime, t.EndTime, t.RequiredScouts, t.RequiredParents,
		t.Location, t.Label, t.Notes, t.IsActive, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert template: %w", err)
	}
	return t.ID, nil
}

// UpdateTemplate replaces a shift template's mutable fields.
func (d *DB) UpdateTemplate(ctx context.Context, t model.ShiftTemplate) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift_templates SET name = $2, start_time = $3, end_time = $4, required_scouts = $5,
			required_parents = $6, location = $7, label = $8, notes = $9, is_active = $10, updated_at = $11
		WHERE id = $1
	`, t.ID, t.Name, t.StartTime, t.EndTime, t.RequiredScouts, t.RequiredParents,
		t.Location, t.Label, t.Notes, t.IsActive, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTemplateNotFound
	}
	return nil
}
