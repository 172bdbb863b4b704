package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"treelot/pkg/core/model"
)

const assignmentColumns = `id, shift_id, user_id, role, status, notes, assigned_at, assigned_by`

func scanAssignment(row pgx.Row) (model.Assignment, error) {
	var a model.Assignment
	var assignedBy *string
	err := row.Scan(&a.ID, &a.ShiftID, &a.UserID, &a.Role, &a.Status, &a.Notes, &a.AssignedAt, &assignedBy)
	if err != nil {
		return model.Assignment{}, err
	}
	if assignedBy != nil {
		a.AssignedBy = model.UserID(*assignedBy)
	}
	return a, nil
}

// GetAssignment retrieves a single assignment by ID.
func (d *DB) GetAssignment(ctx context.Context, id model.AssignmentID) (model.Assignment, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id)
	assignment, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Assignment{}, model.ErrAssignmentNotFound
		}
		return model.Assignment{}, fmt.Errorf("failed to query assignment: %w", err)
	}
	return assignment, nil
}

// GetAssignmentsForShift retrieves all assignments on a shift.
func (d *DB) GetAssignmentsForShift(ctx context.Context, shiftID model.ShiftID) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE shift_id = $1`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// GetAssignmentsForUser retrieves all of a user's assignments.
func (d *DB) GetAssignmentsForUser(ctx context.Context, userID model.UserID) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user assignments: %w", err)
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// GetAssignmentsForUserInDateRange retrieves a user's assignments whose
// shift falls between start and end inclusive.
func (d *DB) GetAssignmentsForUserInDateRange(ctx context.Context, userID model.UserID, start, end time.Time) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.id, a.shift_id, a.user_id, a.role, a.status, a.notes, a.assigned_at, a.assigned_by
		FROM assignments a
		JOIN shifts s ON s.id = a.shift_id
		WHERE a.user_id = $1 AND s.date >= $2 AND s.date <= $3
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query user assignments in range: %w", err)
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func collectAssignments(rows pgx.Rows) ([]model.Assignment, error) {
	var assignments []model.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}

// CreateAssignment inserts a new assignment.
func (d *DB) CreateAssignment(ctx context.Context, a model.Assignment) (model.AssignmentID, error) {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.ShiftID, a.UserID, a.Role, a.Status, a.Notes, a.AssignedAt, nullableString(string(a.AssignedBy)))
	if err != nil {
		return "", fmt.Errorf("failed to insert assignment: %w", err)
	}
	return a.ID, nil
}

// UpdateAssignment replaces an assignment's mutable fields.
func (d *DB) UpdateAssignment(ctx context.Context, a model.Assignment) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE assignments SET shift_id = $2, user_id = $3, role = $4, status = $5, notes = $6
		WHERE id = $1
	`, a.ID, a.ShiftID, a.UserID, a.Role, a.Status, a.Notes)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAssignmentNotFound
	}
	return nil
}

// DeleteAssignment removes an assignment.
func (d *DB) DeleteAssignment(ctx context.Context, id model.AssignmentID) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAssignmentNotFound
	}
	return nil
}

// ObserveAssignmentsForShift emits the current snapshot and closes.
func (d *DB) ObserveAssignmentsForShift(ctx context.Context, shiftID model.ShiftID) <-chan []model.Assignment {
	ch := make(chan []model.Assignment, 1)
	if assignments, err := d.GetAssignmentsForShift(ctx, shiftID); err == nil {
		ch <- assignments
	}
	close(ch)
	return ch
}
