package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"treelot/pkg/core/model"
)

// SignUpTx performs the signup guards, the assignment insert, and the
// counter increment inside a single transaction, locking the shift row so
// concurrent signups serialize on capacity. It enforces the same rules as
// the service-level signup path but without a compensation step.
func (d *DB) SignUpTx(ctx context.Context, shiftID model.ShiftID, userID model.UserID, role model.RoleType, notes string) (model.AssignmentID, error) {
	if !role.IsValid() {
		return "", model.NewInvalidInput(fmt.Sprintf("unknown role type %q", role))
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin signup transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1 FOR UPDATE`, shiftID)
	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrShiftNotFound
		}
		return "", fmt.Errorf("failed to lock shift: %w", err)
	}
	if !shift.Status.CanAcceptSignups() {
		return "", model.ErrShiftNotPublished
	}

	var activeCount int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM assignments
		WHERE shift_id = $1 AND user_id = $2 AND status IN ('pending', 'confirmed')
	`, shiftID, userID).Scan(&activeCount)
	if err != nil {
		return "", fmt.Errorf("failed to check existing assignments: %w", err)
	}
	if activeCount > 0 {
		return "", model.ErrAlreadyAssignedToShift
	}

	if shift.Current(role) >= shift.Required(role) {
		return "", model.ErrShiftFull
	}

	assignmentID := model.AssignmentID(uuid.New().String())
	_, err = tx.Exec(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
	`, assignmentID, shiftID, userID, role, model.AssignmentPending, notes, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to insert assignment: %w", err)
	}

	counter := counterColumn(role)
	if _, err := tx.Exec(ctx,
		`UPDATE shifts SET `+counter+` = `+counter+` + 1 WHERE id = $1`, shiftID); err != nil {
		return "", fmt.Errorf("failed to increment shift counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit signup: %w", err)
	}
	return assignmentID, nil
}

// CancelTx cancels an active assignment and decrements the owning shift's
// counter in one transaction. The decrement floors at zero.
func (d *DB) CancelTx(ctx context.Context, id model.AssignmentID, reason string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1 FOR UPDATE`, id)
	assignment, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to lock assignment: %w", err)
	}
	if !assignment.IsActive() {
		return model.ErrAssignmentNotActive
	}

	notes := assignment.Notes
	if reason != "" {
		notes = model.AppendNote(notes, "Cancelled: "+reason)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE assignments SET status = $2, notes = $3 WHERE id = $1`,
		id, model.AssignmentCancelled, notes); err != nil {
		return fmt.Errorf("failed to cancel assignment: %w", err)
	}

	counter := counterColumn(assignment.Role)
	if _, err := tx.Exec(ctx,
		`UPDATE shifts SET `+counter+` = GREATEST(0, `+counter+` - 1) WHERE id = $1`,
		assignment.ShiftID); err != nil {
		return fmt.Errorf("failed to decrement shift counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cancel: %w", err)
	}
	return nil
}

func counterColumn(role model.RoleType) string {
	if role == model.RoleScout {
		return "current_scouts"
	}
	return "current_parents"
}
