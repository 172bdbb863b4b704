package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"treelot/pkg/core/model"
)

const attendanceColumns = `id, assignment_id, shift_id, user_id, check_in_time, check_out_time,
	method, check_in_latitude, check_in_longitude, hours_worked, status, notes`

func scanAttendanceRecord(row pgx.Row) (model.AttendanceRecord, error) {
	var r model.AttendanceRecord
	var lat, lng *float64
	err := row.Scan(&r.ID, &r.AssignmentID, &r.ShiftID, &r.UserID, &r.CheckInTime, &r.CheckOutTime,
		&r.Method, &lat, &lng, &r.HoursWorked, &r.Status, &r.Notes)
	if err != nil {
		return model.AttendanceRecord{}, err
	}
	if lat != nil && lng != nil {
		r.CheckInLocation = &model.GeoLocation{Latitude: *lat, Longitude: *lng}
	}
	return r, nil
}

func locationColumns(loc *model.GeoLocation) (lat, lng *float64) {
	if loc == nil {
		return nil, nil
	}
	return &loc.Latitude, &loc.Longitude
}

// GetAttendanceRecord retrieves a single attendance record by ID.
func (d *DB) GetAttendanceRecord(ctx context.Context, id model.AttendanceRecordID) (model.AttendanceRecord, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE id = $1`, id)
	record, err := scanAttendanceRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AttendanceRecord{}, model.ErrAttendanceRecordNotFound
		}
		return model.AttendanceRecord{}, fmt.Errorf("failed to query attendance record: %w", err)
	}
	return record, nil
}

// GetAttendanceRecordByAssignment retrieves the record for an assignment.
// At most one exists; absence returns ErrAttendanceRecordNotFound.
func (d *DB) GetAttendanceRecordByAssignment(ctx context.Context, assignmentID model.AssignmentID) (model.AttendanceRecord, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records WHERE assignment_id = $1`, assignmentID)
	record, err := scanAttendanceRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AttendanceRecord{}, model.ErrAttendanceRecordNotFound
		}
		return model.AttendanceRecord{}, fmt.Errorf("failed to query attendance record: %w", err)
	}
	return record, nil
}

// GetAttendanceRecordsForShift retrieves all records on a shift.
func (d *DB) GetAttendanceRecordsForShift(ctx context.Context, shiftID model.ShiftID) ([]model.AttendanceRecord, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records WHERE shift_id = $1`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift attendance: %w", err)
	}
	defer rows.Close()
	return collectAttendanceRecords(rows)
}

// GetAttendanceRecordsForUser retrieves all of a user's records.
func (d *DB) GetAttendanceRecordsForUser(ctx context.Context, userID model.UserID) ([]model.AttendanceRecord, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user attendance: %w", err)
	}
	defer rows.Close()
	return collectAttendanceRecords(rows)
}

func collectAttendanceRecords(rows pgx.Rows) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	for rows.Next() {
		record, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance records: %w", err)
	}
	return records, nil
}

// CreateAttendanceRecord inserts a new record. The unique constraint on
// assignment_id enforces at most one record per assignment.
func (d *DB) CreateAttendanceRecord(ctx context.Context, r model.AttendanceRecord) (model.AttendanceRecordID, error) {
	lat, lng := locationColumns(r.CheckInLocation)
	_, err := d.pool.Exec(ctx, `
		INSERT INTO attendance_records (`+attendanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.ID, r.AssignmentID, r.ShiftID, r.UserID, r.CheckInTime, r.CheckOutTime,
		r.Method, lat, lng, r.HoursWorked, r.Status, r.Notes)
	if err != nil {
		return "", fmt.Errorf("failed to insert attendance record: %w", err)
	}
	return r.ID, nil
}

// UpdateAttendanceRecord replaces a record's mutable fields.
func (d *DB) UpdateAttendanceRecord(ctx context.Context, r model.AttendanceRecord) error {
	lat, lng := locationColumns(r.CheckInLocation)
	tag, err := d.pool.Exec(ctx, `
		UPDATE attendance_records SET check_in_time = $2, check_out_time = $3, method = $4,
			check_in_latitude = $5, check_in_longitude = $6, hours_worked = $7, status = $8, notes = $9
		WHERE id = $1
	`, r.ID, r.CheckInTime, r.CheckOutTime, r.Method, lat, lng, r.HoursWorked, r.Status, r.Notes)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAttendanceRecordNotFound
	}
	return nil
}

// ObserveAttendanceRecordByAssignment emits the current snapshot, if any,
// and closes.
func (d *DB) ObserveAttendanceRecordByAssignment(ctx context.Context, assignmentID model.AssignmentID) <-chan model.AttendanceRecord {
	ch := make(chan model.AttendanceRecord, 1)
	if record, err := d.GetAttendanceRecordByAssignment(ctx, assignmentID); err == nil {
		ch <- record
	}
	close(ch)
	return ch
}
