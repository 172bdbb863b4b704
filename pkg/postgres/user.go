package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"treelot/pkg/core/model"
)

const userColumns = `id, email, first_name, last_name, role, account_status, households, is_claimed, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	var households []string
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.AccountStatus,
		&households, &u.IsClaimed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Households = toHouseholdIDs(households)
	return u, nil
}

func toHouseholdIDs(ids []string) []model.HouseholdID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]model.HouseholdID, len(ids))
	for i, id := range ids {
		out[i] = model.HouseholdID(id)
	}
	return out
}

func fromHouseholdIDs(ids []model.HouseholdID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func fromUserIDs(ids []model.UserID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func toUserIDs(ids []string) []model.UserID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]model.UserID, len(ids))
	for i, id := range ids {
		out[i] = model.UserID(id)
	}
	return out
}

// GetUser retrieves a single user by ID.
func (d *DB) GetUser(ctx context.Context, id model.UserID) (model.User, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// GetUsersByRole retrieves all users holding the given role, ordered by ID.
func (d *DB) GetUsersByRole(ctx context.Context, role model.UserRole) ([]model.User, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListUsers retrieves every user, ordered by ID.
func (d *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]model.User, error) {
	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a new user.
func (d *DB) CreateUser(ctx context.Context, u model.User) (model.UserID, error) {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID, u.Email, u.FirstName, u.LastName, u.Role, u.AccountStatus,
		fromHouseholdIDs(u.Households), u.IsClaimed, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return u.ID, nil
}

// UpdateUser replaces a user's mutable fields.
func (d *DB) UpdateUser(ctx context.Context, u model.User) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE users SET email = $2, first_name = $3, last_name = $4, role = $5,
			account_status = $6, households = $7, is_claimed = $8, updated_at = $9
		WHERE id = $1
	`, u.ID, u.Email, u.FirstName, u.LastName, u.Role, u.AccountStatus,
		fromHouseholdIDs(u.Households), u.IsClaimed, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

const householdColumns = `id, name, members, managers, is_active, created_at, updated_at`

func scanHousehold(row pgx.Row) (model.Household, error) {
	var h model.Household
	var members, managers []string
	err := row.Scan(&h.ID, &h.Name, &members, &managers, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return model.Household{}, err
	}
	h.Members = toUserIDs(members)
	h.Managers = toUserIDs(managers)
	return h, nil
}

// GetHousehold retrieves a single household by ID.
func (d *DB) GetHousehold(ctx context.Context, id model.HouseholdID) (model.Household, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+householdColumns+` FROM households WHERE id = $1`, id)
	household, err := scanHousehold(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Household{}, model.ErrHouseholdNotFound
		}
		return model.Household{}, fmt.Errorf("failed to query household: %w", err)
	}
	return household, nil
}

// ListHouseholds retrieves every household, ordered by ID.
func (d *DB) ListHouseholds(ctx context.Context) ([]model.Household, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+householdColumns+` FROM households ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query households: %w", err)
	}
	defer rows.Close()

	var households []model.Household
	for rows.Next() {
		household, err := scanHousehold(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		households = append(households, household)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating households: %w", err)
	}
	return households, nil
}

// CreateHousehold inserts a new household.
func (d *DB) CreateHousehold(ctx context.Context, h model.Household) (model.HouseholdID, error) {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO households (`+householdColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, h.ID, h.Name, fromUserIDs(h.Members), fromUserIDs(h.Managers), h.IsActive, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert household: %w", err)
	}
	return h.ID, nil
}

// UpdateHousehold replaces a household's mutable fields.
func (d *DB) UpdateHousehold(ctx context.Context, h model.Household) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE households SET name = $2, members = $3, managers = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`, h.ID, h.Name, fromUserIDs(h.Members), fromUserIDs(h.Managers), h.IsActive, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update household: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrHouseholdNotFound
	}
	return nil
}
