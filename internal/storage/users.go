package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
)

const userColumns = `id, name, email, password_hash, is_admin, created_at`

func scanUser(row pgx.Row) (*planner.User, error) {
	var u planner.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account. Returns ErrDuplicateEmail when the email
// is already taken.
func (r *Repository) CreateUser(ctx context.Context, name *string, email, passwordHash string) (*planner.User, error) {
	const q = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	u, err := scanUser(r.q.QueryRow(ctx, q, name, email, passwordHash))
	if err != nil {
		if pgErrCode(err) == codeUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("inserting user %s: %w", email, err)
	}
	return u, nil
}

// UserByEmail returns nil, nil when no account matches.
func (r *Repository) UserByEmail(ctx context.Context, email string) (*planner.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.q.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return u, nil
}

// UserByID returns nil, nil when no account matches.
func (r *Repository) UserByID(ctx context.Context, id int64) (*planner.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user %d: %w", id, err)
	}
	return u, nil
}

// UpdateUser applies the supplied profile fields and returns the updated row.
// The caller must ensure the patch is non-empty.
func (r *Repository) UpdateUser(ctx context.Context, id int64, patch planner.UserPatch) (*planner.User, error) {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		set.add("password_hash", *patch.PasswordHash)
	}
	args := append(set.args, id)

	q := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns, set.sql(), len(args))

	u, err := scanUser(r.q.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if pgErrCode(err) == codeUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	return u, nil
}

// DeleteUser removes an account; trips and everything beneath them cascade.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	return nil
}

// AllUsers returns every account, newest first, for admin management.
func (r *Repository) AllUsers(ctx context.Context) ([]planner.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []planner.User{}
	for rows.Next() {
		var u planner.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}
