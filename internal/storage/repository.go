package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ErrDuplicateEmail is returned when a user insert or update collides with
// an existing email address.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrMissingReference is returned when an insert points at a row that does
// not exist (e.g. attaching an unknown activity to a stop).
var ErrMissingReference = errors.New("referenced row does not exist")

// Repository provides database access for all planner entities.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// pgErrCode extracts the Postgres error code, or "" for non-pg errors.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// setClause accumulates "col = $n" assignments with positional args for
// partial UPDATE statements. Column names are compile-time constants; only
// values travel as parameters.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setClause) sql() string {
	return strings.Join(s.cols, ", ")
}
