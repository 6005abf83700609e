package storage_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhienayaSri9509/GlobeTrotter/internal/planner"
	"github.com/AbhienayaSri9509/GlobeTrotter/internal/storage"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

// errRow always fails with the given error.
func errRow(err error) pgx.Row {
	return &fakeRow{scanFn: func(_ ...any) error { return err }}
}

// valueRow assigns the given values positionally into the scan targets.
func valueRow(values ...any) pgx.Row {
	return &fakeRow{scanFn: func(dest ...any) error {
		return assignValues(values, dest)
	}}
}

func assignValues(values, dest []any) error {
	for i, d := range dest {
		if i >= len(values) {
			break
		}
		switch v := d.(type) {
		case *int64:
			*v = values[i].(int64)
		case *int:
			*v = values[i].(int)
		case *string:
			*v = values[i].(string)
		case **string:
			if values[i] == nil {
				*v = nil
			} else {
				s := values[i].(string)
				*v = &s
			}
		case *bool:
			*v = values[i].(bool)
		case *float64:
			*v = values[i].(float64)
		case **float64:
			if values[i] == nil {
				*v = nil
			} else {
				f := values[i].(float64)
				*v = &f
			}
		case **int:
			if values[i] == nil {
				*v = nil
			} else {
				n := values[i].(int)
				*v = &n
			}
		case *time.Time:
			*v = values[i].(time.Time)
		default:
			return fmt.Errorf("unsupported scan target %T", d)
		}
	}
	return nil
}

// ---- mock pgx.Rows ----

type fakeRows struct {
	rows    [][]any
	idx     int
	rowErr  error
	scanErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= len(f.rows) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	return assignValues(f.rows[f.idx-1], dest)
}

// ---- helpers ----

func repoWith(q storage.Querier) *storage.Repository {
	return storage.NewRepositoryWithQuerier(q)
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func fkViolation() error {
	return &pgconn.PgError{Code: "23503"}
}

func writeSQLFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// ---- user tests ----

func TestCreateUser_DuplicateEmail(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(uniqueViolation())
		},
	}

	_, err := repoWith(q).CreateUser(context.Background(), nil, "taken@example.com", "hash")
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestCreateUser_PassesArgs(t *testing.T) {
	now := time.Now()
	var captured []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			captured = args
			return valueRow(int64(1), "Ada", "ada@example.com", "hash", false, now)
		},
	}

	u, err := repoWith(q).CreateUser(context.Background(), nil, "ada@example.com", "hash")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(1), u.ID)
	require.Len(t, captured, 3)
	assert.Equal(t, "ada@example.com", captured[1])
}

func TestUserByEmail_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(pgx.ErrNoRows)
		},
	}

	u, err := repoWith(q).UserByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserByEmail_DBError(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(fmt.Errorf("connection reset"))
		},
	}

	_, err := repoWith(q).UserByEmail(context.Background(), "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying user by email")
}

func TestUpdateUser_SetsOnlySuppliedColumns(t *testing.T) {
	now := time.Now()
	var capturedSQL string
	var capturedArgs []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			capturedArgs = args
			return valueRow(int64(7), nil, "new@example.com", "hash", false, now)
		},
	}

	email := "new@example.com"
	u, err := repoWith(q).UpdateUser(context.Background(), 7, planner.UserPatch{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Contains(t, capturedSQL, "email = $1")
	assert.NotContains(t, capturedSQL, "name =")
	assert.NotContains(t, capturedSQL, "password_hash =")
	assert.Contains(t, capturedSQL, "WHERE id = $2")
	assert.Equal(t, []any{"new@example.com", int64(7)}, capturedArgs)
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(uniqueViolation())
		},
	}

	email := "taken@example.com"
	_, err := repoWith(q).UpdateUser(context.Background(), 7, planner.UserPatch{Email: &email})
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

// ---- trip tests ----

func tripValues(id, userID int64, name string, isPublic bool) []any {
	return []any{id, userID, name, nil, nil, nil, nil, isPublic, time.Now()}
}

func TestTripForUser_ScopesToOwner(t *testing.T) {
	var capturedArgs []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			capturedArgs = args
			assert.Contains(t, sql, "user_id = $2")
			return valueRow(tripValues(1, 7, "Mine", false)...)
		},
	}

	trip, err := repoWith(q).TripForUser(context.Background(), 1, 7)
	require.NoError(t, err)
	require.NotNil(t, trip)
	assert.Equal(t, []any{int64(1), int64(7)}, capturedArgs)
}

func TestPublicTrip_FiltersOnFlag(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			assert.Contains(t, sql, "is_public")
			return errRow(pgx.ErrNoRows)
		},
	}

	trip, err := repoWith(q).PublicTrip(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, trip)
}

func TestUpdateTrip_NumbersPlaceholdersSequentially(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			capturedArgs = args
			return valueRow(tripValues(1, 7, "Renamed", true)...)
		},
	}

	name := "Renamed"
	isPublic := true
	_, err := repoWith(q).UpdateTrip(context.Background(), 1, planner.TripPatch{Name: &name, IsPublic: &isPublic})
	require.NoError(t, err)

	assert.Contains(t, capturedSQL, "is_public = $1")
	assert.Contains(t, capturedSQL, "name = $2")
	assert.Contains(t, capturedSQL, "WHERE id = $3")
	assert.Equal(t, []any{true, "Renamed", int64(1)}, capturedArgs)
}

func TestTripsByUser_CollectsRows(t *testing.T) {
	rows := &fakeRows{rows: [][]any{
		tripValues(2, 7, "Newer", false),
		tripValues(1, 7, "Older", true),
	}}
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	trips, err := repoWith(q).TripsByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "Newer", trips[0].Name)
}

func TestTripsByUser_RowsErr(t *testing.T) {
	rows := &fakeRows{rowErr: fmt.Errorf("iteration error")}
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	_, err := repoWith(q).TripsByUser(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterating")
}

// ---- stop tests ----

func TestCreateStop_UnknownTrip(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(fkViolation())
		},
	}

	_, err := repoWith(q).CreateStop(context.Background(), 999, "Paris", nil, nil, nil, 0)
	assert.ErrorIs(t, err, storage.ErrMissingReference)
}

func TestStopWithOwner_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(pgx.ErrNoRows)
		},
	}

	stop, ownerID, err := repoWith(q).StopWithOwner(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, stop)
	assert.Zero(t, ownerID)
}

func TestStopWithOwner_JoinsParentTrip(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			assert.Contains(t, sql, "JOIN trips")
			return valueRow(int64(5), int64(1), "Paris", "France", nil, nil, 0, int64(7))
		},
	}

	stop, ownerID, err := repoWith(q).StopWithOwner(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, stop)
	assert.Equal(t, "Paris", stop.City)
	assert.Equal(t, int64(7), ownerID)
}

func TestUpdateStop_QuotesPositionColumn(t *testing.T) {
	var capturedSQL string
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			capturedSQL = sql
			return valueRow(int64(5), int64(1), "Paris", nil, nil, nil, 2)
		},
	}

	position := 2
	_, err := repoWith(q).UpdateStop(context.Background(), 5, planner.StopPatch{Position: &position})
	require.NoError(t, err)
	assert.Contains(t, capturedSQL, `"position" = $1`)
}

func TestStopCostByStop_NoRecord(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(pgx.ErrNoRows)
		},
	}

	c, err := repoWith(q).StopCostByStop(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestUpdateStopCost_KeysOnStopID(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			capturedArgs = args
			return valueRow(int64(1), int64(5), 120.0, 0.0, 0.0)
		},
	}

	transport := 120.0
	c, err := repoWith(q).UpdateStopCost(context.Background(), 5, planner.StopCostPatch{TransportCost: &transport})
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Contains(t, capturedSQL, "transport_cost = $1")
	assert.Contains(t, capturedSQL, "WHERE stop_id = $2")
	assert.Equal(t, []any{120.0, int64(5)}, capturedArgs)
}

// ---- activity tests ----

func TestSearchActivities_NoFilters(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			assert.Empty(t, args)
			assert.NotContains(t, sql, "ILIKE")
			return &fakeRows{}, nil
		},
	}

	activities, err := repoWith(q).SearchActivities(context.Background(), planner.ActivityFilter{})
	require.NoError(t, err)
	assert.Empty(t, activities)
	assert.NotNil(t, activities, "empty result must serialize as [] not null")
}

func TestSearchActivities_CombinesFilters(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	q := &mockQuerier{
		queryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			capturedSQL = sql
			capturedArgs = args
			return &fakeRows{rows: [][]any{
				{int64(2), "Louvre Museum", nil, "Paris", "culture", 17.0, 180},
			}}, nil
		},
	}

	maxCost := 20.0
	results, err := repoWith(q).SearchActivities(context.Background(), planner.ActivityFilter{
		Query:   "museum",
		City:    "Paris",
		MaxCost: &maxCost,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Louvre Museum", results[0].Name)

	assert.Contains(t, capturedSQL, "ILIKE $1")
	assert.Contains(t, capturedSQL, "city = $2")
	assert.Contains(t, capturedSQL, "cost <= $3")
	assert.NotContains(t, capturedSQL, "category =")
	assert.Equal(t, []any{"%museum%", "Paris", 20.0}, capturedArgs)
}

func TestAttachActivity_UnknownReference(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return errRow(fkViolation())
		},
	}

	_, err := repoWith(q).AttachActivity(context.Background(), 5, 999, nil, nil)
	assert.ErrorIs(t, err, storage.ErrMissingReference)
}

func TestAttachActivity_ReadsBackEnrichedRow(t *testing.T) {
	calls := 0
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			calls++
			if strings.Contains(sql, "INSERT") {
				return valueRow(int64(11))
			}
			return valueRow(
				int64(11), int64(5), int64(2), nil, 25.0,
				"Louvre Museum", nil, "Paris", "culture", 17.0, 180,
			)
		},
	}

	cost := 25.0
	d, err := repoWith(q).AttachActivity(context.Background(), 5, 2, nil, &cost)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Louvre Museum", d.ActivityName)
	require.NotNil(t, d.Cost)
	assert.Equal(t, 25.0, *d.Cost)
	assert.Equal(t, 17.0, d.ActivityCost)
}

// ---- migration tests ----

type mockMigrationPool struct {
	beginFn func(ctx context.Context) (pgx.Tx, error)
}

func (m *mockMigrationPool) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.beginFn(ctx)
}

// mockTx is a minimal pgx.Tx implementation for testing migrations.
type mockTx struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	commitFn   func(ctx context.Context) error
	rollbackFn func(ctx context.Context) error
}

func (t *mockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.execFn(ctx, sql, args...)
}
func (t *mockTx) Commit(ctx context.Context) error   { return t.commitFn(ctx) }
func (t *mockTx) Rollback(ctx context.Context) error { return t.rollbackFn(ctx) }

// pgx.Tx has many more methods; stub them all out.
func (t *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (t *mockTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *mockTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *mockTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (t *mockTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *mockTx) Conn() *pgx.Conn { return nil }

func okTx(onExec func(sql string)) *mockTx {
	return &mockTx{
		execFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			if onExec != nil {
				onExec(sql)
			}
			return pgconn.CommandTag{}, nil
		},
		commitFn:   func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error { return nil },
	}
}

func TestRunMigrations_MissingDir(t *testing.T) {
	err := storage.RunMigrations(context.Background(), nil, "/nonexistent/dir")
	require.Error(t, err)
}

func TestRunMigrations_EmptyDir(t *testing.T) {
	err := storage.RunMigrations(context.Background(), nil, t.TempDir())
	require.NoError(t, err)
}

func TestRunMigrations_Success(t *testing.T) {
	dir := t.TempDir()
	writeSQLFile(t, dir, "0001_schema.sql", "SELECT 1;")

	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return okTx(nil), nil },
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.NoError(t, err)
}

func TestRunMigrations_BeginError(t *testing.T) {
	dir := t.TempDir()
	writeSQLFile(t, dir, "0001_schema.sql", "SELECT 1;")

	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return nil, fmt.Errorf("cannot begin") },
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing migration")
}

func TestRunMigrations_ExecError(t *testing.T) {
	dir := t.TempDir()
	writeSQLFile(t, dir, "0001_schema.sql", "INVALID SQL;")

	tx := &mockTx{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("syntax error")
		},
		commitFn:   func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error { return nil },
	}
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.Error(t, err)
}

func TestRunMigrations_CommitError(t *testing.T) {
	dir := t.TempDir()
	writeSQLFile(t, dir, "0001_schema.sql", "SELECT 1;")

	tx := &mockTx{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, nil
		},
		commitFn:   func(_ context.Context) error { return fmt.Errorf("commit failed") },
		rollbackFn: func(_ context.Context) error { return nil },
	}
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.Error(t, err)
}

func TestRunMigrations_SortsFilesLexicographically(t *testing.T) {
	dir := t.TempDir()
	var order []string
	writeSQLFile(t, dir, "0003_c.sql", "SELECT 3;")
	writeSQLFile(t, dir, "0001_a.sql", "SELECT 1;")
	writeSQLFile(t, dir, "0002_b.sql", "SELECT 2;")

	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) {
			return okTx(func(sql string) { order = append(order, sql) }), nil
		},
	}

	err := storage.RunMigrations(context.Background(), pool, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT 1;", "SELECT 2;", "SELECT 3;"}, order)
}

// ---- Connect ----

func TestConnect_BadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := storage.Connect(ctx, "postgres://invalid-host-xyz:5432/db?sslmode=disable")
	require.Error(t, err)
}
