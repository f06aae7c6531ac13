package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"
	"strings"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"worker/internal/errors"
)

// querier is implemented by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// entity names the row a statement targets, used in not found errors
type entity struct {
	kind string
	key  string
}

func entityWithID(kind string, id int64) entity {
	return entity{kind: kind, key: strconv.FormatInt(id, 10)}
}

// HandleDatabaseError converts database errors to structured app errors.
// Cancelled and expired contexts become timeout errors.
func HandleDatabaseError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

// HandleNoRowsError turns sql.ErrNoRows into a not found error for e
func HandleNoRowsError(err error, e entity) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(e.kind, e.key)
	}
	return err
}

// IsUniqueViolation reports whether err was raised by a UNIQUE constraint
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *moderncsqlite.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ValidateRowsAffected reports e as not found when the statement changed nothing
func ValidateRowsAffected(result sql.Result, e entity) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(e.kind, e.key)
	}
	return nil
}

// insert executes an INSERT and returns the id of the new row
func insert(ctx context.Context, q querier, query string, args ...interface{}) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError("execute insert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}
	return id, nil
}

// execAffecting executes an UPDATE or DELETE that must change the row of e
func execAffecting(ctx context.Context, q querier, e entity, query string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("update "+e.kind, err)
	}
	return ValidateRowsAffected(result, e)
}

// queryOne scans the single row a query returns
func queryOne[T any](ctx context.Context, q querier, e entity, query string, scan func(Scanner) (*T, error), args ...interface{}) (*T, error) {
	result, err := scan(q.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, HandleNoRowsError(err, e)
	}
	if err != nil {
		return nil, HandleDatabaseError("scan "+e.kind, err)
	}
	return result, nil
}

// queryAll scans every row a query returns
func queryAll[T any](ctx context.Context, q querier, kind string, query string, scan func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+kind, err)
	}
	defer rows.Close()

	results, err := scan(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+kind, err)
	}
	return results, nil
}
