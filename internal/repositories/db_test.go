package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type execCall struct {
	sql  string
	args []interface{}
}

// stubDB records Exec calls and returns a canned error, standing in for
// the pool in write-path tests.
type stubDB struct {
	execErr   error
	execCalls []execCall
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	s.execCalls = append(s.execCalls, execCall{sql: sql, args: args})
	if s.execErr != nil {
		return nil, s.execErr
	}
	return pgconn.CommandTag("INSERT 0 1"), nil
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}

func (s *stubDB) lastExec() execCall {
	return s.execCalls[len(s.execCalls)-1]
}
