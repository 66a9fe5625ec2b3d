package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// mockDB is a testify mock of database.PgxIface. Expectations match on (sql, args).
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ret := m.Called(sql, args)
	rows, _ := ret.Get(0).(pgx.Rows)
	return rows, ret.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ret := m.Called(sql, args)
	return ret.Get(0).(pgx.Row)
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *mockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	ret := m.Called()
	tx, _ := ret.Get(0).(pgx.Tx)
	return tx, ret.Error(1)
}

func (m *mockDB) Ping(ctx context.Context) error {
	return m.Called().Error(0)
}

func (m *mockDB) Close() {
	m.Called()
}

// fakeRow implements pgx.Row by copying values into the scan destinations.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("fakeRow: %d destinations for %d values", len(dest), len(r.values))
	}

	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r.values[i]).Convert(target.Type()))
	}
	return nil
}

// fakeRows implements pgx.Rows over a fixed set of fakeRow values.
type fakeRows struct {
	rows   []fakeRow
	pos    int
	err    error
	closed bool
}

func newFakeRows(rows ...[]any) *fakeRows {
	fr := &fakeRows{pos: -1}
	for _, values := range rows {
		fr.rows = append(fr.rows, fakeRow{values: values})
	}
	return fr
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return r.rows[r.pos].Scan(dest...)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos].values, nil
}
