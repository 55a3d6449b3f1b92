package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSQL(t *testing.T) {
	tests := []struct {
		name    string
		f       Filter
		sql     string
		args    []any
		wantErr error
	}{
		{name: "eq", f: Eq("class_name", "A"), sql: "class_name = ?", args: []any{"A"}},
		{name: "empty op is eq", f: Filter{Column: "x", Value: 1}, sql: "x = ?", args: []any{1}},
		{name: "neq", f: Filter{Column: "x", Op: OpNeq, Value: 1}, sql: "x <> ?", args: []any{1}},
		{name: "gte", f: Filter{Column: "d", Op: OpGte, Value: "2026-01-01"}, sql: "d >= ?", args: []any{"2026-01-01"}},
		{name: "lte", f: Filter{Column: "d", Op: OpLte, Value: 3}, sql: "d <= ?", args: []any{3}},
		{name: "ilike wraps", f: Filter{Column: "name", Op: OpIlike, Value: " ali "}, sql: "name ILIKE ?", args: []any{"%ali%"}},
		{name: "ilike non string", f: Filter{Column: "name", Op: OpIlike, Value: 1}, wantErr: ErrInvalidFilter},
		{name: "in", f: Filter{Column: "id", Op: OpIn, Value: []string{"a", "b"}}, sql: "id IN ?", args: []any{[]string{"a", "b"}}},
		{name: "in non slice", f: Filter{Column: "id", Op: OpIn, Value: "a"}, wantErr: ErrInvalidFilter},
		{name: "is null", f: Filter{Column: "deleted_at", Op: OpIsNull, Value: true}, sql: "deleted_at IS NULL"},
		{name: "is not null", f: Filter{Column: "deleted_at", Op: OpIsNull, Value: false}, sql: "deleted_at IS NOT NULL"},
		{name: "unknown op", f: Filter{Column: "x", Op: "like"}, wantErr: ErrInvalidFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := FilterSQL(tt.f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.args, args)
		})
	}
}

type row struct{ ID string }

func TestRepository_ColumnWhitelist(t *testing.T) {
	r := New[row](nil, "rows", "id", "name")

	assert.NoError(t, r.checkColumn("id"))
	assert.NoError(t, r.checkColumn("name"))
	assert.ErrorIs(t, r.checkColumn("name; DROP TABLE rows"), ErrUnknownColumn)
	assert.Equal(t, "rows", r.Table())
}

func TestRepository_NotifierCalled(t *testing.T) {
	var got []string
	r := New[row](nil, "rows", "id").WithNotifier(func(table, event string) {
		got = append(got, table+":"+event)
	})
	r.notify(EventInsert)
	r.notify(EventDelete)
	assert.Equal(t, []string{"rows:INSERT", "rows:DELETE"}, got)
}
