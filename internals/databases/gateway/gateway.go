// Package gateway menyediakan operasi query/insert/update/upsert/delete generik
// di atas GORM untuk satu tabel. Nama kolom dari request wajib lolos whitelist.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Op string

const (
	OpEq     Op = "eq"
	OpNeq    Op = "neq"
	OpGte    Op = "gte"
	OpLte    Op = "lte"
	OpIlike  Op = "ilike"
	OpIn     Op = "in"
	OpIsNull Op = "is_null"
)

// Write op, dikirim ke Notifier setelah tulis sukses.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

var (
	ErrUnknownColumn = errors.New("kolom tidak dikenal")
	ErrInvalidFilter = errors.New("filter tidak valid")
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

type Order struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int
	Offset  int
}

func Eq(col string, v any) Filter { return Filter{Column: col, Op: OpEq, Value: v} }

// Notifier dipanggil setelah tulis sukses (tabel, jenis event).
type Notifier func(table, event string)

type Repository[T any] struct {
	db       *gorm.DB
	table    string
	pk       string
	columns  map[string]struct{}
	notifier Notifier
}

func New[T any](db *gorm.DB, table, pk string, columns ...string) *Repository[T] {
	cols := make(map[string]struct{}, len(columns)+1)
	cols[pk] = struct{}{}
	for _, c := range columns {
		cols[c] = struct{}{}
	}
	return &Repository[T]{db: db, table: table, pk: pk, columns: cols}
}

func (r *Repository[T]) WithNotifier(n Notifier) *Repository[T] {
	r.notifier = n
	return r
}

func (r *Repository[T]) Table() string { return r.table }

// DB untuk query custom (join, agregasi) yang tidak tercakup Query.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

func (r *Repository[T]) notify(event string) {
	if r.notifier != nil {
		r.notifier(r.table, event)
	}
}

func (r *Repository[T]) scoped(ctx context.Context, q Query) (*gorm.DB, error) {
	tx := r.DB(ctx)
	for _, f := range q.Filters {
		if err := r.checkColumn(f.Column); err != nil {
			return nil, err
		}
		sql, args, err := FilterSQL(f)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(sql, args...)
	}
	return tx, nil
}

func (r *Repository[T]) checkColumn(col string) error {
	if _, ok := r.columns[col]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, col)
	}
	return nil
}

// FilterSQL menerjemahkan satu filter ke fragmen WHERE. Column harus sudah lolos whitelist.
func FilterSQL(f Filter) (string, []any, error) {
	switch f.Op {
	case OpEq, "":
		return f.Column + " = ?", []any{f.Value}, nil
	case OpNeq:
		return f.Column + " <> ?", []any{f.Value}, nil
	case OpGte:
		return f.Column + " >= ?", []any{f.Value}, nil
	case OpLte:
		return f.Column + " <= ?", []any{f.Value}, nil
	case OpIlike:
		s, ok := f.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: ilike butuh string", ErrInvalidFilter)
		}
		return f.Column + " ILIKE ?", []any{"%" + strings.TrimSpace(s) + "%"}, nil
	case OpIn:
		rv := reflect.ValueOf(f.Value)
		if rv.Kind() != reflect.Slice {
			return "", nil, fmt.Errorf("%w: in butuh slice", ErrInvalidFilter)
		}
		return f.Column + " IN ?", []any{f.Value}, nil
	case OpIsNull:
		if b, _ := f.Value.(bool); !b {
			return f.Column + " IS NOT NULL", nil, nil
		}
		return f.Column + " IS NULL", nil, nil
	default:
		return "", nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
	}
}

func (r *Repository[T]) Query(ctx context.Context, q Query) ([]T, error) {
	tx, err := r.scoped(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, o := range q.Order {
		if err := r.checkColumn(o.Column); err != nil {
			return nil, err
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository[T]) Count(ctx context.Context, q Query) (int64, error) {
	tx, err := r.scoped(ctx, Query{Filters: q.Filters})
	if err != nil {
		return 0, err
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id any) (*T, error) {
	var row T
	if err := r.DB(ctx).Where(r.pk+" = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository[T]) FindOne(ctx context.Context, filters ...Filter) (*T, error) {
	tx, err := r.scoped(ctx, Query{Filters: filters})
	if err != nil {
		return nil, err
	}
	var row T
	if err := tx.First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository[T]) Insert(ctx context.Context, rows ...*T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(rows).Error; err != nil {
		return err
	}
	r.notify(EventInsert)
	return nil
}

// Update menerapkan patch (nama kolom → nilai) lalu membaca ulang baris.
func (r *Repository[T]) Update(ctx context.Context, id any, patch map[string]any) (*T, error) {
	for col := range patch {
		if err := r.checkColumn(col); err != nil {
			return nil, err
		}
	}
	if len(patch) > 0 {
		res := r.DB(ctx).Where(r.pk+" = ?", id).Updates(patch)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
		r.notify(EventUpdate)
	}
	return r.FindByID(ctx, id)
}

// Upsert INSERT ... ON CONFLICT (conflictColumn) DO UPDATE; row diisi ulang via RETURNING.
func (r *Repository[T]) Upsert(ctx context.Context, row *T, conflictColumn string, updateColumns ...string) error {
	if err := r.checkColumn(conflictColumn); err != nil {
		return err
	}
	for _, col := range updateColumns {
		if err := r.checkColumn(col); err != nil {
			return err
		}
	}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: conflictColumn}},
				DoUpdates: clause.AssignmentColumns(updateColumns),
			},
			clause.Returning{},
		).
		Create(row).Error
	if err != nil {
		return err
	}
	r.notify(EventUpdate)
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	res := r.db.WithContext(ctx).Where(r.pk+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.notify(EventDelete)
	return nil
}
