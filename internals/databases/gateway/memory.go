package gateway

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryStore implementasi Store in-memory. Kolom dipetakan dari tag gorm
// `column:`; dipakai test handler/service tanpa Postgres.
type MemoryStore[T any] struct {
	mu       sync.RWMutex
	table    string
	pk       string
	rows     []*T
	fields   map[string][]int
	notifier Notifier
}

func NewMemoryStore[T any](table, pk string) *MemoryStore[T] {
	return &MemoryStore[T]{
		table:  table,
		pk:     pk,
		fields: columnIndex(reflect.TypeOf(new(T)).Elem()),
	}
}

func (m *MemoryStore[T]) WithNotifier(n Notifier) *MemoryStore[T] {
	m.notifier = n
	return m
}

func (m *MemoryStore[T]) Table() string { return m.table }

func (m *MemoryStore[T]) notify(event string) {
	if m.notifier != nil {
		m.notifier(m.table, event)
	}
}

func columnIndex(t reflect.Type) map[string][]int {
	out := map[string][]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			for col, idx := range columnIndex(f.Type) {
				out[col] = append([]int{i}, idx...)
			}
			continue
		}
		for _, part := range strings.Split(f.Tag.Get("gorm"), ";") {
			if strings.HasPrefix(part, "column:") {
				out[strings.TrimPrefix(part, "column:")] = []int{i}
			}
		}
	}
	return out
}

func (m *MemoryStore[T]) field(row *T, col string) (reflect.Value, error) {
	idx, ok := m.fields[col]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
	}
	return reflect.ValueOf(row).Elem().FieldByIndex(idx), nil
}

func (m *MemoryStore[T]) match(row *T, filters []Filter) (bool, error) {
	for _, f := range filters {
		v, err := m.field(row, f.Column)
		if err != nil {
			return false, err
		}
		ok, err := matchValue(v, f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchValue(v reflect.Value, f Filter) (bool, error) {
	if v.Kind() == reflect.Ptr {
		if f.Op == OpIsNull {
			want, _ := f.Value.(bool)
			return v.IsNil() == want, nil
		}
		if v.IsNil() {
			return false, nil
		}
		v = v.Elem()
	}
	if dv, ok := v.Interface().(gorm.DeletedAt); ok {
		if f.Op == OpIsNull {
			want, _ := f.Value.(bool)
			return !dv.Valid == want, nil
		}
		v = reflect.ValueOf(dv.Time)
	}

	switch f.Op {
	case OpEq, "":
		return compare(v.Interface(), f.Value) == 0, nil
	case OpNeq:
		return compare(v.Interface(), f.Value) != 0, nil
	case OpGte:
		return compare(v.Interface(), f.Value) >= 0, nil
	case OpLte:
		return compare(v.Interface(), f.Value) <= 0, nil
	case OpIlike:
		s, ok := f.Value.(string)
		if !ok {
			return false, fmt.Errorf("%w: ilike butuh string", ErrInvalidFilter)
		}
		return strings.Contains(strings.ToLower(fmt.Sprint(v.Interface())), strings.ToLower(strings.TrimSpace(s))), nil
	case OpIn:
		rv := reflect.ValueOf(f.Value)
		if rv.Kind() != reflect.Slice {
			return false, fmt.Errorf("%w: in butuh slice", ErrInvalidFilter)
		}
		for i := 0; i < rv.Len(); i++ {
			if compare(v.Interface(), rv.Index(i).Interface()) == 0 {
				return true, nil
			}
		}
		return false, nil
	case OpIsNull:
		want, _ := f.Value.(bool)
		return v.IsZero() == want, nil
	default:
		return false, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
	}
}

var timeType = reflect.TypeOf(time.Time{})

// compare menormalkan tipe bernama (datatypes.Date, constants.Role, uuid) sebelum membandingkan.
func compare(a, b any) int {
	na, nb := normalize(a), normalize(b)
	switch x := na.(type) {
	case time.Time:
		if y, ok := nb.(time.Time); ok {
			switch {
			case x.Before(y):
				return -1
			case x.After(y):
				return 1
			}
			return 0
		}
	case float64:
		if y, ok := nb.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := nb.(bool); ok {
			if x == y {
				return 0
			}
			if !x {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(na), fmt.Sprint(nb))
}

func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case uuid.UUID:
		return t.String()
	case *uuid.UUID:
		if t == nil {
			return ""
		}
		return t.String()
	case time.Time:
		return t
	case fmt.Stringer:
		if _, isTime := v.(interface{ Unix() int64 }); !isTime {
			return t.String()
		}
	}
	rv := reflect.ValueOf(v)
	if rv.Type().ConvertibleTo(timeType) && rv.Kind() == reflect.Struct {
		return rv.Convert(timeType).Interface().(time.Time)
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

func (m *MemoryStore[T]) filtered(q Query) ([]*T, error) {
	var out []*T
	for _, r := range m.rows {
		ok, err := m.match(r, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore[T]) Query(_ context.Context, q Query) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, err := m.filtered(q)
	if err != nil {
		return nil, err
	}
	for _, o := range q.Order {
		if _, ok := m.fields[o.Column]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, o.Column)
		}
	}
	if len(q.Order) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, o := range q.Order {
				a, _ := m.field(rows[i], o.Column)
				b, _ := m.field(rows[j], o.Column)
				c := compare(deref(a), deref(b))
				if c == 0 {
					continue
				}
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Offset > 0 {
		if q.Offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[q.Offset:]
		}
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	return out, nil
}

func deref(v reflect.Value) any {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func (m *MemoryStore[T]) Count(ctx context.Context, q Query) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, err := m.filtered(Query{Filters: q.Filters})
	return int64(len(rows)), err
}

func (m *MemoryStore[T]) FindByID(ctx context.Context, id any) (*T, error) {
	return m.FindOne(ctx, Eq(m.pk, id))
}

func (m *MemoryStore[T]) FindOne(_ context.Context, filters ...Filter) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, err := m.filtered(Query{Filters: filters})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rows[0]
	return &cp, nil
}

func (m *MemoryStore[T]) stamp(row *T, created bool) {
	now := time.Now()
	rv := reflect.ValueOf(row).Elem()
	if pk, err := m.field(row, m.pk); err == nil && pk.Type() == reflect.TypeOf(uuid.UUID{}) && pk.Interface().(uuid.UUID) == uuid.Nil {
		pk.Set(reflect.ValueOf(uuid.New()))
	}
	if created {
		if f := rv.FieldByName("CreatedAt"); f.IsValid() && f.Type() == timeType && f.Interface().(time.Time).IsZero() {
			f.Set(reflect.ValueOf(now))
		}
	}
	if f := rv.FieldByName("UpdatedAt"); f.IsValid() && f.Type() == timeType {
		f.Set(reflect.ValueOf(now))
	}
}

func (m *MemoryStore[T]) Insert(_ context.Context, rows ...*T) error {
	m.mu.Lock()
	for _, r := range rows {
		m.stamp(r, true)
		cp := *r
		m.rows = append(m.rows, &cp)
	}
	m.mu.Unlock()
	if len(rows) > 0 {
		m.notify(EventInsert)
	}
	return nil
}

func (m *MemoryStore[T]) Update(ctx context.Context, id any, patch map[string]any) (*T, error) {
	m.mu.Lock()
	rows, err := m.filtered(Query{Filters: []Filter{Eq(m.pk, id)}})
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if len(rows) == 0 {
		m.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	for col, val := range patch {
		f, err := m.field(rows[0], col)
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		if err := assign(f, val); err != nil {
			m.mu.Unlock()
			return nil, fmt.Errorf("kolom %s: %w", col, err)
		}
	}
	m.stamp(rows[0], false)
	m.mu.Unlock()

	if len(patch) > 0 {
		m.notify(EventUpdate)
	}
	return m.FindByID(ctx, id)
}

func assign(f reflect.Value, val any) error {
	if val == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}
	v := reflect.ValueOf(val)
	if f.Kind() == reflect.Ptr && v.Kind() != reflect.Ptr {
		p := reflect.New(f.Type().Elem())
		if err := assign(p.Elem(), val); err != nil {
			return err
		}
		f.Set(p)
		return nil
	}
	if f.Kind() != reflect.Ptr && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			f.Set(reflect.Zero(f.Type()))
			return nil
		}
		v = v.Elem()
	}
	if !v.Type().ConvertibleTo(f.Type()) {
		return fmt.Errorf("tipe %s tidak cocok dengan %s", v.Type(), f.Type())
	}
	f.Set(v.Convert(f.Type()))
	return nil
}

func (m *MemoryStore[T]) Upsert(ctx context.Context, row *T, conflictColumn string, updateColumns ...string) error {
	key, err := m.field(row, conflictColumn)
	if err != nil {
		return err
	}

	m.mu.Lock()
	existing, err := m.filtered(Query{Filters: []Filter{Eq(conflictColumn, key.Interface())}})
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if len(existing) == 0 {
		m.stamp(row, true)
		cp := *row
		m.rows = append(m.rows, &cp)
	} else {
		cur := existing[0]
		for _, col := range updateColumns {
			src, err := m.field(row, col)
			if err != nil {
				m.mu.Unlock()
				return err
			}
			dst, _ := m.field(cur, col)
			dst.Set(src)
		}
		m.stamp(cur, false)
		*row = *cur
	}
	m.mu.Unlock()

	m.notify(EventUpdate)
	return nil
}

func (m *MemoryStore[T]) Delete(_ context.Context, id any) error {
	m.mu.Lock()
	idx := -1
	for i, r := range m.rows {
		v, err := m.field(r, m.pk)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		if compare(v.Interface(), id) == 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return gorm.ErrRecordNotFound
	}
	m.rows = append(m.rows[:idx], m.rows[idx+1:]...)
	m.mu.Unlock()

	m.notify(EventDelete)
	return nil
}

var _ Store[struct{ ID string }] = (*MemoryStore[struct{ ID string }])(nil)
