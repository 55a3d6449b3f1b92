package gateway

import "context"

// Store adalah permukaan Persistence Gateway yang dipakai service.
// *Repository[T] (Postgres) dan *MemoryStore[T] (test) sama-sama memenuhinya.
type Store[T any] interface {
	Table() string
	Query(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)
	FindByID(ctx context.Context, id any) (*T, error)
	FindOne(ctx context.Context, filters ...Filter) (*T, error)
	Insert(ctx context.Context, rows ...*T) error
	Update(ctx context.Context, id any, patch map[string]any) (*T, error)
	Upsert(ctx context.Context, row *T, conflictColumn string, updateColumns ...string) error
	Delete(ctx context.Context, id any) error
}

var _ Store[struct{ ID string }] = (*Repository[struct{ ID string }])(nil)
