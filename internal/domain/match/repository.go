package match

import "context"

// Repository exposes read operations over one normalized match snapshot.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListByGroup(ctx context.Context, group string) ([]Match, error)
	GetByCode(ctx context.Context, code string) (Match, bool, error)
}
