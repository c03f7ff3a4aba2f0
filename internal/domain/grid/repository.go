package grid

import "context"

// Repository describes grid persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, gridID string) (Grid, bool, error)
	Save(ctx context.Context, g Grid) error
}
