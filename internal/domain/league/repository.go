package league

import "context"

// Repository holds the currently loaded dataset.
type Repository interface {
	Current(ctx context.Context) (*Dataset, bool, error)
	Replace(ctx context.Context, dataset *Dataset) error
}
