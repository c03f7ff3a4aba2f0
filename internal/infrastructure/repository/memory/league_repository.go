package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/league-grid/internal/domain/league"
)

// LeagueRepository holds the one dataset the service answers from. Datasets
// are read-only after load, so the pointer is shared rather than cloned.
type LeagueRepository struct {
	mu      sync.RWMutex
	current *league.Dataset
}

func NewLeagueRepository(initial *league.Dataset) *LeagueRepository {
	return &LeagueRepository{current: initial}
}

func (r *LeagueRepository) Current(_ context.Context) (*league.Dataset, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return nil, false, nil
	}

	return r.current, true, nil
}

func (r *LeagueRepository) Replace(_ context.Context, dataset *league.Dataset) error {
	if err := dataset.Validate(); err != nil {
		return fmt.Errorf("replace league: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = dataset
	return nil
}
