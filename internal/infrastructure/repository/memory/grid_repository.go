package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/league-grid/internal/domain/grid"
)

const defaultGridCapacity = 1024

// GridRepository keeps generated grids, evicting the oldest once capacity is
// reached.
type GridRepository struct {
	mu       sync.RWMutex
	items    map[string]grid.Grid
	orders   []string
	capacity int
}

func NewGridRepository(capacity int) *GridRepository {
	if capacity <= 0 {
		capacity = defaultGridCapacity
	}

	return &GridRepository{
		items:    make(map[string]grid.Grid, capacity),
		orders:   make([]string, 0, capacity),
		capacity: capacity,
	}
}

func (r *GridRepository) GetByID(_ context.Context, id string) (grid.Grid, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return grid.Grid{}, false, nil
	}

	return item, true, nil
}

func (r *GridRepository) Save(_ context.Context, item grid.Grid) error {
	if item.ID == "" {
		return fmt.Errorf("grid id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	for len(r.orders) > r.capacity {
		oldest := r.orders[0]
		r.orders = r.orders[1:]
		delete(r.items, oldest)
	}

	return nil
}

func (r *GridRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
