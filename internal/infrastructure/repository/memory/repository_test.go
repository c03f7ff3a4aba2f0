package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/riskibarqy/league-grid/internal/domain/grid"
	"github.com/riskibarqy/league-grid/internal/domain/league"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

func TestLeagueRepository_Replace(t *testing.T) {
	ctx := context.Background()
	repo := NewLeagueRepository(nil)

	if _, ok, err := repo.Current(ctx); err != nil || ok {
		t.Fatalf("expected empty repository, ok=%v err=%v", ok, err)
	}

	first := &league.Dataset{ID: "first", Sport: sport.Basketball}
	if err := repo.Replace(ctx, first); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := repo.Replace(ctx, &league.Dataset{ID: "", Sport: sport.Basketball}); err == nil {
		t.Fatalf("expected invalid dataset to be rejected")
	}

	got, ok, err := repo.Current(ctx)
	if err != nil || !ok {
		t.Fatalf("current: ok=%v err=%v", ok, err)
	}
	if got != first {
		t.Fatalf("expected first dataset to stay current, got %s", got.ID)
	}
}

func TestGridRepository_SaveAndEvict(t *testing.T) {
	ctx := context.Background()
	repo := NewGridRepository(2)

	for i := 1; i <= 3; i++ {
		if err := repo.Save(ctx, grid.Grid{ID: fmt.Sprintf("g%d", i), DatasetID: "d"}); err != nil {
			t.Fatalf("save g%d: %v", i, err)
		}
	}
	if err := repo.Save(ctx, grid.Grid{}); err == nil {
		t.Fatalf("expected missing id to be rejected")
	}

	if repo.Len() != 2 {
		t.Fatalf("expected 2 grids, got %d", repo.Len())
	}
	if _, ok, _ := repo.GetByID(ctx, "g1"); ok {
		t.Fatalf("expected oldest grid to be evicted")
	}
	got, ok, err := repo.GetByID(ctx, "g3")
	if err != nil || !ok || got.DatasetID != "d" {
		t.Fatalf("unexpected g3 lookup: %+v ok=%v err=%v", got, ok, err)
	}
}
