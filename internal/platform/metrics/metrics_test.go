package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCacheObserver(t *testing.T) {
	observe := CacheObserver("members_test")
	hitsBefore := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("members_test", "hit"))
	missesBefore := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("members_test", "miss"))

	observe(true)
	observe(true)
	observe(false)

	if got := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("members_test", "hit")) - hitsBefore; got != 2 {
		t.Fatalf("unexpected hits: %v", got)
	}
	if got := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("members_test", "miss")) - missesBefore; got != 1 {
		t.Fatalf("unexpected misses: %v", got)
	}
}

func TestLeagueLoadedAndIndexBuilt(t *testing.T) {
	LeagueLoaded("hockey", 1200, nil)
	if got := testutil.ToFloat64(leaguePlayers); got != 1200 {
		t.Fatalf("unexpected player gauge: %v", got)
	}

	errorsBefore := testutil.ToFloat64(leagueLoadsTotal.WithLabelValues("hockey", "error"))
	LeagueLoaded("hockey", 0, errors.New("boom"))
	if got := testutil.ToFloat64(leagueLoadsTotal.WithLabelValues("hockey", "error")) - errorsBefore; got != 1 {
		t.Fatalf("unexpected error count: %v", got)
	}
	if got := testutil.ToFloat64(leaguePlayers); got != 1200 {
		t.Fatalf("failed load must not reset player gauge, got %v", got)
	}

	unmappedBefore := testutil.ToFloat64(indexAwardsTotal.WithLabelValues("unmapped"))
	IndexBuilt(5*time.Millisecond, IndexOutcomes{Indexed: 10, Unmapped: 3})
	if got := testutil.ToFloat64(indexAwardsTotal.WithLabelValues("unmapped")) - unmappedBefore; got != 3 {
		t.Fatalf("unexpected unmapped count: %v", got)
	}
}
