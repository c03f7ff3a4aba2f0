package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leaguegrid"

var (
	leagueLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "league_loads_total",
		Help:      "League exports loaded by sport and result",
	}, []string{"sport", "result"})

	leaguePlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "league_players",
		Help:      "Players in the currently loaded league",
	})

	indexBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "index_build_duration_seconds",
		Help:      "Achievement index build duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	indexAwardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "index_awards_total",
		Help:      "Award entries seen by the index builder by outcome",
	}, []string{"outcome"})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Intersection cache lookups by cache and result",
	}, []string{"cache", "result"})

	gridGenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grid_generations_total",
		Help:      "Grid generation attempts by result",
	}, []string{"result"})

	gridGenerationAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "grid_generation_attempts",
		Help:      "Attempts needed per grid generation",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
	})

	guessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guesses_total",
		Help:      "Validated guesses by correctness",
	}, []string{"correct"})
)

// IndexOutcomes is the per-outcome award tally of one index build.
type IndexOutcomes struct {
	Indexed       int
	Unmapped      int
	MissingSeason int
	NoTeamSeason  int
	CareerAligned int
}

func LeagueLoaded(sport string, players int, err error) {
	if err != nil {
		leagueLoadsTotal.WithLabelValues(sport, "error").Inc()
		return
	}
	leagueLoadsTotal.WithLabelValues(sport, "ok").Inc()
	leaguePlayers.Set(float64(players))
}

func IndexBuilt(elapsed time.Duration, outcomes IndexOutcomes) {
	indexBuildDuration.Observe(elapsed.Seconds())
	indexAwardsTotal.WithLabelValues("indexed").Add(float64(outcomes.Indexed))
	indexAwardsTotal.WithLabelValues("unmapped").Add(float64(outcomes.Unmapped))
	indexAwardsTotal.WithLabelValues("missing_season").Add(float64(outcomes.MissingSeason))
	indexAwardsTotal.WithLabelValues("no_team_season").Add(float64(outcomes.NoTeamSeason))
	indexAwardsTotal.WithLabelValues("career_aligned").Add(float64(outcomes.CareerAligned))
}

// CacheObserver returns a hit/miss reporter for one named cache.
func CacheObserver(cache string) func(hit bool) {
	hits := cacheLookupsTotal.WithLabelValues(cache, "hit")
	misses := cacheLookupsTotal.WithLabelValues(cache, "miss")
	return func(hit bool) {
		if hit {
			hits.Inc()
			return
		}
		misses.Inc()
	}
}

func GridGenerated(attempts int, err error) {
	gridGenerationAttempts.Observe(float64(attempts))
	if err != nil {
		gridGenerationsTotal.WithLabelValues("unavailable").Inc()
		return
	}
	gridGenerationsTotal.WithLabelValues("ok").Inc()
}

func GuessValidated(correct bool) {
	if correct {
		guessesTotal.WithLabelValues("true").Inc()
		return
	}
	guessesTotal.WithLabelValues("false").Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
