package usecase

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/sourcegraph/conc/iter"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/domain/grid"
	"github.com/riskibarqy/league-grid/internal/domain/league"
	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/platform/cache"
	"github.com/riskibarqy/league-grid/internal/platform/logging"
	"github.com/riskibarqy/league-grid/internal/platform/metrics"
)

// IntersectQuery asks for the players satisfying both A and B. A positive
// Season narrows team constraints to that season's roster and season-aligned
// achievements to that season's winners.
type IntersectQuery struct {
	A         grid.Constraint
	B         grid.Constraint
	Season    int
	WantCount bool
}

// IntersectResult carries Members only when the query did not ask for a count.
type IntersectResult struct {
	Key     string
	Count   int
	Members []int
}

// engineState is everything derived from one dataset.
type engineState struct {
	version uint64
	dataset *league.Dataset
	index   *achievement.Index
	roster  *player.Roster
}

func (st *engineState) ectx(vocab *achievement.Vocabulary) achievement.EvalContext {
	return achievement.EvalContext{
		Sport:      st.index.Sport,
		Franchises: st.index.Franchises,
		Vocabulary: vocab,
	}
}

// IntersectionService answers team/achievement intersection queries over one
// dataset at a time. Member sets and pair results are memoized; supplying a
// different dataset rebuilds the index and drops every cached result. The
// replaced state stays readable so a caller still holding the previous
// dataset does not force another rebuild.
type IntersectionService struct {
	vocab   *achievement.Vocabulary
	logger  *logging.Logger
	workers int

	mu       sync.RWMutex
	state    *engineState
	previous *engineState
	version  uint64
	builds   singleflight.Group

	members *cache.Store[player.IDSet]
	pairs   *cache.Store[player.IDSet]
}

func NewIntersectionService(vocab *achievement.Vocabulary, logger *logging.Logger) *IntersectionService {
	if vocab == nil {
		vocab = achievement.Builtin()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &IntersectionService{
		vocab:   vocab,
		logger:  logger,
		workers: runtime.GOMAXPROCS(0),
		members: cache.NewStore[player.IDSet](0, cache.WithObserver(metrics.CacheObserver("members"))),
		pairs:   cache.NewStore[player.IDSet](0, cache.WithObserver(metrics.CacheObserver("pairs"))),
	}
}

func (s *IntersectionService) Vocabulary() *achievement.Vocabulary {
	return s.vocab
}

// Reset makes ds the active dataset, building its index unless ds is already
// active or was active just before.
func (s *IntersectionService) Reset(ctx context.Context, ds *league.Dataset) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntersectionService.Reset")
	defer span.End()

	st, err := s.reset(ctx, ds)
	if err != nil {
		return err
	}
	s.promote(st)
	return nil
}

// promote swaps a previous state back in. Cache keys carry the state version,
// so entries memoized for either state stay valid.
func (s *IntersectionService) promote(st *engineState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != st {
		s.previous, s.state = s.state, st
	}
}

func (s *IntersectionService) reset(ctx context.Context, ds *league.Dataset) (*engineState, error) {
	if ds == nil {
		return nil, ErrNoLeagueLoaded
	}
	if st := s.lookup(ds); st != nil {
		return st, nil
	}

	raw, err, _ := s.builds.Do(fmt.Sprintf("%p", ds), func() (any, error) {
		if st := s.lookup(ds); st != nil {
			return st, nil
		}
		return s.build(ctx, ds)
	})
	if err != nil {
		return nil, err
	}
	return raw.(*engineState), nil
}

// lookup returns the active or the previous state built from ds.
func (s *IntersectionService) lookup(ds *league.Dataset) *engineState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != nil && s.state.dataset == ds {
		return s.state
	}
	if s.previous != nil && s.previous.dataset == ds {
		return s.previous
	}
	return nil
}

func (s *IntersectionService) build(ctx context.Context, ds *league.Dataset) (*engineState, error) {
	start := time.Now()
	index, err := achievement.BuildIndex(ctx, achievement.BuildInput{
		Sport:      ds.Sport,
		Players:    ds.Players,
		Teams:      ds.Teams,
		Vocabulary: s.vocab,
	})
	if err != nil {
		return nil, fmt.Errorf("build achievement index: %w", err)
	}
	elapsed := time.Since(start)

	d := index.Diagnostics
	metrics.IndexBuilt(elapsed, metrics.IndexOutcomes{
		Indexed:       d.Indexed,
		Unmapped:      d.Unmapped,
		MissingSeason: d.MissingSeason,
		NoTeamSeason:  d.NoTeamSeason,
		CareerAligned: d.CareerAligned,
	})
	s.logger.InfoContext(ctx, "achievement index built",
		"dataset_id", ds.ID,
		"sport", string(index.Sport),
		"players", d.Players,
		"awards", d.Awards,
		"indexed", d.Indexed,
		"duration_ms", elapsed.Milliseconds(),
	)
	if d.Unmapped > 0 {
		s.logger.WarnContext(ctx, "skipped unmapped award labels",
			"dataset_id", ds.ID,
			"count", d.Unmapped,
			"sample", d.TopUnmapped(10),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.previous = s.state
	s.state = &engineState{
		version: s.version,
		dataset: ds,
		index:   index,
		roster:  player.NewRoster(ds.Players),
	}
	s.members.Clear()
	s.pairs.Clear()

	return s.state, nil
}

// ClearCaches drops memoized sets without touching the index.
func (s *IntersectionService) ClearCaches() {
	s.members.Clear()
	s.pairs.Clear()
}

// current returns the state for ds, rebuilding when ds is neither the active
// nor the previous dataset.
func (s *IntersectionService) current(ctx context.Context, ds *league.Dataset) (*engineState, error) {
	return s.reset(ctx, ds)
}

func (s *IntersectionService) Index(ctx context.Context, ds *league.Dataset) (*achievement.Index, error) {
	st, err := s.current(ctx, ds)
	if err != nil {
		return nil, err
	}
	return st.index, nil
}

func (s *IntersectionService) Roster(ctx context.Context, ds *league.Dataset) (*player.Roster, error) {
	st, err := s.current(ctx, ds)
	if err != nil {
		return nil, err
	}
	return st.roster, nil
}

// Members returns the players satisfying c alone. The returned set is shared
// with the cache and must not be modified.
func (s *IntersectionService) Members(ctx context.Context, ds *league.Dataset, c grid.Constraint, season int) (player.IDSet, error) {
	st, err := s.current(ctx, ds)
	if err != nil {
		return nil, err
	}
	return s.memberSet(ctx, st, c, season)
}

func (s *IntersectionService) Intersect(ctx context.Context, ds *league.Dataset, q IntersectQuery) (IntersectResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntersectionService.Intersect")
	defer span.End()

	if q.Season < 0 {
		return IntersectResult{}, fmt.Errorf("%w: season must be >= 0", ErrInvalidInput)
	}
	st, err := s.current(ctx, ds)
	if err != nil {
		return IntersectResult{}, err
	}

	set, err := s.pair(ctx, st, q.A, q.B, q.Season)
	if err != nil {
		return IntersectResult{}, err
	}

	out := IntersectResult{
		Key:   grid.PairKey(q.A, q.B, q.Season),
		Count: set.Len(),
	}
	if !q.WantCount {
		out.Members = set.Sorted()
	}
	return out, nil
}

func (s *IntersectionService) Count(ctx context.Context, ds *league.Dataset, a, b grid.Constraint, season int) (int, error) {
	result, err := s.Intersect(ctx, ds, IntersectQuery{A: a, B: b, Season: season, WantCount: true})
	if err != nil {
		return 0, err
	}
	return result.Count, nil
}

func versionKey(st *engineState, key string) string {
	return strconv.FormatUint(st.version, 10) + "/" + key
}

func (s *IntersectionService) pair(ctx context.Context, st *engineState, a, b grid.Constraint, season int) (player.IDSet, error) {
	for _, c := range []grid.Constraint{a, b} {
		if err := s.validate(st, c); err != nil {
			return nil, err
		}
	}

	return s.pairs.GetOrLoad(ctx, versionKey(st, grid.PairKey(a, b, season)), func(ctx context.Context) (player.IDSet, error) {
		if a.Kind == grid.KindAchievement && b.Kind == grid.KindTeam {
			a, b = b, a
		}

		if a.Kind == grid.KindTeam && b.Kind == grid.KindAchievement {
			def, _ := s.vocab.Lookup(b.AchievementID)
			if def.SeasonAligned() {
				if season > 0 {
					return st.index.TeamSeason(b.AchievementID, a.TeamID, season), nil
				}
				return st.index.TeamAnySeason(b.AchievementID, a.TeamID), nil
			}
		}

		left, err := s.memberSet(ctx, st, a, season)
		if err != nil {
			return nil, err
		}
		right, err := s.memberSet(ctx, st, b, season)
		if err != nil {
			return nil, err
		}
		return left.Intersect(right), nil
	})
}

func (s *IntersectionService) validate(st *engineState, c grid.Constraint) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if c.Kind != grid.KindAchievement {
		return nil
	}
	def, ok := s.vocab.Lookup(c.AchievementID)
	if !ok {
		return fmt.Errorf("%w: unknown achievement %s", ErrInvalidInput, c.AchievementID)
	}
	if !def.AppliesTo(st.index.Sport) {
		return fmt.Errorf("%w: achievement %s does not apply to %s", ErrInvalidInput, c.AchievementID, st.index.Sport)
	}
	return nil
}

func (s *IntersectionService) memberSet(ctx context.Context, st *engineState, c grid.Constraint, season int) (player.IDSet, error) {
	if err := s.validate(st, c); err != nil {
		return nil, err
	}

	def, _ := s.vocab.Lookup(c.AchievementID)
	if c.Kind == grid.KindAchievement && !def.SeasonAligned() {
		season = 0
	}
	key := c.Key()
	if season > 0 {
		key += "@" + strconv.Itoa(season)
	}

	return s.members.GetOrLoad(ctx, versionKey(st, key), func(ctx context.Context) (player.IDSet, error) {
		if c.Kind == grid.KindTeam {
			return teamMembers(st, c.TeamID, season), nil
		}
		if def.SeasonAligned() {
			if season > 0 {
				return st.index.SeasonMembers(c.AchievementID, season), nil
			}
			return st.index.Members(c.AchievementID), nil
		}
		return s.careerMembers(ctx, st, def)
	})
}

func teamMembers(st *engineState, franchise, season int) player.IDSet {
	out := make(player.IDSet)
	for _, p := range st.dataset.Players {
		if achievement.PlayedFor(p, st.index.Franchises, franchise, season) {
			out.Add(p.PID)
		}
	}
	return out
}

func (s *IntersectionService) careerMembers(ctx context.Context, st *engineState, def achievement.Definition) (player.IDSet, error) {
	ectx := st.ectx(s.vocab)
	mapper := iter.Mapper[player.Player, bool]{MaxGoroutines: s.workers}
	met := mapper.Map(st.dataset.Players, func(p *player.Player) bool {
		return achievement.Evaluate(def, *p, ectx)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(player.IDSet)
	for idx, ok := range met {
		if ok {
			out.Add(st.dataset.Players[idx].PID)
		}
	}
	return out, nil
}
