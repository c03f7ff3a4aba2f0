package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/domain/grid"
	"github.com/riskibarqy/league-grid/internal/domain/league"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
	idgen "github.com/riskibarqy/league-grid/internal/platform/id"
	"github.com/riskibarqy/league-grid/internal/platform/logging"
	"github.com/riskibarqy/league-grid/internal/platform/metrics"
)

// LeagueDecoder turns a raw league export into a dataset.
type LeagueDecoder interface {
	Decode(ctx context.Context, r io.Reader) (*league.Dataset, error)
}

type LeagueSummary struct {
	DatasetID   string
	Sport       sport.Sport
	Players     int
	Teams       int
	Franchises  []Franchise
	Bounds      league.Bounds
	LoadedAt    time.Time
	Diagnostics achievement.Diagnostics
}

type Franchise struct {
	ID      int
	Abbrev  string
	Name    string
	Members int
}

type AchievementSummary struct {
	Definition achievement.Definition
	Players    int
}

type LeagueService struct {
	repo    league.Repository
	decoder LeagueDecoder
	engine  *IntersectionService
	ids     idgen.Generator
	logger  *logging.Logger
	now     func() time.Time
}

func NewLeagueService(
	repo league.Repository,
	decoder LeagueDecoder,
	engine *IntersectionService,
	ids idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewRandomGenerator("lg_")
	}

	return &LeagueService{
		repo:    repo,
		decoder: decoder,
		engine:  engine,
		ids:     ids,
		logger:  logger,
		now:     time.Now,
	}
}

// Load decodes an export, builds its index and makes it the current league.
// The previous league stays current when any step fails.
func (s *LeagueService) Load(ctx context.Context, r io.Reader) (LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Load")
	defer span.End()

	if s.decoder == nil {
		return LeagueSummary{}, fmt.Errorf("%w: league decoder is not configured", ErrDependencyUnavailable)
	}
	if r == nil {
		return LeagueSummary{}, fmt.Errorf("%w: league export is required", ErrInvalidInput)
	}

	ds, err := s.decoder.Decode(ctx, r)
	if err != nil {
		metrics.LeagueLoaded("unknown", 0, err)
		return LeagueSummary{}, fmt.Errorf("%w: decode league export: %w", ErrInvalidInput, err)
	}

	if ds.ID == "" {
		datasetID, err := s.ids.NewID()
		if err != nil {
			return LeagueSummary{}, fmt.Errorf("generate dataset id: %w", err)
		}
		ds.ID = datasetID
	}
	if !ds.Bounds.Valid() {
		ds.Bounds = league.ComputeBounds(ds.Players)
	}
	ds.LoadedAt = s.now().UTC()
	if err := ds.Validate(); err != nil {
		metrics.LeagueLoaded(string(ds.Sport), 0, err)
		return LeagueSummary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.engine.Reset(ctx, ds); err != nil {
		metrics.LeagueLoaded(string(ds.Sport), 0, err)
		return LeagueSummary{}, fmt.Errorf("index league: %w", err)
	}
	if err := s.repo.Replace(ctx, ds); err != nil {
		return LeagueSummary{}, fmt.Errorf("store league: %w", err)
	}
	metrics.LeagueLoaded(string(ds.Sport), len(ds.Players), nil)

	s.logger.InfoContext(ctx, "league loaded",
		"dataset_id", ds.ID,
		"sport", string(ds.Sport),
		"players", len(ds.Players),
		"teams", len(ds.Teams),
		"min_season", ds.Bounds.MinSeason,
		"max_season", ds.Bounds.MaxSeason,
	)

	return s.summarize(ctx, ds)
}

func (s *LeagueService) Current(ctx context.Context) (*league.Dataset, error) {
	return currentDataset(ctx, s.repo)
}

func (s *LeagueService) Summary(ctx context.Context) (LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Summary")
	defer span.End()

	ds, err := currentDataset(ctx, s.repo)
	if err != nil {
		return LeagueSummary{}, err
	}
	return s.summarize(ctx, ds)
}

func (s *LeagueService) summarize(ctx context.Context, ds *league.Dataset) (LeagueSummary, error) {
	index, err := s.engine.Index(ctx, ds)
	if err != nil {
		return LeagueSummary{}, err
	}
	franchises, err := listFranchises(ctx, s.engine, ds)
	if err != nil {
		return LeagueSummary{}, err
	}

	return LeagueSummary{
		DatasetID:   ds.ID,
		Sport:       index.Sport,
		Players:     len(ds.Players),
		Teams:       len(ds.Teams),
		Franchises:  franchises,
		Bounds:      ds.Bounds,
		LoadedAt:    ds.LoadedAt,
		Diagnostics: index.Diagnostics,
	}, nil
}

// Achievements lists every achievement offered for the current league with
// its player count.
func (s *LeagueService) Achievements(ctx context.Context) ([]AchievementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Achievements")
	defer span.End()

	ds, err := currentDataset(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	index, err := s.engine.Index(ctx, ds)
	if err != nil {
		return nil, err
	}

	defs := s.engine.Vocabulary().Definitions(index.Sport, ds.Bounds)
	out := make([]AchievementSummary, 0, len(defs))
	for _, def := range defs {
		members, err := s.engine.Members(ctx, ds, grid.Achievement(def.ID, def.Label), 0)
		if err != nil {
			return nil, fmt.Errorf("count achievement %s: %w", def.ID, err)
		}
		out = append(out, AchievementSummary{Definition: def, Players: members.Len()})
	}

	return out, nil
}

// Intersect answers an intersection query against the current league.
func (s *LeagueService) Intersect(ctx context.Context, q IntersectQuery) (IntersectResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Intersect")
	defer span.End()

	ds, err := currentDataset(ctx, s.repo)
	if err != nil {
		return IntersectResult{}, err
	}
	return s.engine.Intersect(ctx, ds, q)
}

func (s *LeagueService) Franchises(ctx context.Context) ([]Franchise, error) {
	ds, err := currentDataset(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	return listFranchises(ctx, s.engine, ds)
}

func currentDataset(ctx context.Context, repo league.Repository) (*league.Dataset, error) {
	ds, exists, err := repo.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current league: %w", err)
	}
	if !exists || ds == nil {
		return nil, ErrNoLeagueLoaded
	}
	return ds, nil
}

// franchiseTeams picks one display row per franchise: the last team row the
// export lists for it.
func franchiseTeams(teams []team.Team) map[int]team.Team {
	out := make(map[int]team.Team, len(teams))
	for _, item := range teams {
		out[item.Franchise()] = item
	}
	return out
}

func listFranchises(ctx context.Context, engine *IntersectionService, ds *league.Dataset) ([]Franchise, error) {
	byFranchise := franchiseTeams(ds.Teams)
	out := make([]Franchise, 0, len(byFranchise))
	for fid, item := range byFranchise {
		members, err := engine.Members(ctx, ds, grid.Team(fid, item.DisplayName()), 0)
		if err != nil {
			return nil, fmt.Errorf("count franchise %d: %w", fid, err)
		}
		out = append(out, Franchise{
			ID:      fid,
			Abbrev:  item.Abbrev,
			Name:    item.DisplayName(),
			Members: members.Len(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
