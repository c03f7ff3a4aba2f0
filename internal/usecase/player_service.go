package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/domain/league"
)

// PlayerProfile is everything the engine knows about one player.
type PlayerProfile struct {
	PID          int
	Name         string
	Franchises   []Franchise
	Totals       achievement.CareerTotals
	Draft        achievement.DraftStatus
	HallOfFame   bool
	Achievements []achievement.Result
}

type PlayerService struct {
	leagueRepo league.Repository
	engine     *IntersectionService
}

func NewPlayerService(leagueRepo league.Repository, engine *IntersectionService) *PlayerService {
	return &PlayerService{
		leagueRepo: leagueRepo,
		engine:     engine,
	}
}

// Profile evaluates every achievement of the current league for one player.
func (s *PlayerService) Profile(ctx context.Context, pid int) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Profile")
	defer span.End()

	ds, err := currentDataset(ctx, s.leagueRepo)
	if err != nil {
		return PlayerProfile{}, err
	}
	index, err := s.engine.Index(ctx, ds)
	if err != nil {
		return PlayerProfile{}, err
	}
	roster, err := s.engine.Roster(ctx, ds)
	if err != nil {
		return PlayerProfile{}, err
	}
	p, ok := roster.Get(pid)
	if !ok {
		return PlayerProfile{}, fmt.Errorf("%w: player=%d", ErrNotFound, pid)
	}

	ectx := achievement.EvalContext{
		Sport:      index.Sport,
		Franchises: index.Franchises,
		Vocabulary: s.engine.Vocabulary(),
	}
	profile := PlayerProfile{
		PID:        p.PID,
		Name:       p.Name,
		Totals:     achievement.ComputeCareerTotals(p),
		Draft:      achievement.DraftStatusOf(p, index.Franchises),
		HallOfFame: achievement.CheckHallOfFame(p),
	}

	teams := franchiseTeams(ds.Teams)
	for fid := range achievement.FranchisesPlayed(p, index.Franchises) {
		item := Franchise{ID: fid, Name: fmt.Sprintf("Franchise %d", fid)}
		if row, ok := teams[fid]; ok {
			item.Abbrev = row.Abbrev
			item.Name = row.DisplayName()
		}
		profile.Franchises = append(profile.Franchises, item)
	}
	sort.Slice(profile.Franchises, func(i, j int) bool { return profile.Franchises[i].ID < profile.Franchises[j].ID })

	for _, def := range s.engine.Vocabulary().Definitions(index.Sport, ds.Bounds) {
		if result := achievement.Explain(def, p, ectx); result.Met {
			profile.Achievements = append(profile.Achievements, result)
		}
	}

	return profile, nil
}

// Search matches players by case-insensitive name substring, most games
// played first.
func (s *PlayerService) Search(ctx context.Context, query string, limit int) ([]PlayerRef, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 2 {
		return nil, fmt.Errorf("%w: query must be at least 2 characters", ErrInvalidInput)
	}

	ds, err := currentDataset(ctx, s.leagueRepo)
	if err != nil {
		return nil, err
	}
	roster, err := s.engine.Roster(ctx, ds)
	if err != nil {
		return nil, err
	}

	pids := make([]int, 0, 16)
	for _, p := range roster.All() {
		if strings.Contains(strings.ToLower(p.Name), query) {
			pids = append(pids, p.PID)
		}
	}

	return playerRefs(roster, pids, limit), nil
}
