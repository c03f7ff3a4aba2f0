package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/domain/grid"
	"github.com/riskibarqy/league-grid/internal/domain/league"
	"github.com/riskibarqy/league-grid/internal/domain/player"
	idgen "github.com/riskibarqy/league-grid/internal/platform/id"
	"github.com/riskibarqy/league-grid/internal/platform/logging"
	"github.com/riskibarqy/league-grid/internal/platform/metrics"
)

type GridConfig struct {
	MinCellSize int
	MaxAttempts int
	Workers     int
}

func DefaultGridConfig() GridConfig {
	return GridConfig{
		MinCellSize: 3,
		MaxAttempts: 50,
		Workers:     8,
	}
}

type GenerateGridInput struct {
	Seed *int64
}

type GuessInput struct {
	GridID   string
	Row      int
	Col      int
	PlayerID int
}

// PlayerRef is a lightweight player reference for answer and search lists.
type PlayerRef struct {
	PID         int
	Name        string
	GamesPlayed int
}

type GridService struct {
	leagueRepo league.Repository
	gridRepo   grid.Repository
	engine     *IntersectionService
	ids        idgen.Generator
	cfg        GridConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewGridService(
	leagueRepo league.Repository,
	gridRepo grid.Repository,
	engine *IntersectionService,
	ids idgen.Generator,
	cfg GridConfig,
	logger *logging.Logger,
) *GridService {
	defaults := DefaultGridConfig()
	if cfg.MinCellSize < 1 {
		cfg.MinCellSize = defaults.MinCellSize
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.Workers < 1 {
		cfg.Workers = defaults.Workers
	}
	if ids == nil {
		ids = idgen.NewRandomGenerator("grd_")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &GridService{
		leagueRepo: leagueRepo,
		gridRepo:   gridRepo,
		engine:     engine,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Generate picks three row and three column constraints whose every cell has
// at least MinCellSize answers. The same seed over the same league yields the
// same grid.
func (s *GridService) Generate(ctx context.Context, input GenerateGridInput) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.Generate")
	defer span.End()

	ds, err := currentDataset(ctx, s.leagueRepo)
	if err != nil {
		return grid.Grid{}, err
	}

	seed := s.now().UnixNano()
	if input.Seed != nil {
		seed = *input.Seed
	}

	g, attempts, err := s.generate(ctx, ds, seed)
	metrics.GridGenerated(attempts, err)
	if err != nil {
		s.logger.WarnContext(ctx, "grid generation failed",
			"dataset_id", ds.ID,
			"seed", seed,
			"attempts", attempts,
			"error", err,
		)
		return grid.Grid{}, err
	}

	gridID, err := s.ids.NewID()
	if err != nil {
		return grid.Grid{}, fmt.Errorf("generate grid id: %w", err)
	}
	g.ID = gridID
	g.CreatedAt = s.now().UTC()

	if err := s.gridRepo.Save(ctx, g); err != nil {
		return grid.Grid{}, fmt.Errorf("save grid: %w", err)
	}

	s.logger.InfoContext(ctx, "grid generated",
		"grid_id", g.ID,
		"dataset_id", ds.ID,
		"seed", seed,
		"attempts", attempts,
	)

	return g, nil
}

// stillCurrent fails when another league replaced ds mid-generation, so a
// grid is never scored against one league and saved under another.
func (s *GridService) stillCurrent(ctx context.Context, ds *league.Dataset) error {
	active, err := currentDataset(ctx, s.leagueRepo)
	if err != nil {
		return err
	}
	if active != ds {
		return fmt.Errorf("%w: league changed from %s to %s while generating grid", ErrInvalidInput, ds.ID, active.ID)
	}
	return nil
}

func (s *GridService) generate(ctx context.Context, ds *league.Dataset, seed int64) (grid.Grid, int, error) {
	index, err := s.engine.Index(ctx, ds)
	if err != nil {
		return grid.Grid{}, 0, err
	}

	teams, achievements, err := s.candidates(ctx, ds, index)
	if err != nil {
		return grid.Grid{}, 0, err
	}
	if len(teams) < grid.Size {
		return grid.Grid{}, 0, fmt.Errorf("%w: only %d franchises have %d or more players", ErrGridUnavailable, len(teams), s.cfg.MinCellSize)
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return grid.Grid{}, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rng := rand.New(rand.NewSource(seed))
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return grid.Grid{}, attempt - 1, err
		}
		if err := s.stillCurrent(ctx, ds); err != nil {
			return grid.Grid{}, attempt - 1, err
		}

		rows := pickConstraints(rng, teams, grid.Size)
		if attempt%2 == 0 && len(achievements) > 0 {
			rows[grid.Size-1] = achievements[rng.Intn(len(achievements))]
		}

		columnPool := excludeConstraints(append(append([]grid.Constraint{}, achievements...), teams...), rows)
		counts, err := s.scoreColumns(ctx, pool, ds, rows, columnPool)
		if err != nil {
			return grid.Grid{}, attempt, err
		}

		eligible := make([]int, 0, len(columnPool))
		for idx, byRow := range counts {
			if minCount(byRow) >= s.cfg.MinCellSize {
				eligible = append(eligible, idx)
			}
		}
		if len(eligible) < grid.Size {
			continue
		}
		rng.Shuffle(len(eligible), func(i, j int) { eligible[i], eligible[j] = eligible[j], eligible[i] })

		g := grid.Grid{
			DatasetID: ds.ID,
			Sport:     index.Sport,
			Seed:      seed,
			Rows:      rows,
			Cols:      make([]grid.Constraint, 0, grid.Size),
		}
		for col, idx := range eligible[:grid.Size] {
			g.Cols = append(g.Cols, columnPool[idx])
			for row := range rows {
				g.Counts[row][col] = counts[idx][row]
			}
		}
		return g, attempt, nil
	}

	return grid.Grid{}, s.cfg.MaxAttempts, fmt.Errorf("%w: no valid layout after %d attempts", ErrGridUnavailable, s.cfg.MaxAttempts)
}

// candidates returns the franchises and achievements with at least
// MinCellSize players, in a stable order.
func (s *GridService) candidates(ctx context.Context, ds *league.Dataset, index *achievement.Index) (teams, achievements []grid.Constraint, err error) {
	franchises, err := listFranchises(ctx, s.engine, ds)
	if err != nil {
		return nil, nil, err
	}
	for _, item := range franchises {
		if item.Members >= s.cfg.MinCellSize {
			teams = append(teams, grid.Team(item.ID, item.Name))
		}
	}

	for _, def := range s.engine.Vocabulary().Definitions(index.Sport, ds.Bounds) {
		c := grid.Achievement(def.ID, def.Label)
		members, err := s.engine.Members(ctx, ds, c, 0)
		if err != nil {
			return nil, nil, err
		}
		if members.Len() >= s.cfg.MinCellSize {
			achievements = append(achievements, c)
		}
	}

	return teams, achievements, nil
}

// scoreColumns counts every candidate column against every row on the pool.
func (s *GridService) scoreColumns(ctx context.Context, pool *ants.Pool, ds *league.Dataset, rows, columns []grid.Constraint) ([][]int, error) {
	counts := make([][]int, len(columns))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for idx := range columns {
		idx := idx
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			byRow := make([]int, len(rows))
			for row, rc := range rows {
				count, err := s.engine.Count(ctx, ds, rc, columns[idx], 0)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
				byRow[row] = count
			}
			counts[idx] = byRow
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit column scoring: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return counts, nil
}

func pickConstraints(rng *rand.Rand, from []grid.Constraint, n int) []grid.Constraint {
	order := rng.Perm(len(from))
	out := make([]grid.Constraint, 0, n)
	for _, idx := range order[:n] {
		out = append(out, from[idx])
	}
	return out
}

func excludeConstraints(from, exclude []grid.Constraint) []grid.Constraint {
	skip := make(map[string]struct{}, len(exclude))
	for _, c := range exclude {
		skip[c.Key()] = struct{}{}
	}
	out := make([]grid.Constraint, 0, len(from))
	for _, c := range from {
		if _, ok := skip[c.Key()]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func minCount(values []int) int {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

func (s *GridService) Get(ctx context.Context, gridID string) (grid.Grid, error) {
	gridID = strings.TrimSpace(gridID)
	if gridID == "" {
		return grid.Grid{}, fmt.Errorf("%w: grid id is required", ErrInvalidInput)
	}

	g, exists, err := s.gridRepo.GetByID(ctx, gridID)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("get grid: %w", err)
	}
	if !exists {
		return grid.Grid{}, fmt.Errorf("%w: grid=%s", ErrNotFound, gridID)
	}
	return g, nil
}

// cellContext loads the grid, checks it belongs to the current league and
// resolves one cell.
func (s *GridService) cellContext(ctx context.Context, gridID string, row, col int) (grid.Grid, *league.Dataset, grid.Constraint, grid.Constraint, error) {
	g, err := s.Get(ctx, gridID)
	if err != nil {
		return grid.Grid{}, nil, grid.Constraint{}, grid.Constraint{}, err
	}
	rc, cc, err := g.Cell(row, col)
	if err != nil {
		return grid.Grid{}, nil, grid.Constraint{}, grid.Constraint{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	ds, err := currentDataset(ctx, s.leagueRepo)
	if err != nil {
		return grid.Grid{}, nil, grid.Constraint{}, grid.Constraint{}, err
	}
	if ds.ID != g.DatasetID {
		return grid.Grid{}, nil, grid.Constraint{}, grid.Constraint{}, fmt.Errorf("%w: grid %s belongs to a league that is no longer loaded", ErrInvalidInput, g.ID)
	}
	return g, ds, rc, cc, nil
}

// ValidateGuess checks one player against one cell and explains which side
// of the cell the player meets.
func (s *GridService) ValidateGuess(ctx context.Context, input GuessInput) (grid.GuessResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.ValidateGuess")
	defer span.End()

	g, ds, rc, cc, err := s.cellContext(ctx, input.GridID, input.Row, input.Col)
	if err != nil {
		return grid.GuessResult{}, err
	}

	roster, err := s.engine.Roster(ctx, ds)
	if err != nil {
		return grid.GuessResult{}, err
	}
	p, ok := roster.Get(input.PlayerID)
	if !ok {
		return grid.GuessResult{}, fmt.Errorf("%w: player=%d", ErrNotFound, input.PlayerID)
	}

	answers, err := s.engine.Intersect(ctx, ds, IntersectQuery{A: rc, B: cc})
	if err != nil {
		return grid.GuessResult{}, err
	}
	index, err := s.engine.Index(ctx, ds)
	if err != nil {
		return grid.GuessResult{}, err
	}

	explainer := newConstraintExplainer(ds, index, s.engine.Vocabulary())
	rowMet, rowReason := explainer.explain(rc, cc, p)
	colMet, colReason := explainer.explain(cc, rc, p)

	result := grid.GuessResult{
		GridID:     g.ID,
		Row:        input.Row,
		Col:        input.Col,
		PlayerID:   p.PID,
		PlayerName: p.Name,
		Correct:    containsSorted(answers.Members, p.PID),
		RowMet:     rowMet,
		ColMet:     colMet,
	}
	for _, reason := range []string{rowReason, colReason} {
		if reason != "" {
			result.Reasons = append(result.Reasons, reason)
		}
	}
	metrics.GuessValidated(result.Correct)

	return result, nil
}

// CellAnswers lists a cell's valid players, most games played first.
// limit <= 0 returns all of them.
func (s *GridService) CellAnswers(ctx context.Context, gridID string, row, col, limit int) ([]PlayerRef, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.CellAnswers")
	defer span.End()

	_, ds, rc, cc, err := s.cellContext(ctx, gridID, row, col)
	if err != nil {
		return nil, err
	}
	answers, err := s.engine.Intersect(ctx, ds, IntersectQuery{A: rc, B: cc})
	if err != nil {
		return nil, err
	}
	roster, err := s.engine.Roster(ctx, ds)
	if err != nil {
		return nil, err
	}

	return playerRefs(roster, answers.Members, limit), nil
}

func playerRefs(roster *player.Roster, pids []int, limit int) []PlayerRef {
	out := make([]PlayerRef, 0, len(pids))
	for _, pid := range pids {
		p, ok := roster.Get(pid)
		if !ok {
			continue
		}
		out = append(out, PlayerRef{
			PID:         p.PID,
			Name:        p.Name,
			GamesPlayed: achievement.ComputeCareerTotals(p).GamesPlayed,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GamesPlayed != out[j].GamesPlayed {
			return out[i].GamesPlayed > out[j].GamesPlayed
		}
		return out[i].PID < out[j].PID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func containsSorted(values []int, target int) bool {
	idx := sort.SearchInts(values, target)
	return idx < len(values) && values[idx] == target
}

// constraintExplainer renders why a player meets one side of a cell.
type constraintExplainer struct {
	ds     *league.Dataset
	index  *achievement.Index
	vocab  *achievement.Vocabulary
	labels map[int]string
}

func newConstraintExplainer(ds *league.Dataset, index *achievement.Index, vocab *achievement.Vocabulary) constraintExplainer {
	labels := make(map[int]string, len(ds.Teams))
	for fid, item := range franchiseTeams(ds.Teams) {
		labels[fid] = item.DisplayName()
	}
	return constraintExplainer{ds: ds, index: index, vocab: vocab, labels: labels}
}

func (e constraintExplainer) franchiseLabel(fid int) string {
	if label, ok := e.labels[fid]; ok {
		return label
	}
	return "Franchise " + strconv.Itoa(fid)
}

// explain reports whether p meets c. When c is a season-aligned achievement
// and other is a team, only seasons with that team count.
func (e constraintExplainer) explain(c, other grid.Constraint, p player.Player) (bool, string) {
	if c.Kind == grid.KindTeam {
		seasons := teamSeasons(p, e.index, c.TeamID)
		if len(seasons) == 0 {
			return false, ""
		}
		return true, fmt.Sprintf("Played for %s (%s)", e.franchiseLabel(c.TeamID), seasonRanges(seasons))
	}

	def, ok := e.vocab.Lookup(c.AchievementID)
	if !ok {
		return false, ""
	}
	if def.SeasonAligned() && other.Kind == grid.KindTeam {
		seasons := make([]int, 0, 2)
		for season, set := range e.index.ByTeamSeason[def.ID][other.TeamID] {
			if set.Has(p.PID) {
				seasons = append(seasons, season)
			}
		}
		if len(seasons) == 0 {
			return false, ""
		}
		sort.Ints(seasons)
		return true, fmt.Sprintf("%s with %s (%s)", def.Label, e.franchiseLabel(other.TeamID), seasonRanges(seasons))
	}

	result := achievement.Explain(def, p, achievement.EvalContext{
		Sport:      e.index.Sport,
		Franchises: e.index.Franchises,
		Vocabulary: e.vocab,
	})
	return result.Met, result.Reason
}

func teamSeasons(p player.Player, index *achievement.Index, franchise int) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0, 4)
	for _, row := range p.Stats {
		if row.Playoffs || row.IsAggregate() || row.GP <= 0 {
			continue
		}
		if index.Franchises.Of(row.TID) != franchise {
			continue
		}
		if _, dup := seen[row.Season]; dup {
			continue
		}
		seen[row.Season] = struct{}{}
		out = append(out, row.Season)
	}
	sort.Ints(out)
	return out
}

// seasonRanges renders sorted seasons as "2001-2003, 2006".
func seasonRanges(seasons []int) string {
	parts := make([]string, 0, len(seasons))
	for i := 0; i < len(seasons); {
		j := i
		for j+1 < len(seasons) && seasons[j+1] == seasons[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(seasons[i]))
		} else {
			parts = append(parts, strconv.Itoa(seasons[i])+"-"+strconv.Itoa(seasons[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
