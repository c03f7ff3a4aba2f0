package httpapi

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/league-grid/internal/domain/grid"
	"github.com/riskibarqy/league-grid/internal/usecase"
)

const unmappedSampleSize = 20

type intersectionRequest struct {
	A         string `validate:"required"`
	B         string `validate:"required"`
	Season    string `validate:"omitempty,numeric"`
	CountOnly string `validate:"omitempty,boolean"`
}

type createGridRequest struct {
	Seed *int64 `json:"seed"`
}

type guessRequest struct {
	Row      *int `json:"row" validate:"required,min=0,max=2"`
	Col      *int `json:"col" validate:"required,min=0,max=2"`
	PlayerID *int `json:"pid" validate:"required,min=0"`
}

type franchiseDTO struct {
	ID      int    `json:"id"`
	Abbrev  string `json:"abbrev,omitempty"`
	Name    string `json:"name"`
	Members int    `json:"members"`
}

type diagnosticsDTO struct {
	Players        int      `json:"players"`
	Awards         int      `json:"awards"`
	Indexed        int      `json:"indexed"`
	Unmapped       int      `json:"unmapped"`
	MissingSeason  int      `json:"missingSeason"`
	NoTeamSeason   int      `json:"noTeamSeason"`
	CareerAligned  int      `json:"careerAligned"`
	UnmappedSample []string `json:"unmappedSample,omitempty"`
}

type leagueSummaryDTO struct {
	DatasetID   string         `json:"datasetId"`
	Sport       string         `json:"sport"`
	Players     int            `json:"players"`
	Teams       int            `json:"teams"`
	MinSeason   int            `json:"minSeason"`
	MaxSeason   int            `json:"maxSeason"`
	LoadedAt    string         `json:"loadedAt"`
	Franchises  []franchiseDTO `json:"franchises"`
	Diagnostics diagnosticsDTO `json:"diagnostics"`
}

type achievementDTO struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category string   `json:"category"`
	Synonyms []string `json:"synonyms,omitempty"`
	Players  int      `json:"players"`
}

type intersectionDTO struct {
	Key     string `json:"key"`
	Count   int    `json:"count"`
	Members []int  `json:"members,omitempty"`
}

type constraintDTO struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

type gridDTO struct {
	ID        string          `json:"id"`
	DatasetID string          `json:"datasetId"`
	Sport     string          `json:"sport"`
	Seed      int64           `json:"seed"`
	Rows      []constraintDTO `json:"rows"`
	Cols      []constraintDTO `json:"cols"`
	Counts    [][]int         `json:"counts"`
	CreatedAt string          `json:"createdAt"`
}

type guessResultDTO struct {
	GridID     string   `json:"gridId"`
	Row        int      `json:"row"`
	Col        int      `json:"col"`
	PlayerID   int      `json:"pid"`
	PlayerName string   `json:"playerName"`
	Correct    bool     `json:"correct"`
	RowMet     bool     `json:"rowMet"`
	ColMet     bool     `json:"colMet"`
	Reasons    []string `json:"reasons"`
}

type playerRefDTO struct {
	PID         int    `json:"pid"`
	Name        string `json:"name"`
	GamesPlayed int    `json:"gamesPlayed"`
}

type achievementResultDTO struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type draftDTO struct {
	Undrafted   bool     `json:"undrafted"`
	Year        int      `json:"year,omitempty"`
	Round       int      `json:"round,omitempty"`
	Pick        int      `json:"pick,omitempty"`
	OverallPick int      `json:"overallPick,omitempty"`
	FranchiseID *int     `json:"franchiseId,omitempty"`
	Flags       []string `json:"flags"`
}

type careerTotalsDTO struct {
	SeasonsPlayed int                `json:"seasonsPlayed"`
	GamesPlayed   int                `json:"gamesPlayed"`
	Stats         map[string]float64 `json:"stats"`
}

type playerProfileDTO struct {
	PID          int                    `json:"pid"`
	Name         string                 `json:"name"`
	HallOfFame   bool                   `json:"hallOfFame"`
	Franchises   []franchiseDTO         `json:"franchises"`
	Totals       careerTotalsDTO        `json:"totals"`
	Draft        draftDTO               `json:"draft"`
	Achievements []achievementResultDTO `json:"achievements"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func franchisesToDTO(items []usecase.Franchise) []franchiseDTO {
	out := make([]franchiseDTO, 0, len(items))
	for _, item := range items {
		out = append(out, franchiseDTO{
			ID:      item.ID,
			Abbrev:  item.Abbrev,
			Name:    item.Name,
			Members: item.Members,
		})
	}
	return out
}

func leagueSummaryToDTO(ctx context.Context, v usecase.LeagueSummary) leagueSummaryDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueSummaryToDTO")
	defer span.End()

	d := v.Diagnostics
	return leagueSummaryDTO{
		DatasetID:  v.DatasetID,
		Sport:      string(v.Sport),
		Players:    v.Players,
		Teams:      v.Teams,
		MinSeason:  v.Bounds.MinSeason,
		MaxSeason:  v.Bounds.MaxSeason,
		LoadedAt:   v.LoadedAt.UTC().Format(time.RFC3339),
		Franchises: franchisesToDTO(v.Franchises),
		Diagnostics: diagnosticsDTO{
			Players:        d.Players,
			Awards:         d.Awards,
			Indexed:        d.Indexed,
			Unmapped:       d.Unmapped,
			MissingSeason:  d.MissingSeason,
			NoTeamSeason:   d.NoTeamSeason,
			CareerAligned:  d.CareerAligned,
			UnmappedSample: d.TopUnmapped(unmappedSampleSize),
		},
	}
}

func achievementToDTO(ctx context.Context, v usecase.AchievementSummary) achievementDTO {
	ctx, span := startSpan(ctx, "httpapi.achievementToDTO")
	defer span.End()

	return achievementDTO{
		ID:       string(v.Definition.ID),
		Label:    v.Definition.Label,
		Category: string(v.Definition.Category),
		Synonyms: v.Definition.Synonyms,
		Players:  v.Players,
	}
}

func constraintToDTO(c grid.Constraint) constraintDTO {
	return constraintDTO{
		Key:   c.Key(),
		Kind:  string(c.Kind),
		Label: c.Label,
	}
}

func gridToDTO(ctx context.Context, v grid.Grid) gridDTO {
	ctx, span := startSpan(ctx, "httpapi.gridToDTO")
	defer span.End()

	out := gridDTO{
		ID:        v.ID,
		DatasetID: v.DatasetID,
		Sport:     string(v.Sport),
		Seed:      v.Seed,
		Rows:      make([]constraintDTO, 0, len(v.Rows)),
		Cols:      make([]constraintDTO, 0, len(v.Cols)),
		Counts:    make([][]int, 0, grid.Size),
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, c := range v.Rows {
		out.Rows = append(out.Rows, constraintToDTO(c))
	}
	for _, c := range v.Cols {
		out.Cols = append(out.Cols, constraintToDTO(c))
	}
	for row := 0; row < grid.Size; row++ {
		out.Counts = append(out.Counts, append([]int(nil), v.Counts[row][:]...))
	}

	return out
}

func guessResultToDTO(ctx context.Context, v grid.GuessResult) guessResultDTO {
	ctx, span := startSpan(ctx, "httpapi.guessResultToDTO")
	defer span.End()

	reasons := v.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return guessResultDTO{
		GridID:     v.GridID,
		Row:        v.Row,
		Col:        v.Col,
		PlayerID:   v.PlayerID,
		PlayerName: v.PlayerName,
		Correct:    v.Correct,
		RowMet:     v.RowMet,
		ColMet:     v.ColMet,
		Reasons:    reasons,
	}
}

func playerRefsToDTO(ctx context.Context, items []usecase.PlayerRef) []playerRefDTO {
	ctx, span := startSpan(ctx, "httpapi.playerRefsToDTO")
	defer span.End()

	out := make([]playerRefDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerRefDTO{PID: item.PID, Name: item.Name, GamesPlayed: item.GamesPlayed})
	}
	return out
}

func playerProfileToDTO(ctx context.Context, v usecase.PlayerProfile) playerProfileDTO {
	ctx, span := startSpan(ctx, "httpapi.playerProfileToDTO")
	defer span.End()

	stats := make(map[string]float64, len(v.Totals.Stats))
	for stat, value := range v.Totals.Stats {
		stats[string(stat)] = value
	}

	flags := make([]string, 0, len(v.Draft.Flags))
	for flag := range v.Draft.Flags {
		flags = append(flags, string(flag))
	}
	sort.Strings(flags)

	achievements := make([]achievementResultDTO, 0, len(v.Achievements))
	for _, item := range v.Achievements {
		achievements = append(achievements, achievementResultDTO{ID: string(item.ID), Reason: item.Reason})
	}

	return playerProfileDTO{
		PID:        v.PID,
		Name:       v.Name,
		HallOfFame: v.HallOfFame,
		Franchises: franchisesToDTO(v.Franchises),
		Totals: careerTotalsDTO{
			SeasonsPlayed: v.Totals.SeasonsPlayed,
			GamesPlayed:   v.Totals.GamesPlayed,
			Stats:         stats,
		},
		Draft: draftDTO{
			Undrafted:   v.Draft.Undrafted(),
			Year:        v.Draft.Year,
			Round:       v.Draft.Round,
			Pick:        v.Draft.Pick,
			OverallPick: v.Draft.OverallPick,
			FranchiseID: v.Draft.FranchiseID,
			Flags:       flags,
		},
		Achievements: achievements,
	}
}
