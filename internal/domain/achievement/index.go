package achievement

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
)

const (
	cancelCheckEvery  = 512
	sportSampleLabels = 200
)

// BuildInput is one dataset handed to BuildIndex. An empty or invalid Sport is
// detected from award labels.
type BuildInput struct {
	Sport      sport.Sport
	Players    []player.Player
	Teams      []team.Team
	Vocabulary *Vocabulary
}

// Diagnostics counts what the build skipped. Skips never fail a build.
type Diagnostics struct {
	Players        int
	Awards         int
	Indexed        int
	Unmapped       int
	MissingSeason  int
	NoTeamSeason   int
	CareerAligned  int
	UnmappedLabels map[string]int
}

// TopUnmapped returns up to n unmapped labels, most frequent first.
func (d Diagnostics) TopUnmapped(n int) []string {
	labels := make([]string, 0, len(d.UnmappedLabels))
	for label := range d.UnmappedLabels {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if d.UnmappedLabels[labels[i]] != d.UnmappedLabels[labels[j]] {
			return d.UnmappedLabels[labels[i]] > d.UnmappedLabels[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if n >= 0 && len(labels) > n {
		labels = labels[:n]
	}
	return labels
}

// Index holds season-aligned achievement membership keyed by franchise.
// Every ByTeamSeason entry is also present in the ByTeamAnySeason union.
type Index struct {
	Sport           sport.Sport
	Franchises      team.Franchises
	ByTeamSeason    map[ID]map[int]map[int]player.IDSet
	ByTeamAnySeason map[ID]map[int]player.IDSet
	Diagnostics     Diagnostics
}

func (ix *Index) Has(id ID) bool {
	_, ok := ix.ByTeamAnySeason[id]
	return ok
}

// TeamAnySeason returns the players who earned id while on franchise. The
// returned set must not be modified.
func (ix *Index) TeamAnySeason(id ID, franchise int) player.IDSet {
	if set, ok := ix.ByTeamAnySeason[id][franchise]; ok {
		return set
	}
	return player.IDSet{}
}

func (ix *Index) TeamSeason(id ID, franchise, season int) player.IDSet {
	if set, ok := ix.ByTeamSeason[id][franchise][season]; ok {
		return set
	}
	return player.IDSet{}
}

// Members unions id across every franchise.
func (ix *Index) Members(id ID) player.IDSet {
	out := make(player.IDSet)
	for _, set := range ix.ByTeamAnySeason[id] {
		out.Merge(set)
	}
	return out
}

// SeasonMembers unions id across every franchise for one season.
func (ix *Index) SeasonMembers(id ID, season int) player.IDSet {
	out := make(player.IDSet)
	for _, bySeason := range ix.ByTeamSeason[id] {
		out.Merge(bySeason[season])
	}
	return out
}

func (ix *Index) IDs() []ID {
	out := make([]ID, 0, len(ix.ByTeamAnySeason))
	for id := range ix.ByTeamAnySeason {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BuildIndex makes one forward pass over every award of every player.
// Playoff-attributed awards attach to the franchise the player appeared for in
// that postseason; other season awards attach to every franchise with a
// regular-season appearance that season. Unmapped labels, awards without a
// season and awards with no team attribution are skipped and counted.
func BuildIndex(ctx context.Context, input BuildInput) (*Index, error) {
	vocab := input.Vocabulary
	if vocab == nil {
		vocab = builtin
	}

	s := input.Sport
	if !s.Valid() {
		s = sport.Detect(sampleAwardLabels(input.Players, sportSampleLabels))
	}

	ix := &Index{
		Sport:           s,
		Franchises:      team.NewFranchises(input.Teams),
		ByTeamSeason:    make(map[ID]map[int]map[int]player.IDSet),
		ByTeamAnySeason: make(map[ID]map[int]player.IDSet),
		Diagnostics: Diagnostics{
			Players:        len(input.Players),
			UnmappedLabels: make(map[string]int),
		},
	}

	for idx, p := range input.Players {
		if idx%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("build achievement index: %w", err)
			}
		}
		if len(p.Awards) == 0 {
			continue
		}
		ix.indexPlayer(vocab, p)
	}

	return ix, nil
}

func (ix *Index) indexPlayer(vocab *Vocabulary, p player.Player) {
	var regular, playoffs map[int]map[int]struct{}

	for _, item := range p.Awards {
		ix.Diagnostics.Awards++

		id, ok := vocab.Resolve(ix.Sport, item.Type)
		if !ok {
			ix.Diagnostics.Unmapped++
			ix.Diagnostics.UnmappedLabels[item.Type]++
			continue
		}
		if item.Season <= 0 {
			ix.Diagnostics.MissingSeason++
			continue
		}
		def, ok := vocab.Lookup(id)
		if !ok || !def.SeasonAligned() {
			ix.Diagnostics.CareerAligned++
			continue
		}

		if regular == nil {
			regular, playoffs = seasonFranchises(p, ix.Franchises)
		}
		targets := regular[item.Season]
		if rule, ok := def.Rule.(AwardRule); ok && rule.PlayoffAttributed {
			targets = playoffs[item.Season]
		}
		if len(targets) == 0 {
			ix.Diagnostics.NoTeamSeason++
			continue
		}

		for franchise := range targets {
			ix.insert(id, franchise, item.Season, p.PID)
		}
		ix.Diagnostics.Indexed++
	}
}

func (ix *Index) insert(id ID, franchise, season, pid int) {
	bySeason, ok := ix.ByTeamSeason[id]
	if !ok {
		bySeason = make(map[int]map[int]player.IDSet)
		ix.ByTeamSeason[id] = bySeason
	}
	seasons, ok := bySeason[franchise]
	if !ok {
		seasons = make(map[int]player.IDSet)
		bySeason[franchise] = seasons
	}
	exact, ok := seasons[season]
	if !ok {
		exact = make(player.IDSet)
		seasons[season] = exact
	}
	exact.Add(pid)

	anySeason, ok := ix.ByTeamAnySeason[id]
	if !ok {
		anySeason = make(map[int]player.IDSet)
		ix.ByTeamAnySeason[id] = anySeason
	}
	union, ok := anySeason[franchise]
	if !ok {
		union = make(player.IDSet)
		anySeason[franchise] = union
	}
	union.Add(pid)
}

// seasonFranchises maps season to the franchises with gp > 0, separately for
// the regular season and the playoffs. Aggregate rows carry no team.
func seasonFranchises(p player.Player, franchises team.Franchises) (regular, playoffs map[int]map[int]struct{}) {
	regular = make(map[int]map[int]struct{})
	playoffs = make(map[int]map[int]struct{})
	for _, row := range p.Stats {
		if row.IsAggregate() || row.GP <= 0 {
			continue
		}
		target := regular
		if row.Playoffs {
			target = playoffs
		}
		set, ok := target[row.Season]
		if !ok {
			set = make(map[int]struct{}, 1)
			target[row.Season] = set
		}
		set[franchises.Of(row.TID)] = struct{}{}
	}
	return regular, playoffs
}

func sampleAwardLabels(players []player.Player, limit int) []string {
	out := make([]string, 0, limit)
	for _, p := range players {
		for _, item := range p.Awards {
			if len(out) >= limit {
				return out
			}
			out = append(out, item.Type)
		}
	}
	return out
}
