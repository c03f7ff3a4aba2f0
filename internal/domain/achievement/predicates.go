package achievement

import (
	"strings"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
)

type DraftFlag string

const (
	DraftUndrafted    DraftFlag = "UNDRAFTED"
	DraftFirstOverall DraftFlag = "ONE_OA"
	DraftRoundOne     DraftFlag = "ROUND_1"
	DraftRoundTwo     DraftFlag = "ROUND_2"
)

// DraftStatus is the normalized reading of a player's draft object.
type DraftStatus struct {
	Flags       map[DraftFlag]struct{}
	Year        int
	Round       int
	Pick        int
	OverallPick int
	FranchiseID *int
}

func (d DraftStatus) Has(flag DraftFlag) bool {
	_, ok := d.Flags[flag]
	return ok
}

func (d DraftStatus) Undrafted() bool {
	return d.Has(DraftUndrafted)
}

// DraftStatusOf classifies a player's draft. Any undrafted signal wins over
// round and pick values: a missing draft, type "undrafted", round 0, tid -1,
// or no round, pick or overall pick at all.
func DraftStatusOf(p player.Player, franchises team.Franchises) DraftStatus {
	d := p.Draft
	if d == nil {
		return undraftedStatus(0)
	}
	if strings.EqualFold(strings.TrimSpace(d.Type), "undrafted") {
		return undraftedStatus(d.Year)
	}
	if d.Round != nil && *d.Round == 0 {
		return undraftedStatus(d.Year)
	}
	if d.TID != nil && *d.TID == player.TotalTID {
		return undraftedStatus(d.Year)
	}

	round, pick, overall := deref(d.Round), deref(d.Pick), deref(d.OverallPick)
	if round <= 0 && pick <= 0 && overall <= 0 {
		return undraftedStatus(d.Year)
	}

	status := DraftStatus{
		Flags:       make(map[DraftFlag]struct{}, 2),
		Year:        d.Year,
		Round:       round,
		Pick:        pick,
		OverallPick: overall,
	}
	if d.TID != nil && *d.TID >= 0 {
		franchise := franchises.Of(*d.TID)
		status.FranchiseID = &franchise
	}
	if overall == 1 || (round == 1 && pick == 1) {
		status.Flags[DraftFirstOverall] = struct{}{}
	}
	switch round {
	case 1:
		status.Flags[DraftRoundOne] = struct{}{}
	case 2:
		status.Flags[DraftRoundTwo] = struct{}{}
	}

	return status
}

func undraftedStatus(year int) DraftStatus {
	return DraftStatus{
		Flags: map[DraftFlag]struct{}{DraftUndrafted: {}},
		Year:  year,
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// CareerTotals are regular-season totals over a whole career.
type CareerTotals struct {
	SeasonsPlayed int
	GamesPlayed   int
	Stats         map[player.Stat]float64
}

func (t CareerTotals) Value(stat player.Stat) float64 {
	if stat == SeasonsPlayed {
		return float64(t.SeasonsPlayed)
	}
	return t.Stats[stat]
}

func (t CareerTotals) Points() float64     { return t.Value(player.StatPoints) }
func (t CareerTotals) Rebounds() float64   { return t.Value(player.StatRebounds) }
func (t CareerTotals) Assists() float64    { return t.Value(player.StatAssists) }
func (t CareerTotals) Steals() float64     { return t.Value(player.StatSteals) }
func (t CareerTotals) Blocks() float64     { return t.Value(player.StatBlocks) }
func (t CareerTotals) ThreesMade() float64 { return t.Value(player.StatThreesMade) }

type seasonLine struct {
	gp        int
	values    map[player.Stat]float64
	aggregate bool
}

// ComputeCareerTotals sums regular-season rows one season at a time. A
// season's "traded, total" row replaces its team rows when present, so a
// split season is never counted twice. Seasons count toward SeasonsPlayed
// only with games played.
func ComputeCareerTotals(p player.Player) CareerTotals {
	bySeason := make(map[int]*seasonLine)
	for _, row := range p.Stats {
		if row.Playoffs {
			continue
		}
		line, ok := bySeason[row.Season]
		if !ok {
			line = &seasonLine{values: make(map[player.Stat]float64, len(row.Values))}
			bySeason[row.Season] = line
		}

		switch {
		case row.IsAggregate() && !line.aggregate:
			line.aggregate = true
			line.gp = row.GP
			line.values = make(map[player.Stat]float64, len(row.Values))
			for stat, value := range row.Values {
				line.values[stat] = value
			}
		case line.aggregate:
			continue
		default:
			line.gp += row.GP
			for stat, value := range row.Values {
				line.values[stat] += value
			}
		}
	}

	totals := CareerTotals{Stats: make(map[player.Stat]float64)}
	for _, line := range bySeason {
		if line.gp > 0 {
			totals.SeasonsPlayed++
		}
		totals.GamesPlayed += line.gp
		for stat, value := range line.values {
			totals.Stats[stat] += value
		}
	}

	return totals
}

// Set is a set of achievement ids.
type Set map[ID]struct{}

func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// CheckCareerThresholds returns every milestone met by totals in sport s.
// Thresholds are independent; SEASONS_10 and SEASONS_15 can both hold.
func CheckCareerThresholds(s sport.Sport, totals CareerTotals) Set {
	return builtin.CareerThresholds(s, totals)
}

func (v *Vocabulary) CareerThresholds(s sport.Sport, totals CareerTotals) Set {
	out := make(Set)
	for _, id := range v.order {
		def := v.defs[id]
		rule, ok := def.Rule.(StatThresholdRule)
		if !ok || !def.AppliesTo(s) {
			continue
		}
		if totals.Value(rule.Stat) >= rule.Min {
			out[id] = struct{}{}
		}
	}
	return out
}

// CheckHallOfFame reports the explicit flag or any award mentioning a Hall of
// Fame induction.
func CheckHallOfFame(p player.Player) bool {
	if p.HOF {
		return true
	}
	for _, item := range p.Awards {
		if strings.Contains(strings.ToLower(item.Type), "hall of fame") {
			return true
		}
	}
	return false
}

// PlayedFor reports a regular-season appearance (gp > 0) for franchise.
// Season 0 matches any season.
func PlayedFor(p player.Player, franchises team.Franchises, franchise, season int) bool {
	for _, row := range p.Stats {
		if row.Playoffs || row.IsAggregate() || row.GP <= 0 {
			continue
		}
		if season != 0 && row.Season != season {
			continue
		}
		if franchises.Of(row.TID) == franchise {
			return true
		}
	}
	return false
}

// FranchisesPlayed returns every franchise with a regular-season appearance.
func FranchisesPlayed(p player.Player, franchises team.Franchises) map[int]struct{} {
	out := make(map[int]struct{})
	for _, row := range p.Stats {
		if row.Playoffs || row.IsAggregate() || row.GP <= 0 {
			continue
		}
		out[franchises.Of(row.TID)] = struct{}{}
	}
	return out
}
