package player

import "github.com/riskibarqy/league-grid/internal/domain/sport"

// Stat is a canonical counting-stat key.
type Stat string

const (
	StatPoints         Stat = "pts"
	StatRebounds       Stat = "trb"
	StatOffRebounds    Stat = "orb"
	StatDefRebounds    Stat = "drb"
	StatAssists        Stat = "ast"
	StatSteals         Stat = "stl"
	StatBlocks         Stat = "blk"
	StatThreesMade     Stat = "tpm"
	StatGoals          Stat = "g"
	StatHockeyAssists  Stat = "a"
	StatHockeyPoints   Stat = "hpts"
	StatPassingYards   Stat = "pssYds"
	StatRushingYards   Stat = "rusYds"
	StatReceivingYards Stat = "recYds"
	StatHomeRuns       Stat = "hr"
	StatHits           Stat = "h"
)

// FieldSpec says where a canonical stat can be read from in a raw export row.
// Aliases are tried in order and the first present one wins. Components are
// summed only when no alias is present.
type FieldSpec struct {
	Stat       Stat
	Aliases    []string
	Components []Stat
}

// FieldTable lists, per sport, how raw field spellings map onto canonical
// stats. Specs are ordered so that components resolve before derived stats.
var FieldTable = map[sport.Sport][]FieldSpec{
	sport.Basketball: {
		{Stat: StatPoints, Aliases: []string{"pts", "points"}},
		{Stat: StatOffRebounds, Aliases: []string{"orb", "oreb"}},
		{Stat: StatDefRebounds, Aliases: []string{"drb", "dreb"}},
		{Stat: StatRebounds, Aliases: []string{"trb", "reb", "rebounds"}, Components: []Stat{StatOffRebounds, StatDefRebounds}},
		{Stat: StatAssists, Aliases: []string{"ast", "assists"}},
		{Stat: StatSteals, Aliases: []string{"stl", "steals"}},
		{Stat: StatBlocks, Aliases: []string{"blk", "blocks"}},
		{Stat: StatThreesMade, Aliases: []string{"tp", "fg3", "fg3m"}},
	},
	sport.Football: {
		{Stat: StatPassingYards, Aliases: []string{"pssYds", "passYds"}},
		{Stat: StatRushingYards, Aliases: []string{"rusYds", "rushYds"}},
		{Stat: StatReceivingYards, Aliases: []string{"recYds"}},
	},
	sport.Hockey: {
		{Stat: StatGoals, Aliases: []string{"g", "goals"}, Components: []Stat{"evG", "ppG", "shG"}},
		{Stat: StatHockeyAssists, Aliases: []string{"a", "assists"}, Components: []Stat{"evA", "ppA", "shA"}},
		{Stat: StatHockeyPoints, Aliases: []string{"pts", "points"}, Components: []Stat{StatGoals, StatHockeyAssists}},
	},
	sport.Baseball: {
		{Stat: StatHomeRuns, Aliases: []string{"hr", "homeRuns"}},
		{Stat: StatHits, Aliases: []string{"h", "hits"}},
	},
}

// NormalizeValues maps a raw export row onto canonical stats for s. Unknown
// sports use the default table. Raw fields with no table entry are dropped, except
// that a component may name a raw field directly.
func NormalizeValues(s sport.Sport, raw map[string]float64) map[Stat]float64 {
	specs, ok := FieldTable[s]
	if !ok {
		specs = FieldTable[sport.Default]
	}

	out := make(map[Stat]float64, len(specs))
	for _, spec := range specs {
		if value, found := firstAlias(raw, spec.Aliases); found {
			out[spec.Stat] = value
			continue
		}
		if len(spec.Components) == 0 {
			continue
		}

		var sum float64
		found := false
		for _, component := range spec.Components {
			if value, ok := out[component]; ok {
				sum += value
				found = true
				continue
			}
			if value, ok := raw[string(component)]; ok {
				sum += value
				found = true
			}
		}
		if found {
			out[spec.Stat] = sum
		}
	}

	return out
}

func firstAlias(raw map[string]float64, aliases []string) (float64, bool) {
	for _, alias := range aliases {
		if value, ok := raw[alias]; ok {
			return value, true
		}
	}
	return 0, false
}
