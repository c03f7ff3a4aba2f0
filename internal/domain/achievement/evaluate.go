package achievement

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
)

// EvalContext carries what a rule needs besides the player itself.
type EvalContext struct {
	Sport      sport.Sport
	Franchises team.Franchises
	Vocabulary *Vocabulary
}

func (c EvalContext) vocabulary() *Vocabulary {
	if c.Vocabulary == nil {
		return builtin
	}
	return c.Vocabulary
}

// Result is the outcome of evaluating one achievement for one player, with a
// short human-readable reason when it is met.
type Result struct {
	ID     ID
	Met    bool
	Reason string
}

// Evaluate reports whether p satisfies def over the whole career. Award rules
// ignore teams here; team alignment lives in the index.
func Evaluate(def Definition, p player.Player, ectx EvalContext) bool {
	return Explain(def, p, ectx).Met
}

func Explain(def Definition, p player.Player, ectx EvalContext) Result {
	out := Result{ID: def.ID}

	switch rule := def.Rule.(type) {
	case AwardRule:
		seasons := awardSeasons(def.ID, p, ectx)
		if len(seasons) > 0 {
			out.Met = true
			out.Reason = fmt.Sprintf("%s (%s)", def.Label, joinInts(seasons))
		}
	case StatThresholdRule:
		value := ComputeCareerTotals(p).Value(rule.Stat)
		if value >= rule.Min {
			out.Met = true
			out.Reason = fmt.Sprintf("%s career %s", formatCount(value), statNoun(rule.Stat))
		}
	case BooleanRule:
		if rule.Flag == FlagHallOfFame && CheckHallOfFame(p) {
			out.Met = true
			out.Reason = "Inducted into the Hall of Fame"
		}
	case DraftRule:
		status := DraftStatusOf(p, ectx.Franchises)
		if status.Has(rule.Flag) {
			out.Met = true
			out.Reason = draftReason(status)
		}
	case DecadeRule:
		seasons := decadeSeasons(p, rule.Start)
		if len(seasons) > 0 {
			out.Met = true
			out.Reason = fmt.Sprintf("Played %d season(s) in the %ds", len(seasons), rule.Start)
		}
	case TenureRule:
		count := len(FranchisesPlayed(p, ectx.Franchises))
		if count >= rule.MinFranchises && count > 0 && (rule.MaxFranchises == 0 || count <= rule.MaxFranchises) {
			out.Met = true
			out.Reason = fmt.Sprintf("Played for %d franchise(s)", count)
		}
	}

	return out
}

// CareerAchievements evaluates every career-aligned definition that applies to
// the context sport.
func CareerAchievements(p player.Player, defs []Definition, ectx EvalContext) []Result {
	out := make([]Result, 0, 8)
	for _, def := range defs {
		if def.SeasonAligned() || !def.AppliesTo(ectx.Sport) {
			continue
		}
		if result := Explain(def, p, ectx); result.Met {
			out = append(out, result)
		}
	}
	return out
}

func awardSeasons(id ID, p player.Player, ectx EvalContext) []int {
	vocab := ectx.vocabulary()
	seen := make(map[int]struct{})
	out := make([]int, 0, 2)
	for _, item := range p.Awards {
		resolved, ok := vocab.Resolve(ectx.Sport, item.Type)
		if !ok || resolved != id {
			continue
		}
		if _, dup := seen[item.Season]; dup {
			continue
		}
		seen[item.Season] = struct{}{}
		out = append(out, item.Season)
	}
	return out
}

func decadeSeasons(p player.Player, start int) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0, 4)
	for _, row := range p.Stats {
		if row.Playoffs || row.GP <= 0 || row.Season < start || row.Season > start+9 {
			continue
		}
		if _, dup := seen[row.Season]; dup {
			continue
		}
		seen[row.Season] = struct{}{}
		out = append(out, row.Season)
	}
	return out
}

func draftReason(status DraftStatus) string {
	if status.Undrafted() {
		return "Went undrafted"
	}
	if status.OverallPick > 0 {
		return fmt.Sprintf("Drafted %d: round %d, pick %d (#%d overall)", status.Year, status.Round, status.Pick, status.OverallPick)
	}
	return fmt.Sprintf("Drafted %d: round %d, pick %d", status.Year, status.Round, status.Pick)
}

var statNouns = map[player.Stat]string{
	player.StatPoints:         "points",
	player.StatRebounds:       "rebounds",
	player.StatAssists:        "assists",
	player.StatSteals:         "steals",
	player.StatBlocks:         "blocks",
	player.StatThreesMade:     "threes made",
	player.StatGoals:          "goals",
	player.StatHockeyAssists:  "assists",
	player.StatHockeyPoints:   "points",
	player.StatPassingYards:   "passing yards",
	player.StatRushingYards:   "rushing yards",
	player.StatReceivingYards: "receiving yards",
	player.StatHomeRuns:       "home runs",
	player.StatHits:           "hits",
	SeasonsPlayed:             "seasons",
}

func statNoun(stat player.Stat) string {
	if noun, ok := statNouns[stat]; ok {
		return noun
	}
	return string(stat)
}

// formatCount renders 20431 as "20,431".
func formatCount(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%d", int64(v))
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}
