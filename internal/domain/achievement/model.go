package achievement

import (
	"errors"
	"regexp"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

var (
	ErrUnknownAchievement = errors.New("unknown achievement")
	ErrInvalidDefinition  = errors.New("invalid achievement definition")
	ErrDuplicateSynonym   = errors.New("duplicate achievement synonym")
)

// ID is a canonical achievement identifier such as MVP or PTS_20K.
type ID string

var idPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

func (id ID) Valid() bool {
	return idPattern.MatchString(string(id))
}

// Category decides how an achievement lines up against a team constraint.
type Category string

const (
	CategoryAward  Category = "award"
	CategoryLeader Category = "leader"
	CategoryCareer Category = "career"
	CategoryDraft  Category = "draft"
	CategoryMisc   Category = "misc"
)

// SeasonAligned reports whether the achievement must co-occur with a specific
// team-season. Everything else is judged once over a whole career.
func (c Category) SeasonAligned() bool {
	return c == CategoryAward || c == CategoryLeader
}

// Definition is one entry of the canonical vocabulary.
type Definition struct {
	ID       ID
	Label    string
	Category Category
	Sports   []sport.Sport
	Synonyms []string
	Rule     Rule
}

func (d Definition) AppliesTo(s sport.Sport) bool {
	for _, item := range d.Sports {
		if item == s {
			return true
		}
	}
	return false
}

func (d Definition) SeasonAligned() bool {
	return d.Category.SeasonAligned()
}

// Rule is the closed set of achievement shapes. Evaluate switches over the
// concrete types below.
type Rule interface {
	isRule()
}

// AwardRule is satisfied by an award entry. Playoff-attributed awards belong
// to the team the player appeared for in that postseason.
type AwardRule struct {
	PlayoffAttributed bool
}

// StatThresholdRule compares a career total against Min.
type StatThresholdRule struct {
	Stat player.Stat
	Min  float64
}

type BooleanFlag string

const FlagHallOfFame BooleanFlag = "hall_of_fame"

type BooleanRule struct {
	Flag BooleanFlag
}

type DraftRule struct {
	Flag DraftFlag
}

// DecadeRule matches players with a regular-season appearance in
// [Start, Start+9].
type DecadeRule struct {
	Start int
}

// TenureRule bounds the number of distinct franchises a player appeared for.
// MaxFranchises 0 means unbounded.
type TenureRule struct {
	MinFranchises int
	MaxFranchises int
}

func (AwardRule) isRule()         {}
func (StatThresholdRule) isRule() {}
func (BooleanRule) isRule()       {}
func (DraftRule) isRule()         {}
func (DecadeRule) isRule()        {}
func (TenureRule) isRule()        {}

// SeasonsPlayed is the pseudo-stat StatThresholdRule uses for season counts.
const SeasonsPlayed player.Stat = "seasonsPlayed"
