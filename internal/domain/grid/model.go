package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

// Size is the number of rows and of columns in a grid.
const Size = 3

var (
	ErrInvalidConstraint = errors.New("invalid constraint")
	ErrCellOutOfRange    = errors.New("cell out of range")
)

type Kind string

const (
	KindTeam        Kind = "team"
	KindAchievement Kind = "achievement"
)

// Constraint is one row or column header: either "played for franchise" or
// "has achievement".
type Constraint struct {
	Kind          Kind
	TeamID        int
	AchievementID achievement.ID
	Label         string
}

func Team(franchise int, label string) Constraint {
	return Constraint{Kind: KindTeam, TeamID: franchise, Label: label}
}

func Achievement(id achievement.ID, label string) Constraint {
	return Constraint{Kind: KindAchievement, AchievementID: id, Label: label}
}

// Key is the cache key of a constraint: "team:<franchise>" or "ach:<ID>".
// Achievement ids never contain ':' or '|', so keys never collide.
func (c Constraint) Key() string {
	if c.Kind == KindTeam {
		return "team:" + strconv.Itoa(c.TeamID)
	}
	return "ach:" + string(c.AchievementID)
}

func (c Constraint) Validate() error {
	switch c.Kind {
	case KindTeam:
		if c.TeamID < 0 {
			return fmt.Errorf("%w: team id must be >= 0", ErrInvalidConstraint)
		}
	case KindAchievement:
		if !c.AchievementID.Valid() {
			return fmt.Errorf("%w: achievement id %q", ErrInvalidConstraint, c.AchievementID)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidConstraint, c.Kind)
	}
	return nil
}

// ParseConstraint reads the Key form back.
func ParseConstraint(raw string) (Constraint, error) {
	kind, value, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || value == "" {
		return Constraint{}, fmt.Errorf("%w: %q", ErrInvalidConstraint, raw)
	}

	var out Constraint
	switch strings.ToLower(kind) {
	case "team":
		franchise, err := strconv.Atoi(value)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w: team id %q", ErrInvalidConstraint, value)
		}
		out = Constraint{Kind: KindTeam, TeamID: franchise}
	case "ach", "achievement":
		out = Constraint{Kind: KindAchievement, AchievementID: achievement.ID(strings.ToUpper(value))}
	default:
		return Constraint{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidConstraint, kind)
	}

	if err := out.Validate(); err != nil {
		return Constraint{}, err
	}
	return out, nil
}

// PairKey is order independent. A positive season is appended as "@season".
func PairKey(a, b Constraint, season int) string {
	left, right := a.Key(), b.Key()
	if right < left {
		left, right = right, left
	}
	key := left + "|" + right
	if season > 0 {
		key += "@" + strconv.Itoa(season)
	}
	return key
}

// Grid is a generated puzzle over one loaded league.
type Grid struct {
	ID        string
	DatasetID string
	Sport     sport.Sport
	Seed      int64
	Rows      []Constraint
	Cols      []Constraint
	Counts    [Size][Size]int
	CreatedAt time.Time
}

func (g Grid) Cell(row, col int) (Constraint, Constraint, error) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Cols) {
		return Constraint{}, Constraint{}, fmt.Errorf("%w: row=%d col=%d", ErrCellOutOfRange, row, col)
	}
	return g.Rows[row], g.Cols[col], nil
}

// GuessResult is the verdict on one submitted player for one cell.
type GuessResult struct {
	GridID     string
	Row        int
	Col        int
	PlayerID   int
	PlayerName string
	Correct    bool
	RowMet     bool
	ColMet     bool
	Reasons    []string
}
