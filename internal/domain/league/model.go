package league

import (
	"fmt"
	"time"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
)

// Bounds is the first and last season covered by a league export.
type Bounds struct {
	MinSeason int
	MaxSeason int
}

func (b Bounds) Valid() bool {
	return b.MinSeason > 0 && b.MaxSeason >= b.MinSeason
}

// Dataset is one loaded league export. It is never mutated after load; a new
// file produces a new Dataset.
type Dataset struct {
	ID       string
	Sport    sport.Sport
	Players  []player.Player
	Teams    []team.Team
	Bounds   Bounds
	LoadedAt time.Time
}

func (d *Dataset) Validate() error {
	if d == nil {
		return fmt.Errorf("dataset is required")
	}
	if d.ID == "" {
		return fmt.Errorf("dataset id is required")
	}
	if !d.Sport.Valid() {
		return fmt.Errorf("invalid dataset sport: %s", d.Sport)
	}

	return nil
}

// ComputeBounds scans stat rows and award seasons.
func ComputeBounds(players []player.Player) Bounds {
	var out Bounds
	observe := func(season int) {
		if season <= 0 {
			return
		}
		if out.MinSeason == 0 || season < out.MinSeason {
			out.MinSeason = season
		}
		if season > out.MaxSeason {
			out.MaxSeason = season
		}
	}

	for _, p := range players {
		for _, row := range p.Stats {
			observe(row.Season)
		}
		for _, award := range p.Awards {
			observe(award.Season)
		}
	}

	return out
}
