package player

// TotalTID marks the "traded, total" aggregate stat row a league export may
// emit for a season split across several teams.
const TotalTID = -1

// Award is one entry in a player's award history.
type Award struct {
	Type   string
	Season int
}

// StatRow is one per-season, per-team line. Values are keyed by canonical Stat
// after ingestion normalization.
type StatRow struct {
	Season   int
	TID      int
	Playoffs bool
	GP       int
	Values   map[Stat]float64
}

func (r StatRow) Value(stat Stat) float64 {
	if r.Values == nil {
		return 0
	}
	return r.Values[stat]
}

// IsAggregate reports whether the row is the multi-team season total.
func (r StatRow) IsAggregate() bool {
	return r.TID == TotalTID
}

// Draft mirrors the loosely-typed draft object of league exports. Pointer
// fields distinguish "absent" from an explicit zero.
type Draft struct {
	Type        string
	Year        int
	Round       *int
	Pick        *int
	OverallPick *int
	TID         *int
	OriginalTID *int
}

// Player is a read-only athlete record from a loaded league export.
type Player struct {
	PID    int
	Name   string
	TID    int
	Awards []Award
	Stats  []StatRow
	Draft  *Draft
	HOF    bool
}

func (p Player) RegularSeasonRows() []StatRow {
	out := make([]StatRow, 0, len(p.Stats))
	for _, row := range p.Stats {
		if row.Playoffs {
			continue
		}
		out = append(out, row)
	}
	return out
}
