package team

import "fmt"

// Team is one team row of a league export. Several rows may share a franchise
// when a team relocates or is renamed.
type Team struct {
	TID         int
	Abbrev      string
	Name        string
	Region      string
	Colors      []string
	FranchiseID *int
}

// Franchise returns the explicit franchise id, or the tid when the export has
// no franchise field.
func (t Team) Franchise() int {
	if t.FranchiseID != nil {
		return *t.FranchiseID
	}
	return t.TID
}

func (t Team) DisplayName() string {
	switch {
	case t.Region != "" && t.Name != "":
		return t.Region + " " + t.Name
	case t.Name != "":
		return t.Name
	case t.Abbrev != "":
		return t.Abbrev
	default:
		return fmt.Sprintf("Team %d", t.TID)
	}
}

// Franchises maps tid to franchise id.
type Franchises map[int]int

func NewFranchises(teams []Team) Franchises {
	out := make(Franchises, len(teams))
	for _, item := range teams {
		out[item.TID] = item.Franchise()
	}
	return out
}

// Of returns the franchise for tid. Unknown tids are their own franchise.
func (f Franchises) Of(tid int) int {
	if franchise, ok := f[tid]; ok {
		return franchise
	}
	return tid
}
