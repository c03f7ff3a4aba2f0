package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/riskibarqy/league-grid/internal/domain/league"
	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
)

func intPtr(v int) *int {
	return &v
}

func statRow(season, tid, gp int, pts float64) player.StatRow {
	return player.StatRow{Season: season, TID: tid, GP: gp, Values: map[player.Stat]float64{player.StatPoints: pts}}
}

// syntheticLeague has six franchises and 120 players who each spend six
// seasons with one franchise and six with the next.
func syntheticLeague(id string) *league.Dataset {
	teams := make([]team.Team, 0, 6)
	for tid := 0; tid < 6; tid++ {
		teams = append(teams, team.Team{TID: tid, Abbrev: fmt.Sprintf("T%d", tid), Region: "City", Name: fmt.Sprintf("Team %d", tid)})
	}

	players := make([]player.Player, 0, 120)
	for pid := 1; pid <= 120; pid++ {
		first, second := pid%6, (pid+1)%6
		start := 2000 + pid%10
		perSeason := 1500 + float64(pid%5)*200

		p := player.Player{PID: pid, Name: fmt.Sprintf("Player %03d", pid), TID: second}
		for i := 0; i < 12; i++ {
			tid := first
			if i >= 6 {
				tid = second
			}
			p.Stats = append(p.Stats, statRow(start+i, tid, 70, perSeason))
		}
		if pid%3 == 0 {
			p.Awards = append(p.Awards, player.Award{Type: "All-Star", Season: start + 2})
		}
		if pid%10 == 0 {
			p.Awards = append(p.Awards, player.Award{Type: "Most Valuable Player", Season: start + 8})
		}
		if pid%2 == 0 {
			p.Draft = &player.Draft{Year: start - 1, Round: intPtr(1), Pick: intPtr(pid%30 + 1), TID: intPtr(first)}
		}
		players = append(players, p)
	}

	return &league.Dataset{
		ID:      id,
		Sport:   sport.Basketball,
		Players: players,
		Teams:   teams,
		Bounds:  league.ComputeBounds(players),
	}
}

// scenarioLeague covers the traded-season, playoff attribution and career
// threshold cases.
func scenarioLeague() *league.Dataset {
	players := []player.Player{
		{
			PID:    1,
			Name:   "Traded MVP",
			Awards: []player.Award{{Type: "Most Valuable Player", Season: 2020}},
			Stats: []player.StatRow{
				statRow(2020, 5, 50, 1500),
				statRow(2020, 7, 10, 300),
				statRow(2020, player.TotalTID, 60, 1800),
			},
		},
		{
			PID:    2,
			Name:   "Finals Star",
			Awards: []player.Award{{Type: "Finals MVP", Season: 2021}, {Type: "Most Valuable Player", Season: 2019}},
			Stats: []player.StatRow{
				statRow(2019, 3, 82, 2500),
				statRow(2021, 3, 40, 1000),
				statRow(2021, 9, 30, 800),
				{Season: 2021, TID: 3, GP: 16, Playoffs: true},
				statRow(2022, 9, 70, 1500),
			},
		},
		{
			PID:  3,
			Name: "Scorer On Five",
			Stats: []player.StatRow{
				statRow(2001, 5, 82, 10000),
				statRow(2002, 5, 82, 10500),
			},
		},
		{
			PID:  4,
			Name: "Scorer Elsewhere",
			Stats: []player.StatRow{
				statRow(2001, 7, 82, 10000),
				statRow(2002, 7, 82, 10500),
			},
		},
		{
			PID:   5,
			Name:  "Role Player On Five",
			Stats: []player.StatRow{statRow(2001, 5, 40, 300)},
			HOF:   true,
		},
	}

	return &league.Dataset{
		ID:      "scenario",
		Sport:   sport.Basketball,
		Players: players,
		Teams: []team.Team{
			{TID: 3, Abbrev: "THR", Name: "Threes"},
			{TID: 5, Abbrev: "FIV", Name: "Fives"},
			{TID: 7, Abbrev: "SEV", Name: "Sevens"},
			{TID: 9, Abbrev: "NIN", Name: "Nines"},
		},
		Bounds: league.ComputeBounds(players),
	}
}

type stubDecoder struct {
	ds  *league.Dataset
	err error
}

func (d stubDecoder) Decode(_ context.Context, r io.Reader) (*league.Dataset, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return d.ds, d.err
}
