package achievement

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
)

func buildIndex(t *testing.T, input BuildInput) *Index {
	t.Helper()
	ix, err := BuildIndex(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return ix
}

func TestBuildIndexTradedSeasonAwardCountsForBothTeams(t *testing.T) {
	p := player.Player{
		PID:    1,
		Awards: []player.Award{{Type: "Most Valuable Player", Season: 2020}},
		Stats: []player.StatRow{
			regularRow(2020, 5, 50, nil),
			regularRow(2020, 7, 10, nil),
			regularRow(2020, player.TotalTID, 60, nil),
		},
	}
	ix := buildIndex(t, BuildInput{Sport: sport.Basketball, Players: []player.Player{p}})

	for _, franchise := range []int{5, 7} {
		if !ix.TeamAnySeason("MVP", franchise).Has(1) {
			t.Fatalf("expected player in MVP for franchise %d", franchise)
		}
		if !ix.TeamSeason("MVP", franchise, 2020).Has(1) {
			t.Fatalf("expected player in MVP for franchise %d season 2020", franchise)
		}
	}
	if ix.TeamAnySeason("MVP", player.TotalTID).Len() != 0 {
		t.Fatalf("aggregate row must not create a franchise entry")
	}
}

func TestBuildIndexFinalsMVPAttachesToPlayoffFranchise(t *testing.T) {
	p := player.Player{
		PID:    1,
		Awards: []player.Award{{Type: "Finals MVP", Season: 2021}, {Type: "Won Championship", Season: 2021}},
		Stats: []player.StatRow{
			regularRow(2021, 9, 30, nil),
			regularRow(2021, 3, 40, nil),
			playoffRow(2021, 3, 16),
		},
	}
	ix := buildIndex(t, BuildInput{Sport: sport.Basketball, Players: []player.Player{p}})

	for _, id := range []ID{"FINALS_MVP", "CHAMPION"} {
		if !ix.TeamAnySeason(id, 3).Has(1) {
			t.Fatalf("expected %s on franchise 3", id)
		}
		if ix.TeamAnySeason(id, 9).Has(1) {
			t.Fatalf("%s must not attach to franchise 9", id)
		}
	}
}

func TestBuildIndexSkipsWithDiagnostics(t *testing.T) {
	players := []player.Player{
		{
			PID: 1,
			Awards: []player.Award{
				{Type: "Best Haircut", Season: 2020},
				{Type: "Best Haircut", Season: 2021},
				{Type: "All-Star", Season: 0},
				{Type: "Finals MVP", Season: 2020},
				{Type: "Inducted into the Hall of Fame", Season: 2030},
				{Type: "All-Star", Season: 2019},
				{Type: "All-Star", Season: 2020},
			},
			Stats: []player.StatRow{
				regularRow(2020, 4, 60, nil),
				regularRow(2019, 4, 0, nil),
			},
		},
	}
	ix := buildIndex(t, BuildInput{Sport: sport.Basketball, Players: players})

	d := ix.Diagnostics
	if d.Awards != 7 {
		t.Fatalf("unexpected award count: %d", d.Awards)
	}
	if d.Unmapped != 2 || d.UnmappedLabels["Best Haircut"] != 2 {
		t.Fatalf("unexpected unmapped diagnostics: %+v", d)
	}
	if d.MissingSeason != 1 {
		t.Fatalf("unexpected missing season count: %d", d.MissingSeason)
	}
	if d.CareerAligned != 1 {
		t.Fatalf("unexpected career aligned count: %d", d.CareerAligned)
	}
	// Finals MVP without a playoff row, All-Star 2019 with gp 0.
	if d.NoTeamSeason != 2 {
		t.Fatalf("unexpected no team season count: %d", d.NoTeamSeason)
	}
	if d.Indexed != 1 {
		t.Fatalf("unexpected indexed count: %d", d.Indexed)
	}
	if ix.Has("HOF") {
		t.Fatalf("career achievements must not be indexed")
	}
	if ix.Has("FINALS_MVP") {
		t.Fatalf("finals MVP without playoff team must be skipped")
	}
	if got := d.TopUnmapped(1); len(got) != 1 || got[0] != "Best Haircut" {
		t.Fatalf("unexpected top unmapped: %v", got)
	}
}

func TestBuildIndexUnionIsSupersetOfSeasons(t *testing.T) {
	players := []player.Player{
		{
			PID:    1,
			Awards: []player.Award{{Type: "All-Star", Season: 2001}, {Type: "All-Star", Season: 2002}, {Type: "All-Star", Season: 2004}},
			Stats: []player.StatRow{
				regularRow(2001, 1, 82, nil),
				regularRow(2002, 1, 40, nil),
				regularRow(2002, 2, 42, nil),
				regularRow(2004, 2, 70, nil),
			},
		},
		{
			PID:    2,
			Awards: []player.Award{{Type: "All-Star", Season: 2002}, {Type: "Rookie of the Year", Season: 2001}},
			Stats: []player.StatRow{
				regularRow(2001, 2, 60, nil),
				regularRow(2002, 2, 70, nil),
			},
		},
	}
	ix := buildIndex(t, BuildInput{Sport: sport.Basketball, Players: players})

	for id, byFranchise := range ix.ByTeamSeason {
		for franchise, bySeason := range byFranchise {
			union := make(player.IDSet)
			for _, set := range bySeason {
				union.Merge(set)
			}
			anySeason := ix.ByTeamAnySeason[id][franchise]
			if !anySeason.Contains(union) || !union.Contains(anySeason) {
				t.Fatalf("union mismatch for %s/%d: seasons=%v any=%v", id, franchise, union.Sorted(), anySeason.Sorted())
			}
		}
	}

	if got := ix.TeamAnySeason("ALL_STAR", 2).Sorted(); len(got) != 2 {
		t.Fatalf("expected both players as all-stars for franchise 2, got %v", got)
	}
	if got := ix.SeasonMembers("ALL_STAR", 2002).Len(); got != 2 {
		t.Fatalf("expected two 2002 all-stars, got %d", got)
	}
}

func TestBuildIndexKeysByFranchise(t *testing.T) {
	fid := 5
	teams := []team.Team{
		{TID: 10, Abbrev: "SEA", FranchiseID: &fid},
		{TID: 11, Abbrev: "OKC", FranchiseID: &fid},
	}
	p := player.Player{
		PID:    1,
		Awards: []player.Award{{Type: "MVP", Season: 2007}, {Type: "MVP", Season: 2012}},
		Stats: []player.StatRow{
			regularRow(2007, 10, 80, nil),
			regularRow(2012, 11, 66, nil),
		},
	}
	ix := buildIndex(t, BuildInput{Sport: sport.Basketball, Players: []player.Player{p}, Teams: teams})

	if len(ix.ByTeamSeason["MVP"]) != 1 {
		t.Fatalf("expected one franchise bucket, got %d", len(ix.ByTeamSeason["MVP"]))
	}
	if ix.TeamSeason("MVP", 5, 2007).Len() != 1 || ix.TeamSeason("MVP", 5, 2012).Len() != 1 {
		t.Fatalf("expected both seasons under franchise 5")
	}
}

func TestBuildIndexDetectsSport(t *testing.T) {
	p := player.Player{
		PID:    1,
		Awards: []player.Award{{Type: "Goalie of the Year", Season: 2010}, {Type: "Most Valuable Player", Season: 2010}},
		Stats:  []player.StatRow{regularRow(2010, 2, 60, nil)},
	}
	ix := buildIndex(t, BuildInput{Players: []player.Player{p}})

	if ix.Sport != sport.Hockey {
		t.Fatalf("expected hockey, got %s", ix.Sport)
	}
	if !ix.TeamAnySeason("HK_MVP", 2).Has(1) {
		t.Fatalf("expected hockey MVP id")
	}
	if ix.Has("MVP") {
		t.Fatalf("basketball MVP must not be indexed for hockey")
	}
}

func TestBuildIndexHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildIndex(ctx, BuildInput{Sport: sport.Basketball, Players: []player.Player{{PID: 1}}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
