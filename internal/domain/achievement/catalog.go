package achievement

import (
	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

var (
	basketballOnly = []sport.Sport{sport.Basketball}
	footballOnly   = []sport.Sport{sport.Football}
	hockeyOnly     = []sport.Sport{sport.Hockey}
	baseballOnly   = []sport.Sport{sport.Baseball}
	everySport     = sport.All
)

func award(id ID, label string, sports []sport.Sport, synonyms ...string) Definition {
	return Definition{ID: id, Label: label, Category: CategoryAward, Sports: sports, Synonyms: synonyms, Rule: AwardRule{}}
}

func playoffAward(id ID, label string, sports []sport.Sport, synonyms ...string) Definition {
	return Definition{ID: id, Label: label, Category: CategoryAward, Sports: sports, Synonyms: synonyms, Rule: AwardRule{PlayoffAttributed: true}}
}

func leader(id ID, label string, sports []sport.Sport, synonyms ...string) Definition {
	return Definition{ID: id, Label: label, Category: CategoryLeader, Sports: sports, Synonyms: synonyms, Rule: AwardRule{}}
}

func threshold(id ID, label string, sports []sport.Sport, stat player.Stat, min float64) Definition {
	return Definition{ID: id, Label: label, Category: CategoryCareer, Sports: sports, Rule: StatThresholdRule{Stat: stat, Min: min}}
}

func draft(id ID, label string, flag DraftFlag) Definition {
	return Definition{ID: id, Label: label, Category: CategoryDraft, Sports: everySport, Rule: DraftRule{Flag: flag}}
}

// Catalog is the builtin achievement table. Synonyms are matched
// case-insensitively within one sport only.
var Catalog = []Definition{
	// Basketball awards.
	award("MVP", "Most Valuable Player", basketballOnly, "Most Valuable Player", "MVP", "League MVP", "Most Valuable Player Award"),
	playoffAward("FINALS_MVP", "Finals MVP", basketballOnly, "Finals MVP", "Finals Most Valuable Player", "NBA Finals MVP"),
	playoffAward("CHAMPION", "Won Championship", basketballOnly, "Won Championship", "League Champion", "Champion", "Championship"),
	award("ROY", "Rookie of the Year", basketballOnly, "Rookie of the Year", "ROY"),
	award("DPOY", "Defensive Player of the Year", basketballOnly, "Defensive Player of the Year", "DPOY"),
	award("SMOY", "Sixth Man of the Year", basketballOnly, "Sixth Man of the Year", "6MOY", "Sixth Man Award"),
	award("MIP", "Most Improved Player", basketballOnly, "Most Improved Player", "MIP"),
	award("ALL_LEAGUE", "All-League Team", basketballOnly,
		"All-League Team", "All-League", "All League", "First Team All-League", "Second Team All-League", "Third Team All-League"),
	award("ALL_DEFENSIVE", "All-Defensive Team", basketballOnly,
		"All-Defensive Team", "All-Defensive", "First Team All-Defensive", "Second Team All-Defensive", "Third Team All-Defensive"),
	award("ALL_ROOKIE", "All-Rookie Team", basketballOnly,
		"All-Rookie Team", "All-Rookie", "First Team All-Rookie", "Second Team All-Rookie", "Third Team All-Rookie"),
	award("ALL_STAR", "All-Star", basketballOnly, "All-Star", "All Star", "All-Star Selection"),
	award("ALL_STAR_MVP", "All-Star MVP", basketballOnly, "All-Star MVP", "All-Star Game MVP"),
	award("DUNK_CONTEST", "Slam Dunk Contest Winner", basketballOnly, "Slam Dunk Contest Winner", "Dunk Contest Winner"),
	award("THREE_CONTEST", "Three-Point Contest Winner", basketballOnly, "Three-Point Contest Winner", "3-Point Contest Winner"),
	leader("SCORING_LEADER", "League Scoring Leader", basketballOnly, "League Scoring Leader", "Scoring Leader", "League Points Leader"),
	leader("REBOUNDING_LEADER", "League Rebounding Leader", basketballOnly, "League Rebounding Leader", "Rebounding Leader", "League Rebounds Leader"),
	leader("ASSISTS_LEADER", "League Assists Leader", basketballOnly, "League Assists Leader", "Assists Leader"),
	leader("STEALS_LEADER", "League Steals Leader", basketballOnly, "League Steals Leader", "Steals Leader"),
	leader("BLOCKS_LEADER", "League Blocks Leader", basketballOnly, "League Blocks Leader", "Blocks Leader"),

	// Basketball career milestones.
	threshold("PTS_20K", "20,000+ Career Points", basketballOnly, player.StatPoints, 20000),
	threshold("TRB_10K", "10,000+ Career Rebounds", basketballOnly, player.StatRebounds, 10000),
	threshold("AST_5K", "5,000+ Career Assists", basketballOnly, player.StatAssists, 5000),
	threshold("STL_2K", "2,000+ Career Steals", basketballOnly, player.StatSteals, 2000),
	threshold("BLK_1500", "1,500+ Career Blocks", basketballOnly, player.StatBlocks, 1500),
	threshold("TPM_2K", "2,000+ Made Threes", basketballOnly, player.StatThreesMade, 2000),

	// Football.
	award("FB_MVP", "Most Valuable Player", footballOnly, "Most Valuable Player", "MVP", "League MVP"),
	playoffAward("FB_FINALS_MVP", "Finals MVP", footballOnly, "Finals MVP", "Championship Game MVP"),
	playoffAward("FB_CHAMPION", "Won Championship", footballOnly, "Won Championship", "League Champion", "Champion"),
	award("FB_OPOY", "Offensive Player of the Year", footballOnly, "Offensive Player of the Year", "OPOY"),
	award("FB_DPOY", "Defensive Player of the Year", footballOnly, "Defensive Player of the Year", "DPOY"),
	award("FB_OROY", "Offensive Rookie of the Year", footballOnly, "Offensive Rookie of the Year", "OROY"),
	award("FB_DROY", "Defensive Rookie of the Year", footballOnly, "Defensive Rookie of the Year", "DROY"),
	award("FB_ALL_LEAGUE", "All-League Team", footballOnly, "All-League Team", "First Team All-League", "Second Team All-League"),
	leader("FB_PASSING_LEADER", "League Passing Leader", footballOnly, "League Passing Leader", "Passing Leader"),
	leader("FB_RUSHING_LEADER", "League Rushing Leader", footballOnly, "League Rushing Leader", "Rushing Leader"),
	leader("FB_RECEIVING_LEADER", "League Receiving Leader", footballOnly, "League Receiving Leader", "Receiving Leader"),
	threshold("FB_PASS_YDS_30K", "30,000+ Career Passing Yards", footballOnly, player.StatPassingYards, 30000),
	threshold("FB_RUSH_YDS_8K", "8,000+ Career Rushing Yards", footballOnly, player.StatRushingYards, 8000),
	threshold("FB_REC_YDS_8K", "8,000+ Career Receiving Yards", footballOnly, player.StatReceivingYards, 8000),

	// Hockey.
	award("HK_MVP", "Most Valuable Player", hockeyOnly, "Most Valuable Player", "MVP", "League MVP"),
	playoffAward("HK_PLAYOFFS_MVP", "Playoffs MVP", hockeyOnly, "Playoffs MVP", "Playoff MVP", "Finals MVP"),
	playoffAward("HK_CHAMPION", "Won Championship", hockeyOnly, "Won Championship", "League Champion", "Champion"),
	award("HK_ROY", "Rookie of the Year", hockeyOnly, "Rookie of the Year", "ROY"),
	award("HK_DOY", "Defenseman of the Year", hockeyOnly, "Defenseman of the Year", "Best Defenseman"),
	award("HK_GOY", "Goalie of the Year", hockeyOnly, "Goalie of the Year", "Best Goalie"),
	award("HK_ALL_LEAGUE", "All-League Team", hockeyOnly, "All-League Team", "First Team All-League", "Second Team All-League"),
	award("HK_ALL_STAR", "All-Star", hockeyOnly, "All-Star", "All Star"),
	leader("HK_GOALS_LEADER", "League Goals Leader", hockeyOnly, "League Goals Leader", "Goals Leader"),
	leader("HK_ASSISTS_LEADER", "League Assists Leader", hockeyOnly, "League Assists Leader", "Assists Leader"),
	leader("HK_POINTS_LEADER", "League Points Leader", hockeyOnly, "League Points Leader", "Points Leader"),
	threshold("HK_GOALS_300", "300+ Career Goals", hockeyOnly, player.StatGoals, 300),
	threshold("HK_ASSISTS_500", "500+ Career Assists", hockeyOnly, player.StatHockeyAssists, 500),
	threshold("HK_POINTS_800", "800+ Career Points", hockeyOnly, player.StatHockeyPoints, 800),

	// Baseball.
	award("BB_MVP", "Most Valuable Player", baseballOnly, "Most Valuable Player", "MVP", "League MVP"),
	playoffAward("BB_FINALS_MVP", "Finals MVP", baseballOnly, "Finals MVP", "World Series MVP"),
	playoffAward("BB_CHAMPION", "Won Championship", baseballOnly, "Won Championship", "League Champion", "Champion"),
	award("BB_ROY", "Rookie of the Year", baseballOnly, "Rookie of the Year", "ROY"),
	award("BB_POY", "Pitcher of the Year", baseballOnly, "Pitcher of the Year", "Cy Young Award"),
	award("BB_RPOY", "Relief Pitcher of the Year", baseballOnly, "Relief Pitcher of the Year"),
	award("BB_GOLD_GLOVE", "Gold Glove", baseballOnly, "Gold Glove", "Gold Glove Award"),
	award("BB_SILVER_SLUGGER", "Silver Slugger", baseballOnly, "Silver Slugger", "Silver Slugger Award"),
	award("BB_ALL_STAR", "All-Star", baseballOnly, "All-Star", "All Star"),
	leader("BB_HR_LEADER", "League Home Run Leader", baseballOnly, "League Home Run Leader", "Home Run Leader"),
	threshold("BB_HR_300", "300+ Career Home Runs", baseballOnly, player.StatHomeRuns, 300),
	threshold("BB_HITS_2K", "2,000+ Career Hits", baseballOnly, player.StatHits, 2000),

	// Shared by every sport.
	{
		ID:       "HOF",
		Label:    "Hall of Fame",
		Category: CategoryCareer,
		Sports:   everySport,
		Synonyms: []string{"Inducted into the Hall of Fame", "Hall of Fame", "Hall of Fame Inductee"},
		Rule:     BooleanRule{Flag: FlagHallOfFame},
	},
	threshold("SEASONS_10", "Played 10+ Seasons", everySport, SeasonsPlayed, 10),
	threshold("SEASONS_15", "Played 15+ Seasons", everySport, SeasonsPlayed, 15),
	draft("ONE_OA", "#1 Overall Pick", DraftFirstOverall),
	draft("ROUND_1", "First Round Pick", DraftRoundOne),
	draft("ROUND_2", "Second Round Pick", DraftRoundTwo),
	draft("UNDRAFTED", "Went Undrafted", DraftUndrafted),
	{ID: "ONE_FRANCHISE", Label: "Played for Only One Franchise", Category: CategoryMisc, Sports: everySport, Rule: TenureRule{MinFranchises: 1, MaxFranchises: 1}},
	{ID: "FRANCHISES_5", Label: "Played for 5+ Franchises", Category: CategoryMisc, Sports: everySport, Rule: TenureRule{MinFranchises: 5}},
}
