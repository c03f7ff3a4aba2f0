package achievement

import "github.com/riskibarqy/league-grid/internal/domain/player"

func intPtr(v int) *int {
	return &v
}

func regularRow(season, tid, gp int, values map[player.Stat]float64) player.StatRow {
	return player.StatRow{Season: season, TID: tid, GP: gp, Values: values}
}

func playoffRow(season, tid, gp int) player.StatRow {
	return player.StatRow{Season: season, TID: tid, GP: gp, Playoffs: true}
}

// careerOf returns a player with n consecutive seasons for one team.
func careerOf(pid, tid, firstSeason, seasons int, perSeason map[player.Stat]float64) player.Player {
	p := player.Player{PID: pid, TID: tid}
	for i := 0; i < seasons; i++ {
		p.Stats = append(p.Stats, regularRow(firstSeason+i, tid, 70, perSeason))
	}
	return p
}
