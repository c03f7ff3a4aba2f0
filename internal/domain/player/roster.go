package player

// Roster is a read-only lookup over one loaded player list.
type Roster struct {
	players []Player
	byPID   map[int]int
}

func NewRoster(players []Player) *Roster {
	byPID := make(map[int]int, len(players))
	for idx, p := range players {
		byPID[p.PID] = idx
	}
	return &Roster{players: players, byPID: byPID}
}

func (r *Roster) Get(pid int) (Player, bool) {
	if r == nil {
		return Player{}, false
	}
	idx, ok := r.byPID[pid]
	if !ok {
		return Player{}, false
	}
	return r.players[idx], true
}

func (r *Roster) All() []Player {
	if r == nil {
		return nil
	}
	return r.players
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.players)
}
