package game

import "fmt"

// newScenarioState 构造固定身份的六人局：1、2 号狼人，3、4 号平民，5 号预言家，6 号女巫
func newScenarioState() *GameState {
	kinds := []RoleKind{RoleWolf, RoleWolf, RolePlain, RolePlain, RoleSeer, RoleWitch}

	players := make([]*Player, 0, PLAYER_COUNT)
	for i, kind := range kinds {
		seat := i + 1
		p := NewPlayer(fmt.Sprintf("p%d", seat), fmt.Sprintf("玩家%d", seat), seat, PlayerHuman)
		p.setRole(NewRole(kind))
		players = append(players, p)
	}

	gs := NewGameState("room-test", players)
	gs.Round = 1
	gs.Phase = PhaseNight
	gs.Status = StatusRunning

	return gs
}

// newRoster 构造尚未分配身份的六名玩家
func newRoster() []*Player {
	players := make([]*Player, 0, PLAYER_COUNT)
	for seat := MIN_SEAT; seat <= MAX_SEAT; seat++ {
		players = append(players, NewPlayer(fmt.Sprintf("p%d", seat), fmt.Sprintf("玩家%d", seat), seat, PlayerHuman))
	}

	return players
}

// reverseRandom 把序列整体倒序，便于断言乱序结果
type reverseRandom struct{}

func (reverseRandom) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func countEvents(events []GameEvent, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}

	return n
}
