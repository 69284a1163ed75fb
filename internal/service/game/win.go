package game

// 胜负判定原因
const (
	REASON_ALL_DEAD     = "所有玩家死亡，游戏异常结束"
	REASON_WOLVES_GONE  = "所有狼人已被消灭"
	REASON_DIVINES_GONE = "所有神职（预言家、女巫）已死亡"
	REASON_PLAINS_GONE  = "所有平民已死亡"
	REASON_IN_PROGRESS  = "游戏进行中"
)

type WinResult struct {
	Ended  bool   `json:"ended"`
	Winner Camp   `json:"winner,omitempty"`
	Reason string `json:"reason"`

	AliveWolves  int `json:"alive_wolves"`
	AliveSeers   int `json:"alive_seers"`
	AliveWitches int `json:"alive_witches"`
	AlivePlains  int `json:"alive_plains"`
}

func (wr WinResult) AliveDivine() int {
	return wr.AliveSeers + wr.AliveWitches
}

func (wr WinResult) AliveTotal() int {
	return wr.AliveWolves + wr.AliveDivine() + wr.AlivePlains
}

func (wr WinResult) GoodWins() bool {
	return wr.Ended && wr.Winner == CampGood
}

func (wr WinResult) WolfWins() bool {
	return wr.Ended && wr.Winner == CampWolf
}

// Abnormal 表示全员死亡，双方都不算获胜
func (wr WinResult) Abnormal() bool {
	return wr.Ended && wr.Winner == CampNone
}

// EvaluateWin 只读取存活名单，不修改任何状态。
// 全员死亡必须最先判断，否则会被误判为某一方获胜。
func EvaluateWin(players []*Player) WinResult {
	var wr WinResult

	for _, p := range players {
		if p == nil || !p.Alive || p.Role == nil {
			continue
		}

		switch p.Role.Kind {
		case RoleWolf:
			wr.AliveWolves++
		case RoleSeer:
			wr.AliveSeers++
		case RoleWitch:
			wr.AliveWitches++
		case RolePlain:
			wr.AlivePlains++
		}
	}

	switch {
	case wr.AliveTotal() == 0:
		wr.Ended = true
		wr.Reason = REASON_ALL_DEAD
	case wr.AliveWolves == 0:
		wr.Ended = true
		wr.Winner = CampGood
		wr.Reason = REASON_WOLVES_GONE
	case wr.AliveDivine() == 0:
		wr.Ended = true
		wr.Winner = CampWolf
		wr.Reason = REASON_DIVINES_GONE
	case wr.AlivePlains == 0:
		wr.Ended = true
		wr.Winner = CampWolf
		wr.Reason = REASON_PLAINS_GONE
	default:
		wr.Reason = REASON_IN_PROGRESS
	}

	return wr
}
