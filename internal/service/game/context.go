package game

import (
	"fmt"
	"time"
)

// GameState 是一局游戏的聚合根。
// 整局游戏期间只由一个 GameMachine 持有，各阶段处理器按顺序就地修改它。
type GameState struct {
	GameID string `json:"game_id"`
	RoomID string `json:"room_id"`

	Phase  Phase      `json:"phase"`
	Round  int        `json:"round"`
	Status GameStatus `json:"status"`
	Winner Camp       `json:"winner,omitempty"`

	// 游戏结束原因，仅在 Finished 时有值
	EndReason string `json:"end_reason,omitempty"`

	// 按座位顺序排列，固定 6 人
	Players []*Player `json:"players"`

	// 只追加，不修改
	Events []GameEvent `json:"-"`

	// 每回合清空
	LastNightDeaths []string `json:"last_night_deaths"`

	StartedAt time.Time `json:"started_at,omitempty"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
}

func NewGameState(roomID string, players []*Player) *GameState {
	return &GameState{
		GameID:          GenID(),
		RoomID:          roomID,
		Phase:           PhaseWaiting,
		Status:          StatusWaiting,
		Players:         players,
		Events:          make([]GameEvent, 0),
		LastNightDeaths: make([]string, 0),
	}
}

func (gs *GameState) PlayerByID(playerID string) *Player {
	for _, p := range gs.Players {
		if p.ID == playerID {
			return p
		}
	}

	return nil
}

func (gs *GameState) PlayerBySeat(seat int) *Player {
	for _, p := range gs.Players {
		if p.Seat == seat {
			return p
		}
	}

	return nil
}

func (gs *GameState) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(gs.Players))
	for _, p := range gs.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}

	return alive
}

func (gs *GameState) AliveByRole(kind RoleKind) []*Player {
	res := make([]*Player, 0, 2)
	for _, p := range gs.Players {
		if p.Alive && p.Is(kind) {
			res = append(res, p)
		}
	}

	return res
}

func (gs *GameState) CountAlive() int {
	return len(gs.AlivePlayers())
}

// AddEvent 为事件补齐 ID、回合、阶段和时间戳后追加到日志
func (gs *GameState) AddEvent(event GameEvent) {
	event.ID = GenID()
	event.Round = gs.Round
	event.Phase = gs.Phase
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	gs.Events = append(gs.Events, event)
}

// EventsFor 返回指定玩家可见的事件，viewerID 为空时只返回公开事件
func (gs *GameState) EventsFor(viewerID string) []GameEvent {
	visible := make([]GameEvent, 0, len(gs.Events))
	for _, e := range gs.Events {
		if e.VisibleTo(viewerID) {
			visible = append(visible, e)
		}
	}

	return visible
}

func (gs *GameState) IsFinished() bool {
	return gs.Status == StatusFinished
}

func (gs *GameState) changePhase(phase Phase) {
	gs.Phase = phase
}

// nextRound 进入下一回合：清空昨夜死亡名单，重置存活玩家的发言和投票状态
func (gs *GameState) nextRound() {
	gs.Round++
	gs.LastNightDeaths = make([]string, 0)

	for _, p := range gs.Players {
		if !p.Alive {
			continue
		}

		p.ResetSpeech()
		p.ResetVote()
	}
}

func (gs *GameState) recordWin(win WinResult) {
	gs.Winner = win.Winner
	gs.EndReason = win.Reason
}

func (gs *GameState) finish() {
	gs.Status = StatusFinished
	gs.Phase = PhaseFinished
	gs.EndedAt = time.Now()
}

// validateRoster 检查开局前的玩家列表：恰好 6 人，座位 1..6 且不重复
func (gs *GameState) validateRoster() error {
	if len(gs.Players) != PLAYER_COUNT {
		return fmt.Errorf("%w: 当前 %d 人", ErrPlayerCount, len(gs.Players))
	}

	seen := make(map[int]bool, PLAYER_COUNT)
	ids := make(map[string]bool, PLAYER_COUNT)

	for _, p := range gs.Players {
		if p == nil {
			return fmt.Errorf("%w: 存在空玩家", ErrPlayerCount)
		}

		if p.Seat < MIN_SEAT || p.Seat > MAX_SEAT || seen[p.Seat] {
			return fmt.Errorf("%w: 座位号 %d", ErrDuplicateSeat, p.Seat)
		}

		if p.ID == "" || ids[p.ID] {
			return fmt.Errorf("%w: 玩家 ID %q", ErrDuplicateSeat, p.ID)
		}

		seen[p.Seat] = true
		ids[p.ID] = true
	}

	return nil
}

func (gs *GameState) describePlayer(playerID string) string {
	p := gs.PlayerByID(playerID)
	if p == nil {
		return "未知玩家"
	}

	return fmt.Sprintf("%s（%d号位）", p.Name, p.Seat)
}
