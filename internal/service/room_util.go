package service

import (
	"errors"
	"sync/atomic"
	"time"

	"werewolf-be/internal/service/dto"
	"werewolf-be/internal/service/game"
)

var (
	ErrRoomNotFound   = errors.New("房间不存在")
	ErrRoomFull       = errors.New("房间已满")
	ErrRoomBusy       = errors.New("房间繁忙，请稍后再试")
	ErrRoomClosed     = errors.New("房间已关闭")
	ErrNotCreator     = errors.New("只有房主可以执行该操作")
	ErrInvalidRequest = errors.New("请求参数无效")
)

const REQUEST_TIMEOUT = 5 * time.Second

// 发送给房间协程的请求，每次只会设置其中一个字段
type RoomRequestAction struct {
	JoinRoomReq    *dto.JoinRoomRequest
	StartGameReq   *dto.RoomControlRequest
	PauseGameReq   *dto.RoomControlRequest
	ResumeGameReq  *dto.RoomControlRequest
	SubmitRoundReq *dto.SubmitRoundRequest
	SnapshotReq    *dto.RoomViewRequest
	EventsReq      *dto.RoomViewRequest

	// 每个请求自带回复通道，容量为 1，房间协程不会因为调用方超时而阻塞
	ReplyCh chan roomResponseWrapper
}

type roomResponseWrapper struct {
	Room   dto.Room
	Joiner dto.Player
	Result *game.RoundResult
	Events []game.GameEvent
	Err    error
}

// room 只由所属的房间协程读写
type room struct {
	id        string
	name      string
	creatorID string
	players   []*game.Player
	machine   *game.GameMachine
	createdAt time.Time
}

// roomEntry 是服务层持有的房间句柄，清理协程只读取其中的原子字段
type roomEntry struct {
	reqCh chan RoomRequestAction
	quit  chan struct{}

	lastActive atomic.Int64
}

func newRoomEntry() *roomEntry {
	entry := &roomEntry{
		reqCh: make(chan RoomRequestAction),
		quit:  make(chan struct{}),
	}
	entry.touch()

	return entry
}

func (e *roomEntry) touch() {
	e.lastActive.Store(time.Now().UnixNano())
}

func (e *roomEntry) idleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, e.lastActive.Load()))
}

// isRoomExpired 判断房间是否长时间无人操作，游戏结束后的房间同样按空闲时间清理
func isRoomExpired(entry *roomEntry, now time.Time, idleTimeout time.Duration) bool {
	if entry == nil {
		return true
	}

	return entry.idleFor(now) > idleTimeout
}

// toRoomDTO 生成 viewerID 视角下的房间快照，身份只对本人可见，游戏结束后全部公开
func toRoomDTO(r *room, viewerID string) dto.Room {
	res := dto.Room{
		ID:        r.id,
		Name:      r.name,
		CreatorID: r.creatorID,
		Players:   make([]dto.Player, 0, len(r.players)),
		Status:    dto.STATUS_WAITING,
		CreatedAt: r.createdAt,
	}

	revealAll := false
	if r.machine != nil {
		gs := r.machine.State()

		res.GameID = gs.GameID
		res.Status = string(gs.Status)
		res.Phase = string(gs.Phase)
		res.Round = gs.Round
		res.Winner = string(gs.Winner)
		res.EndReason = gs.EndReason
		res.LastNightDeaths = append([]string(nil), gs.LastNightDeaths...)

		revealAll = gs.IsFinished()
	}

	for _, p := range r.players {
		player := dto.Player{
			ID:    p.ID,
			Name:  p.Name,
			Seat:  p.Seat,
			Alive: p.Alive,
		}

		if p.Role != nil && (revealAll || p.ID == viewerID) {
			player.Role = string(p.Role.Kind)
		}

		res.Players = append(res.Players, player)
	}

	return res
}
