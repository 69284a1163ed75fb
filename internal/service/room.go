package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"werewolf-be/internal/service/dto"
	"werewolf-be/internal/service/game"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomConfig struct {
	SpeechOrder game.SpeechOrder
	// 0 表示每局使用随机种子
	RandomSeed      uint64
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
}

type RoomService struct {
	cfg   RoomConfig
	state *roomServiceState
}

type roomServiceState struct {
	mu sync.RWMutex

	// 从房间 ID 到房间句柄的映射
	rooms map[string]*roomEntry

	cleanUpDone chan struct{}
	closeOnce   sync.Once
}

func NewRoomService(cfg RoomConfig) *RoomService {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.SpeechOrder == "" {
		cfg.SpeechOrder = game.SpeechBySeat
	}

	state := &roomServiceState{
		rooms:       make(map[string]*roomEntry),
		cleanUpDone: make(chan struct{}),
	}

	// 启动一个 goroutine 定期清理过期的房间
	go startCleanupLoop(state, cfg)

	return &RoomService{
		cfg:   cfg,
		state: state,
	}
}

func startCleanupLoop(state *roomServiceState, cfg RoomConfig) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-state.cleanUpDone:
			return

		case now := <-ticker.C:
			state.mu.Lock()

			for roomID, entry := range state.rooms {
				if !isRoomExpired(entry, now, cfg.IdleTimeout) {
					continue
				}

				zap.S().Infof("房间 %s 长时间无操作，开始清理", roomID)

				// 通知对应的房间 goroutine 退出
				close(entry.quit)
				delete(state.rooms, roomID)
			}

			state.mu.Unlock()
		}
	}
}

// Close 停止清理协程并关闭所有房间，可以重复调用
func (rs *RoomService) Close() {
	rs.state.closeOnce.Do(func() {
		close(rs.state.cleanUpDone)

		rs.state.mu.Lock()
		defer rs.state.mu.Unlock()

		for roomID, entry := range rs.state.rooms {
			close(entry.quit)
			delete(rs.state.rooms, roomID)
		}
	})
}

func (rs *RoomService) CreateRoom(req dto.CreateRoomRequest) (dto.CreateRoomResponse, error) {
	if req.RoomName == "" {
		return dto.CreateRoomResponse{}, errors.New("房间名称不能为空")
	}
	if req.CreatorName == "" {
		return dto.CreateRoomResponse{}, errors.New("创建者名称不能为空")
	}

	roomID := uuid.New().String()[:8]
	creatorID := uuid.New().String()[:8]

	// 房主固定坐 1 号位
	creator := game.NewPlayer(creatorID, req.CreatorName, game.MIN_SEAT, game.PlayerHuman)

	r := &room{
		id:        roomID,
		name:      req.RoomName,
		creatorID: creatorID,
		players:   []*game.Player{creator},
		createdAt: time.Now(),
	}

	entry := newRoomEntry()

	rs.state.mu.Lock()
	rs.state.rooms[roomID] = entry
	rs.state.mu.Unlock()

	// 每个房间一个独立的 goroutine，房间内的状态只在其中修改
	go rs.roomLoop(r, entry)

	zap.S().Infof("房间 %s 由 %s 创建", roomID, req.CreatorName)

	return dto.CreateRoomResponse{
		RoomID: roomID,
		Creator: dto.Player{
			ID:    creator.ID,
			Name:  creator.Name,
			Seat:  creator.Seat,
			Alive: creator.Alive,
		},
	}, nil
}

func (rs *RoomService) JoinRoom(req dto.JoinRoomRequest) (dto.JoinRoomResponse, error) {
	if req.RoomID == "" {
		return dto.JoinRoomResponse{}, errors.New("房间 ID 不能为空")
	}
	if req.JoinerName == "" {
		return dto.JoinRoomResponse{}, errors.New("加入者名称不能为空")
	}

	zap.S().Debugf("房间 %s 收到加入请求：%s", req.RoomID, req.JoinerName)

	res, err := rs.dispatch(req.RoomID, RoomRequestAction{JoinRoomReq: &req})
	if err != nil {
		zap.S().Warnf("房间 %s 处理 %s 加入失败：%v", req.RoomID, req.JoinerName, err)
		return dto.JoinRoomResponse{}, err
	}

	zap.S().Infof("房间 %s 接纳玩家 %s（%d号位）", req.RoomID, res.Joiner.Name, res.Joiner.Seat)

	return dto.JoinRoomResponse{Joiner: res.Joiner}, nil
}

func (rs *RoomService) StartGame(req dto.RoomControlRequest) (dto.RoomControlResponse, error) {
	res, err := rs.dispatch(req.RoomID, RoomRequestAction{StartGameReq: &req})
	if err != nil {
		return dto.RoomControlResponse{}, err
	}

	return dto.RoomControlResponse{Room: res.Room}, nil
}

func (rs *RoomService) PauseGame(req dto.RoomControlRequest) (dto.RoomControlResponse, error) {
	res, err := rs.dispatch(req.RoomID, RoomRequestAction{PauseGameReq: &req})
	if err != nil {
		return dto.RoomControlResponse{}, err
	}

	return dto.RoomControlResponse{Room: res.Room}, nil
}

func (rs *RoomService) ResumeGame(req dto.RoomControlRequest) (dto.RoomControlResponse, error) {
	res, err := rs.dispatch(req.RoomID, RoomRequestAction{ResumeGameReq: &req})
	if err != nil {
		return dto.RoomControlResponse{}, err
	}

	return dto.RoomControlResponse{Room: res.Room}, nil
}

func (rs *RoomService) SubmitRound(req dto.SubmitRoundRequest) (dto.SubmitRoundResponse, error) {
	res, err := rs.dispatch(req.RoomID, RoomRequestAction{SubmitRoundReq: &req})
	if err != nil {
		return dto.SubmitRoundResponse{}, err
	}

	return dto.SubmitRoundResponse{
		Result: res.Result,
		Room:   res.Room,
	}, nil
}

func (rs *RoomService) Snapshot(req dto.RoomViewRequest) (dto.Room, error) {
	res, err := rs.dispatch(req.RoomID, RoomRequestAction{SnapshotReq: &req})
	if err != nil {
		return dto.Room{}, err
	}

	return res.Room, nil
}

func (rs *RoomService) Events(req dto.RoomViewRequest) (dto.RoomEventsResponse, error) {
	res, err := rs.dispatch(req.RoomID, RoomRequestAction{EventsReq: &req})
	if err != nil {
		return dto.RoomEventsResponse{}, err
	}

	return dto.RoomEventsResponse{
		RoomID: req.RoomID,
		Events: res.Events,
	}, nil
}

// dispatch 把请求交给房间协程处理，发送和等待回复各有 5 秒超时
func (rs *RoomService) dispatch(roomID string, action RoomRequestAction) (roomResponseWrapper, error) {
	if roomID == "" {
		return roomResponseWrapper{}, ErrInvalidRequest
	}

	rs.state.mu.RLock()
	entry := rs.state.rooms[roomID]
	rs.state.mu.RUnlock()

	if entry == nil {
		return roomResponseWrapper{}, ErrRoomNotFound
	}

	replyCh := make(chan roomResponseWrapper, 1)
	action.ReplyCh = replyCh

	reqTimer := time.NewTimer(REQUEST_TIMEOUT)
	defer reqTimer.Stop()

	select {
	case entry.reqCh <- action:
	case <-entry.quit:
		return roomResponseWrapper{}, ErrRoomClosed
	case <-reqTimer.C:
		zap.S().Warnf("房间 %s 无法及时处理请求", roomID)
		return roomResponseWrapper{}, ErrRoomBusy
	}

	resTimer := time.NewTimer(REQUEST_TIMEOUT)
	defer resTimer.Stop()

	select {
	case res := <-replyCh:
		return res, res.Err
	case <-entry.quit:
		return roomResponseWrapper{}, ErrRoomClosed
	case <-resTimer.C:
		zap.S().Warnf("房间 %s 请求响应超时", roomID)
		return roomResponseWrapper{}, ErrRoomBusy
	}
}

func (rs *RoomService) roomLoop(r *room, entry *roomEntry) {
	defer zap.S().Infof("房间 %s 协程退出", r.id)

	for {
		select {
		case <-entry.quit:
			zap.S().Infof("房间 %s 收到关闭指令", r.id)
			return

		case req := <-entry.reqCh:
			res := rs.handleRequest(r, req)
			entry.touch()

			req.ReplyCh <- res
		}
	}
}

func (rs *RoomService) handleRequest(r *room, req RoomRequestAction) roomResponseWrapper {
	switch {
	case req.JoinRoomReq != nil:
		joiner, err := handleJoinRoom(req.JoinRoomReq, r)
		return roomResponseWrapper{Joiner: joiner, Err: err}

	case req.StartGameReq != nil:
		if err := rs.handleStartGame(req.StartGameReq, r); err != nil {
			return roomResponseWrapper{Err: err}
		}
		return roomResponseWrapper{Room: toRoomDTO(r, req.StartGameReq.PlayerID)}

	case req.PauseGameReq != nil:
		if err := handlePauseResume(req.PauseGameReq, r, true); err != nil {
			return roomResponseWrapper{Err: err}
		}
		return roomResponseWrapper{Room: toRoomDTO(r, req.PauseGameReq.PlayerID)}

	case req.ResumeGameReq != nil:
		if err := handlePauseResume(req.ResumeGameReq, r, false); err != nil {
			return roomResponseWrapper{Err: err}
		}
		return roomResponseWrapper{Room: toRoomDTO(r, req.ResumeGameReq.PlayerID)}

	case req.SubmitRoundReq != nil:
		result, err := handleSubmitRound(req.SubmitRoundReq, r)
		if err != nil {
			return roomResponseWrapper{Err: err}
		}
		return roomResponseWrapper{
			Result: result,
			Room:   toRoomDTO(r, req.SubmitRoundReq.PlayerID),
		}

	case req.SnapshotReq != nil:
		return roomResponseWrapper{Room: toRoomDTO(r, req.SnapshotReq.ViewerID)}

	case req.EventsReq != nil:
		events := make([]game.GameEvent, 0)
		if r.machine != nil {
			events = r.machine.State().EventsFor(req.EventsReq.ViewerID)
		}
		return roomResponseWrapper{Events: events}

	default:
		return roomResponseWrapper{Err: ErrInvalidRequest}
	}
}

func handleJoinRoom(req *dto.JoinRoomRequest, r *room) (dto.Player, error) {
	if r.machine != nil {
		return dto.Player{}, game.ErrAlreadyStarted
	}

	if len(r.players) >= game.PLAYER_COUNT {
		return dto.Player{}, ErrRoomFull
	}

	playerID := uuid.New().String()[:8]
	player := game.NewPlayer(playerID, req.JoinerName, len(r.players)+1, game.PlayerHuman)

	r.players = append(r.players, player)

	return dto.Player{
		ID:    player.ID,
		Name:  player.Name,
		Seat:  player.Seat,
		Alive: player.Alive,
	}, nil
}

func (rs *RoomService) handleStartGame(req *dto.RoomControlRequest, r *room) error {
	if req.PlayerID != r.creatorID {
		return ErrNotCreator
	}

	if r.machine != nil {
		return game.ErrAlreadyStarted
	}

	rng, err := rs.newRandom()
	if err != nil {
		return err
	}

	gm, err := game.NewGameMachine(
		game.NewGameState(r.id, r.players),
		game.WithRandom(rng),
		game.WithSpeechOrder(rs.cfg.SpeechOrder),
	)
	if err != nil {
		return err
	}

	if err := gm.Init(); err != nil {
		return err
	}

	r.machine = gm

	zap.S().Infof("房间 %s 游戏开始，共 %d 名玩家", r.id, len(r.players))

	return nil
}

func handlePauseResume(req *dto.RoomControlRequest, r *room, pause bool) error {
	if req.PlayerID != r.creatorID {
		return ErrNotCreator
	}

	if r.machine == nil {
		return game.ErrNotStarted
	}

	if pause {
		return r.machine.Pause()
	}

	return r.machine.Resume()
}

func handleSubmitRound(req *dto.SubmitRoundRequest, r *room) (*game.RoundResult, error) {
	if req.PlayerID != r.creatorID {
		return nil, ErrNotCreator
	}

	if r.machine == nil {
		return nil, game.ErrNotStarted
	}

	result, err := r.machine.ExecuteRound(req.Actions)
	if err != nil {
		return nil, err
	}

	if result.Ended {
		zap.S().Infof("房间 %s 游戏结束：%s", r.id, result.Win.Reason)
	}

	return result, nil
}

func (rs *RoomService) newRandom() (game.Random, error) {
	if rs.cfg.RandomSeed != 0 {
		return game.NewRandom(rs.cfg.RandomSeed), nil
	}

	seed, err := game.NewSeed()
	if err != nil {
		return nil, fmt.Errorf("生成随机种子失败: %w", err)
	}

	return game.NewRandom(seed), nil
}
