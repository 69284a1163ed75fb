package dto

import "werewolf-be/internal/service/game"

// 房主对房间的控制请求：开始、暂停、恢复
type RoomControlRequest struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

type RoomControlResponse struct {
	Room Room `json:"room"`
}

// 一整回合的决策由房主汇总后一次性提交
type SubmitRoundRequest struct {
	RoomID   string            `json:"room_id"`
	PlayerID string            `json:"player_id"`
	Actions  game.RoundActions `json:"actions"`
}

type SubmitRoundResponse struct {
	Result *game.RoundResult `json:"result"`
	Room   Room              `json:"room"`
}

// ViewerID 为空时只能看到公开信息
type RoomViewRequest struct {
	RoomID   string `json:"room_id"`
	ViewerID string `json:"viewer_id"`
}

type RoomEventsResponse struct {
	RoomID string           `json:"room_id"`
	Events []game.GameEvent `json:"events"`
}
