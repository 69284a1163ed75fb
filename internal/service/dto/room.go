package dto

import "time"

const (
	STATUS_WAITING  = "Waiting"
	STATUS_RUNNING  = "Running"
	STATUS_PAUSED   = "Paused"
	STATUS_FINISHED = "Finished"
)

type Room struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatorID string   `json:"creator_id"`
	Players   []Player `json:"players"`

	// 以下字段在游戏开始后有值
	GameID          string   `json:"game_id,omitempty"`
	Status          string   `json:"status"`
	Phase           string   `json:"phase,omitempty"`
	Round           int      `json:"round"`
	Winner          string   `json:"winner,omitempty"`
	EndReason       string   `json:"end_reason,omitempty"`
	LastNightDeaths []string `json:"last_night_deaths,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type CreateRoomRequest struct {
	RoomName    string `json:"room_name"`
	CreatorName string `json:"creator_name"`
}

type CreateRoomResponse struct {
	RoomID  string `json:"room_id"`
	Creator Player `json:"creator"`
}

// 只能在游戏开始前加入，按加入顺序分配座位
type JoinRoomRequest struct {
	RoomID     string `json:"room_id"`
	JoinerName string `json:"joiner_name"`
}

type JoinRoomResponse struct {
	Joiner Player `json:"joiner"`
}
