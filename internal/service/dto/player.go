package dto

// 房间内的玩家信息，在加入房间后有效
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
	// 可空，只对玩家本人或游戏结束后可见
	Role  string `json:"role,omitempty"`
	Alive bool   `json:"alive"`
}
