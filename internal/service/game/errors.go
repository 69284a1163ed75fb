package game

import "errors"

var (
	ErrNilState       = errors.New("游戏状态不能为空")
	ErrPlayerCount    = errors.New("玩家数量必须是 6 人")
	ErrDuplicateSeat  = errors.New("座位号或玩家 ID 无效")
	ErrAlreadyStarted = errors.New("游戏已经开始")
	ErrNotStarted     = errors.New("游戏尚未开始")
	ErrGameFinished   = errors.New("游戏已结束")
	ErrGamePaused     = errors.New("游戏已暂停")
)
