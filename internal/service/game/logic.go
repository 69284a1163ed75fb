package game

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// 一局游戏分为 4 个阶段：
// 1. 等待阶段（Waiting）：玩家入座，等待房主开始游戏
// 2. 夜晚阶段（Night）：狼人击杀、预言家查验、女巫用药
// 3. 白天阶段（Day）：公布死讯、遗言、发言、投票、放逐
// 4. 结束阶段（Finished）：一方阵营获胜，游戏结束
//
// 夜晚和白天交替进行，每次从白天回到夜晚时回合数加一。

type StageHandler interface {
	Stage() Phase

	OnEnter(gs *GameState)
	OnHandle(gs *GameState, actions RoundActions, result *RoundResult)
	OnExit(gs *GameState)

	SetOnSwitch(func(next Phase))
}

// 等待阶段只在开局前存在，回合输入不会到达这里
type waitStageHandler struct {
	onSwitch func(Phase)
}

func NewWaitStageHandler() *waitStageHandler {
	return &waitStageHandler{}
}

func (wsh *waitStageHandler) Stage() Phase {
	return PhaseWaiting
}

func (wsh *waitStageHandler) OnEnter(gs *GameState) {}

func (wsh *waitStageHandler) OnHandle(gs *GameState, actions RoundActions, result *RoundResult) {}

func (wsh *waitStageHandler) OnExit(gs *GameState) {
	gs.AddEvent(PublicEvent(
		EVENT_GAME_START,
		fmt.Sprintf("游戏开始，共 %d 名玩家：2 名狼人、1 名预言家、1 名女巫、2 名平民", len(gs.Players)),
	))
}

func (wsh *waitStageHandler) SetOnSwitch(fn func(Phase)) {
	wsh.onSwitch = fn
}

type nightStageHandler struct {
	onSwitch func(Phase)
	resolver *NightResolver
}

func NewNightStageHandler(resolver *NightResolver) *nightStageHandler {
	return &nightStageHandler{
		resolver: resolver,
	}
}

func (nsh *nightStageHandler) Stage() Phase {
	return PhaseNight
}

func (nsh *nightStageHandler) OnEnter(gs *GameState) {
	gs.AddEvent(PublicEvent(
		EVENT_NIGHT_START,
		fmt.Sprintf("第 %d 夜，天黑请闭眼", gs.Round),
	))
}

func (nsh *nightStageHandler) OnHandle(gs *GameState, actions RoundActions, result *RoundResult) {
	night := nsh.resolver.Resolve(gs, actions)
	result.Night = &night

	zap.L().Debug(
		"夜晚结算完成",
		zap.String("game_id", gs.GameID),
		zap.Int("round", gs.Round),
		zap.Strings("deaths", night.Deaths),
	)

	if settle(gs, result) {
		nsh.onSwitch(PhaseFinished)
		return
	}

	nsh.onSwitch(PhaseDay)
}

func (nsh *nightStageHandler) OnExit(gs *GameState) {}

func (nsh *nightStageHandler) SetOnSwitch(fn func(Phase)) {
	nsh.onSwitch = fn
}

type dayStageHandler struct {
	onSwitch func(Phase)
	resolver *DayResolver
}

func NewDayStageHandler(resolver *DayResolver) *dayStageHandler {
	return &dayStageHandler{
		resolver: resolver,
	}
}

func (dsh *dayStageHandler) Stage() Phase {
	return PhaseDay
}

func (dsh *dayStageHandler) OnEnter(gs *GameState) {
	gs.AddEvent(PublicEvent(
		EVENT_DAY_START,
		fmt.Sprintf("第 %d 天，天亮了", gs.Round),
	))
}

func (dsh *dayStageHandler) OnHandle(gs *GameState, actions RoundActions, result *RoundResult) {
	day := dsh.resolver.Resolve(gs, slices.Clone(gs.LastNightDeaths), actions)
	result.Day = &day

	zap.L().Debug(
		"白天结算完成",
		zap.String("game_id", gs.GameID),
		zap.Int("round", gs.Round),
		zap.String("exiled", day.ExiledID),
		zap.Bool("tie", day.Vote.Tie),
	)

	if settle(gs, result) {
		dsh.onSwitch(PhaseFinished)
		return
	}

	dsh.onSwitch(PhaseNight)
}

func (dsh *dayStageHandler) OnExit(gs *GameState) {
	// 回到夜晚才算进入新回合，游戏结束时回合数保持不变
	if gs.Phase == PhaseNight {
		gs.nextRound()
	}
}

func (dsh *dayStageHandler) SetOnSwitch(fn func(Phase)) {
	dsh.onSwitch = fn
}

type finishStageHandler struct {
	onSwitch func(Phase)
}

func NewFinishStageHandler() *finishStageHandler {
	return &finishStageHandler{}
}

func (fsh *finishStageHandler) Stage() Phase {
	return PhaseFinished
}

func (fsh *finishStageHandler) OnEnter(gs *GameState) {
	gs.finish()

	winner := "好人阵营"
	if gs.Winner == CampWolf {
		winner = "狼人阵营"
	} else if gs.Winner == CampNone {
		winner = "无人"
	}

	gs.AddEvent(PublicEvent(
		EVENT_GAME_END,
		fmt.Sprintf("游戏结束，%s获胜（%s）", winner, gs.EndReason),
	))

	zap.L().Info(
		"游戏结束",
		zap.String("game_id", gs.GameID),
		zap.String("winner", string(gs.Winner)),
		zap.String("reason", gs.EndReason),
		zap.Int("round", gs.Round),
	)
}

func (fsh *finishStageHandler) OnHandle(gs *GameState, actions RoundActions, result *RoundResult) {}

func (fsh *finishStageHandler) OnExit(gs *GameState) {}

func (fsh *finishStageHandler) SetOnSwitch(fn func(Phase)) {
	fsh.onSwitch = fn
}

// settle 在每个结算步骤之后检查胜负，已分出胜负时返回 true
func settle(gs *GameState, result *RoundResult) bool {
	win := EvaluateWin(gs.Players)
	if !win.Ended {
		return false
	}

	if win.Abnormal() {
		zap.L().Warn(
			"所有玩家均已死亡",
			zap.String("game_id", gs.GameID),
			zap.Int("round", gs.Round),
		)
	}

	gs.recordWin(win)
	result.Ended = true
	result.Win = &win

	return true
}

// assignRoles 打乱标准角色分布并按座位顺序发放，每名玩家收到一条只有自己可见的身份事件
func assignRoles(gs *GameState, rng Random) {
	kinds := slices.Clone(StandardRoleSet)
	rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	for i, p := range gs.Players {
		p.setRole(NewRole(kinds[i]))

		gs.AddEvent(PrivateEvent(
			EVENT_ROLE_ASSIGNED,
			p.ID,
			fmt.Sprintf("你的身份是%s", kinds[i].DisplayName()),
		))
	}
}
