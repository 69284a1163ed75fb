package game

import (
	"slices"
	"time"

	"go.uber.org/zap"
)

// GameMachine 是一局游戏的状态机，独占 GameState。
// 它本身不做并发保护，调用方需要保证同一时刻只有一个协程在操作它。
type GameMachine struct {
	ctx     *GameState
	handler StageHandler

	rng         Random
	speechOrder SpeechOrder

	night *NightResolver
	day   *DayResolver

	createdAt time.Time
}

type Option func(gm *GameMachine)

// WithRandom 指定身份分配和发言乱序使用的随机源，测试中用它固定结果
func WithRandom(rng Random) Option {
	return func(gm *GameMachine) {
		if rng != nil {
			gm.rng = rng
		}
	}
}

func WithSpeechOrder(order SpeechOrder) Option {
	return func(gm *GameMachine) {
		gm.speechOrder = order
	}
}

func NewGameMachine(gs *GameState, opts ...Option) (*GameMachine, error) {
	if gs == nil {
		return nil, ErrNilState
	}

	gm := &GameMachine{
		ctx:         gs,
		handler:     NewWaitStageHandler(),
		speechOrder: SpeechBySeat,
		night:       NewNightResolver(),
		createdAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(gm)
	}

	if gm.rng == nil {
		gm.rng = mustNewRandom()
	}

	gm.day = NewDayResolver(gm.speechOrder, gm.rng)
	gm.handler.SetOnSwitch(gm.onSwitch)

	return gm, nil
}

func (gm *GameMachine) onSwitch(next Phase) {
	gm.ctx.changePhase(next)
}

// Init 校验玩家列表、分配身份并进入第一夜
func (gm *GameMachine) Init() error {
	if gm.ctx.Status != StatusWaiting || gm.ctx.Phase != PhaseWaiting {
		return ErrAlreadyStarted
	}

	if err := gm.ctx.validateRoster(); err != nil {
		return err
	}

	for _, p := range gm.ctx.Players {
		if p.Role != nil {
			return ErrAlreadyStarted
		}
	}

	slices.SortStableFunc(gm.ctx.Players, func(a, b *Player) int {
		return a.Seat - b.Seat
	})

	gm.ctx.Round = 1
	gm.ctx.Status = StatusRunning
	gm.ctx.StartedAt = time.Now()

	// 身份事件和开局事件都属于第一夜
	gm.onSwitch(PhaseNight)
	assignRoles(gm.ctx, gm.rng)
	gm.switchStage()

	zap.L().Info(
		"游戏已开始",
		zap.String("game_id", gm.ctx.GameID),
		zap.String("room_id", gm.ctx.RoomID),
		zap.String("speech_order", string(gm.speechOrder)),
	)

	return nil
}

// ExecuteRound 执行完整的一回合：夜晚、胜负判定、白天、胜负判定。
// 任意一次判定分出胜负都会立即结束游戏，剩余步骤不再执行。
func (gm *GameMachine) ExecuteRound(actions RoundActions) (*RoundResult, error) {
	switch gm.ctx.Status {
	case StatusWaiting:
		return nil, ErrNotStarted
	case StatusPaused:
		return nil, ErrGamePaused
	case StatusFinished:
		return nil, ErrGameFinished
	}

	result := &RoundResult{Round: gm.ctx.Round}

	zap.L().Debug(
		"开始执行回合",
		zap.String("game_id", gm.ctx.GameID),
		zap.Int("round", gm.ctx.Round),
	)

	for {
		gm.handler.OnHandle(gm.ctx, actions, result)

		if gm.ctx.Phase == gm.handler.Stage() {
			// 处理器没有推进阶段，说明状态机处于不可执行的阶段
			zap.L().Error(
				"阶段未推进",
				zap.String("game_id", gm.ctx.GameID),
				zap.String("phase", string(gm.ctx.Phase)),
			)
			break
		}

		gm.switchStage()

		if gm.ctx.Phase == PhaseNight || gm.ctx.Phase == PhaseFinished {
			break
		}
	}

	return result, nil
}

func (gm *GameMachine) switchStage() {
	gm.handler.OnExit(gm.ctx)

	var newHandler StageHandler

	switch gm.ctx.Phase {
	case PhaseWaiting:
		newHandler = NewWaitStageHandler()
	case PhaseNight:
		newHandler = NewNightStageHandler(gm.night)
	case PhaseDay:
		newHandler = NewDayStageHandler(gm.day)
	case PhaseFinished:
		newHandler = NewFinishStageHandler()
	default:
		zap.L().Error(
			"未知的游戏阶段",
			zap.String("phase", string(gm.ctx.Phase)),
		)
		return
	}

	newHandler.SetOnSwitch(gm.onSwitch)
	gm.handler = newHandler

	gm.handler.OnEnter(gm.ctx)
}

// Pause 暂停进行中的游戏，暂停期间不能执行回合
func (gm *GameMachine) Pause() error {
	switch gm.ctx.Status {
	case StatusWaiting:
		return ErrNotStarted
	case StatusFinished:
		return ErrGameFinished
	case StatusPaused:
		return nil
	}

	gm.ctx.Status = StatusPaused
	gm.ctx.AddEvent(PublicEvent(EVENT_SYSTEM_MESSAGE, "游戏已暂停"))

	return nil
}

func (gm *GameMachine) Resume() error {
	switch gm.ctx.Status {
	case StatusWaiting:
		return ErrNotStarted
	case StatusFinished:
		return ErrGameFinished
	case StatusRunning:
		return nil
	}

	gm.ctx.Status = StatusRunning
	gm.ctx.AddEvent(PublicEvent(EVENT_SYSTEM_MESSAGE, "游戏已恢复"))

	return nil
}

func (gm *GameMachine) State() *GameState {
	return gm.ctx
}

func (gm *GameMachine) IsFinished() bool {
	return gm.ctx.IsFinished()
}

func (gm *GameMachine) CreatedAt() time.Time {
	return gm.createdAt
}
