package game

import "time"

// 阵营
type Camp string

const (
	CampNone Camp = ""
	CampWolf Camp = "Wolf"
	CampGood Camp = "Good"
)

// 角色类型，六人局固定为 2 狼 1 预言家 1 女巫 2 平民
type RoleKind string

const (
	RoleWolf  RoleKind = "Wolf"
	RoleSeer  RoleKind = "Seer"
	RoleWitch RoleKind = "Witch"
	RolePlain RoleKind = "Plain"
)

// 死亡原因，只记录在服务端，公布死讯时不会透露
type DeathReason string

const (
	DeathNone       DeathReason = ""
	DeathWolfKilled DeathReason = "WolfKilled"
	DeathPoisoned   DeathReason = "Poisoned"
	DeathVotedOut   DeathReason = "VotedOut"
	DeathUnknown    DeathReason = "Unknown"
)

// 游戏阶段：Waiting -> Night -> Day -> Night -> ... -> Finished
type Phase string

const (
	PhaseWaiting  Phase = "Waiting"
	PhaseNight    Phase = "Night"
	PhaseDay      Phase = "Day"
	PhaseFinished Phase = "Finished"
)

type GameStatus string

const (
	StatusWaiting  GameStatus = "Waiting"
	StatusRunning  GameStatus = "Running"
	StatusPaused   GameStatus = "Paused"
	StatusFinished GameStatus = "Finished"
)

type PlayerKind string

const (
	PlayerHuman     PlayerKind = "Human"
	PlayerAutomated PlayerKind = "Automated"
)

const (
	PLAYER_COUNT = 6
	MIN_SEAT     = 1
	MAX_SEAT     = PLAYER_COUNT
)

type Player struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Seat int        `json:"seat"`
	Kind PlayerKind `json:"kind"`

	// 开局时分配一次，之后不可更换
	Role *Role `json:"-"`

	Alive       bool        `json:"alive"`
	DeathReason DeathReason `json:"-"`
	DeathRound  int         `json:"death_round,omitempty"`
	DiedAt      time.Time   `json:"-"`

	HasSpoken  bool   `json:"has_spoken"`
	HasVoted   bool   `json:"has_voted"`
	VoteTarget string `json:"vote_target,omitempty"`
}

func NewPlayer(id, name string, seat int, kind PlayerKind) *Player {
	if kind == "" {
		kind = PlayerHuman
	}

	return &Player{
		ID:    id,
		Name:  name,
		Seat:  seat,
		Kind:  kind,
		Alive: true,
	}
}

func (p *Player) IsAutomated() bool {
	return p.Kind == PlayerAutomated
}

// Camp 返回玩家所属阵营，未分配角色时为 CampNone
func (p *Player) Camp() Camp {
	if p.Role == nil {
		return CampNone
	}

	return p.Role.Camp()
}

func (p *Player) Is(kind RoleKind) bool {
	return p.Role != nil && p.Role.Kind == kind
}

func (p *Player) setRole(role *Role) bool {
	if p.Role != nil {
		return false
	}

	p.Role = role
	return true
}

func (p *Player) MarkDead(reason DeathReason, round int) {
	p.Alive = false
	p.DeathReason = reason
	p.DeathRound = round
	p.DiedAt = time.Now()
}

func (p *Player) ResetSpeech() {
	p.HasSpoken = false
}

func (p *Player) ResetVote() {
	p.HasVoted = false
	p.VoteTarget = ""
}
