package game

import (
	"slices"
	"time"
)

type EventKind string

// 审计事件类型
const (
	EVENT_GAME_START         EventKind = "GameStart"
	EVENT_ROLE_ASSIGNED      EventKind = "RoleAssigned"
	EVENT_NIGHT_START        EventKind = "NightStart"
	EVENT_NIGHT_END          EventKind = "NightEnd"
	EVENT_WOLF_KILL          EventKind = "WolfKill"
	EVENT_SEER_CHECK         EventKind = "SeerCheck"
	EVENT_WITCH_ANTIDOTE     EventKind = "WitchAntidote"
	EVENT_WITCH_POISON       EventKind = "WitchPoison"
	EVENT_DAY_START          EventKind = "DayStart"
	EVENT_DEATH_ANNOUNCEMENT EventKind = "DeathAnnouncement"
	EVENT_SPEECH             EventKind = "Speech"
	EVENT_VOTE_START         EventKind = "VoteStart"
	EVENT_VOTE_CAST          EventKind = "VoteCast"
	EVENT_VOTE_RESULT        EventKind = "VoteResult"
	EVENT_EXILE              EventKind = "Exile"
	EVENT_LAST_WORDS         EventKind = "LastWords"
	EVENT_GAME_END           EventKind = "GameEnd"
	EVENT_SYSTEM_MESSAGE     EventKind = "SystemMessage"
)

// GameEvent 一旦追加到事件日志就不再修改。
// 私有事件只对 ActorID 和 Audience 中的玩家可见，过滤由展示层负责。
type GameEvent struct {
	ID          string    `json:"id"`
	Kind        EventKind `json:"kind"`
	Round       int       `json:"round"`
	Phase       Phase     `json:"phase"`
	ActorID     string    `json:"actor_id,omitempty"`
	TargetID    string    `json:"target_id,omitempty"`
	Audience    []string  `json:"-"`
	Description string    `json:"description"`
	Public      bool      `json:"public"`
	Timestamp   time.Time `json:"timestamp"`
}

func PublicEvent(kind EventKind, description string) GameEvent {
	return GameEvent{
		Kind:        kind,
		Description: description,
		Public:      true,
	}
}

func PrivateEvent(kind EventKind, actorID, description string) GameEvent {
	return GameEvent{
		Kind:        kind,
		ActorID:     actorID,
		Description: description,
	}
}

func (e GameEvent) WithActor(actorID string) GameEvent {
	e.ActorID = actorID
	return e
}

func (e GameEvent) WithTarget(targetID string) GameEvent {
	e.TargetID = targetID
	return e
}

func (e GameEvent) WithAudience(ids ...string) GameEvent {
	e.Audience = append([]string(nil), ids...)
	return e
}

func (e GameEvent) VisibleTo(playerID string) bool {
	if e.Public {
		return true
	}

	if playerID == "" {
		return false
	}

	return e.ActorID == playerID || slices.Contains(e.Audience, playerID)
}
