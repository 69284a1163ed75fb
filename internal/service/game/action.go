package game

// RoundActions 是会话层收集好的一整回合决策，空字符串表示"未行动"或"弃票"
type RoundActions struct {
	WolfVotes         map[string]string `json:"wolf_votes"`
	SeerTarget        string            `json:"seer_target,omitempty"`
	WitchAntidote     bool              `json:"witch_antidote"`
	WitchPoisonTarget string            `json:"witch_poison_target,omitempty"`
	LastWords         map[string]string `json:"last_words"`
	Speeches          map[string]string `json:"speeches"`
	DayVotes          map[string]string `json:"day_votes"`
}

// 夜晚结果

type WolfKillResult struct {
	Success  bool              `json:"success"`
	TargetID string            `json:"target_id,omitempty"`
	Tally    map[string]int    `json:"tally"`
	MaxVotes int               `json:"max_votes"`
	Tied     []string          `json:"tied,omitempty"`
	Rejected map[string]string `json:"rejected,omitempty"`
	Reason   string            `json:"reason"`
}

type SeerCheckResult struct {
	Success  bool   `json:"success"`
	SeerID   string `json:"seer_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
	IsWolf   bool   `json:"is_wolf"`
	Reason   string `json:"reason"`
}

type WitchActionResult struct {
	Success      bool   `json:"success"`
	WitchID      string `json:"witch_id,omitempty"`
	AntidoteUsed bool   `json:"antidote_used"`
	SavedID      string `json:"saved_id,omitempty"`
	PoisonUsed   bool   `json:"poison_used"`
	PoisonedID   string `json:"poisoned_id,omitempty"`
	Reason       string `json:"reason"`
}

type NightResult struct {
	Kill   WolfKillResult     `json:"kill"`
	Check  *SeerCheckResult   `json:"check,omitempty"`
	Witch  *WitchActionResult `json:"witch,omitempty"`
	Deaths []string           `json:"deaths"`
}

// 白天结果

type StatementRecord struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
	Content  string `json:"content"`
}

type VoteResult struct {
	Tally       map[string]int    `json:"tally"`
	MaxVotes    int               `json:"max_votes"`
	Tie         bool              `json:"tie"`
	TopTargets  []string          `json:"top_targets,omitempty"`
	ExiledID    string            `json:"exiled_id,omitempty"`
	Ballots     map[string]string `json:"ballots"`
	Abstained   []string          `json:"abstained,omitempty"`
	Rejected    map[string]string `json:"rejected,omitempty"`
	TotalVoters int               `json:"total_voters"`
}

func (vr VoteResult) HasExile() bool {
	return !vr.Tie && vr.ExiledID != ""
}

type DayPhaseResult struct {
	Deaths         []string          `json:"deaths"`
	LastWords      []StatementRecord `json:"last_words"`
	Speeches       []StatementRecord `json:"speeches"`
	Vote           VoteResult        `json:"vote"`
	ExiledID       string            `json:"exiled_id,omitempty"`
	ExileLastWords *StatementRecord  `json:"exile_last_words,omitempty"`
}

type RoundResult struct {
	Round int             `json:"round"`
	Night *NightResult    `json:"night,omitempty"`
	Day   *DayPhaseResult `json:"day,omitempty"`
	Ended bool            `json:"ended"`
	Win   *WinResult      `json:"win,omitempty"`
}
