package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const statementPreview = 50

// DayResolver 按顺序执行白天的五个环节：公布死讯、遗言、发言、投票、放逐
type DayResolver struct {
	order SpeechOrder
	rng   Random
}

func NewDayResolver(order SpeechOrder, rng Random) *DayResolver {
	return &DayResolver{
		order: order,
		rng:   rng,
	}
}

func (dr *DayResolver) Resolve(gs *GameState, deaths []string, actions RoundActions) DayPhaseResult {
	result := DayPhaseResult{
		Deaths:    slices.Clone(deaths),
		LastWords: make([]StatementRecord, 0),
		Speeches:  make([]StatementRecord, 0),
	}

	dr.announceDeaths(gs, deaths)
	result.LastWords = dr.processLastWords(gs, deaths, actions.LastWords)
	result.Speeches = dr.processSpeeches(gs, actions.Speeches)
	result.Vote = dr.processVoting(gs, actions.DayVotes)
	result.ExiledID, result.ExileLastWords = dr.processExile(gs, result.Vote, actions.LastWords)

	return result
}

// announceDeaths 只公布死者，不公布死因
func (dr *DayResolver) announceDeaths(gs *GameState, deaths []string) {
	if len(deaths) == 0 {
		gs.AddEvent(PublicEvent(EVENT_SYSTEM_MESSAGE, "昨晚是平安夜，无人死亡"))
		return
	}

	names := make([]string, 0, len(deaths))
	for _, id := range deaths {
		if gs.PlayerByID(id) == nil {
			continue
		}
		names = append(names, gs.describePlayer(id))
	}

	if len(names) == 0 {
		return
	}

	gs.AddEvent(PublicEvent(
		EVENT_DEATH_ANNOUNCEMENT,
		"昨晚死亡的玩家有："+strings.Join(names, "、"),
	))
}

func (dr *DayResolver) processLastWords(gs *GameState, deaths []string, lastWords map[string]string) []StatementRecord {
	if len(deaths) == 0 {
		return make([]StatementRecord, 0)
	}

	speakers := make([]*Player, 0, len(deaths))
	for _, id := range deaths {
		if p := gs.PlayerByID(id); p != nil {
			speakers = append(speakers, p)
		}
	}

	records := recordStatements(speakers, lastWords, NO_LAST_WORDS)
	for _, rec := range records {
		gs.AddEvent(
			PublicEvent(
				EVENT_LAST_WORDS,
				fmt.Sprintf("%s的遗言：%s", gs.describePlayer(rec.PlayerID), truncate(rec.Content, statementPreview)),
			).WithActor(rec.PlayerID),
		)
	}

	return records
}

func (dr *DayResolver) processSpeeches(gs *GameState, speeches map[string]string) []StatementRecord {
	speakers := speakingOrder(gs, dr.order, dr.rng)
	if len(speakers) == 0 {
		return make([]StatementRecord, 0)
	}

	records := recordStatements(speakers, speeches, SILENCE)
	for i, rec := range records {
		speakers[i].HasSpoken = true

		gs.AddEvent(
			PublicEvent(
				EVENT_SPEECH,
				fmt.Sprintf("%s：%s", gs.describePlayer(rec.PlayerID), truncate(rec.Content, statementPreview)),
			).WithActor(rec.PlayerID),
		)
	}

	return records
}

func (dr *DayResolver) processVoting(gs *GameState, votes map[string]string) VoteResult {
	gs.AddEvent(PublicEvent(EVENT_VOTE_START, "开始投票"))

	box := NewVoteBox()
	rejected := make(map[string]string)

	// 按投票者座位顺序处理，保证事件顺序稳定
	for _, voterID := range sortBySeat(gs, slices.Collect(maps.Keys(votes))) {
		targetID := votes[voterID]

		voter := gs.PlayerByID(voterID)
		if voter == nil || !voter.Alive {
			rejected[voterID] = REJECT_VOTER_INVALID
			continue
		}

		if targetID != "" {
			target := gs.PlayerByID(targetID)
			if target == nil || !target.Alive {
				rejected[voterID] = REJECT_VOTE_TARGET
				continue
			}
		}

		box.Cast(voterID, targetID)
		voter.HasVoted = true
		voter.VoteTarget = targetID

		desc := fmt.Sprintf("%s选择弃票", gs.describePlayer(voterID))
		if targetID != "" {
			desc = fmt.Sprintf("%s投票给%s", gs.describePlayer(voterID), gs.describePlayer(targetID))
		}

		gs.AddEvent(PublicEvent(EVENT_VOTE_CAST, desc).WithActor(voterID).WithTarget(targetID))
	}

	result := box.Tally()
	if len(rejected) > 0 {
		result.Rejected = rejected
	}

	gs.AddEvent(PublicEvent(EVENT_VOTE_RESULT, describeTally(gs, result)))

	return result
}

func (dr *DayResolver) processExile(gs *GameState, vote VoteResult, lastWords map[string]string) (string, *StatementRecord) {
	if vote.Tie {
		gs.AddEvent(PublicEvent(EVENT_SYSTEM_MESSAGE, "发生平票，当日无人出局"))
		return "", nil
	}

	if vote.TotalVoters == 0 {
		gs.AddEvent(PublicEvent(EVENT_SYSTEM_MESSAGE, "无人投票，当日无人出局"))
		return "", nil
	}

	exiled := gs.PlayerByID(vote.ExiledID)
	if exiled == nil || !exiled.Alive {
		return "", nil
	}

	exiled.MarkDead(DeathVotedOut, gs.Round)

	gs.AddEvent(
		PublicEvent(
			EVENT_EXILE,
			fmt.Sprintf("%s被投票放逐，获得%d票", gs.describePlayer(exiled.ID), vote.MaxVotes),
		).WithTarget(exiled.ID),
	)

	// 被放逐者提交了遗言时记录下来
	content, ok := lastWords[exiled.ID]
	if !ok {
		return exiled.ID, nil
	}

	rec := StatementRecord{
		PlayerID: exiled.ID,
		Seat:     exiled.Seat,
		Content:  normalizeStatement(content, NO_LAST_WORDS),
	}

	gs.AddEvent(
		PublicEvent(
			EVENT_LAST_WORDS,
			fmt.Sprintf("%s的遗言：%s", gs.describePlayer(exiled.ID), truncate(rec.Content, statementPreview)),
		).WithActor(exiled.ID),
	)

	return exiled.ID, &rec
}

func describeTally(gs *GameState, vote VoteResult) string {
	if len(vote.Tally) == 0 {
		return "投票结果：无有效投票"
	}

	var sb strings.Builder
	sb.WriteString("投票结果：")

	for _, targetID := range sortBySeat(gs, slices.Collect(maps.Keys(vote.Tally))) {
		fmt.Fprintf(&sb, "\n- %s: %d票", gs.describePlayer(targetID), vote.Tally[targetID])
	}

	if len(vote.Abstained) > 0 {
		fmt.Fprintf(&sb, "\n- 弃票: %d人", len(vote.Abstained))
	}

	return sb.String()
}
