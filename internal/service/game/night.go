package game

import (
	"fmt"
	"slices"
	"strings"
)

// 夜晚行动被拒绝的原因
const (
	REJECT_NO_WOLF_VOTES      = "狼人未进行有效投票"
	REJECT_VOTER_NOT_WOLF     = "投票者不是存活的狼人"
	REJECT_TARGET_INVALID     = "目标不存在或已死亡"
	REJECT_NO_SEER            = "预言家无效"
	REJECT_CHECK_SELF         = "不能查验自己"
	REJECT_NO_WITCH           = "女巫无效"
	REJECT_BOTH_POTIONS       = "解药和毒药不能同时使用"
	REJECT_ANTIDOTE_EXHAUSTED = "解药已用完"
	REJECT_NO_KILL            = "无人被杀，无法使用解药"
	REJECT_FIRST_NIGHT_SELF   = "首夜不能自救"
	REJECT_POISON_EXHAUSTED   = "毒药已用完"
)

// NightResolver 依次执行狼人击杀、预言家查验、女巫用药，再计算死亡名单
type NightResolver struct{}

func NewNightResolver() *NightResolver {
	return &NightResolver{}
}

func (nr *NightResolver) Resolve(gs *GameState, actions RoundActions) NightResult {
	var result NightResult

	// 阶段1: 狼人击杀
	result.Kill = nr.resolveWolfKill(gs, actions.WolfVotes)
	if result.Kill.Success {
		// 击杀决定只对存活的狼人可见
		killEvent := PrivateEvent(
			EVENT_WOLF_KILL,
			"",
			fmt.Sprintf("狼人决定击杀%s", gs.describePlayer(result.Kill.TargetID)),
		).WithTarget(result.Kill.TargetID)

		gs.AddEvent(killEvent.WithAudience(playerIDs(gs.AliveByRole(RoleWolf))...))
	}

	// 阶段2: 预言家查验
	if actions.SeerTarget != "" {
		check := nr.resolveSeerCheck(gs, actions.SeerTarget)
		result.Check = &check

		if check.Success {
			verdict := "好人"
			if check.IsWolf {
				verdict = "狼人"
			}

			gs.AddEvent(
				PrivateEvent(
					EVENT_SEER_CHECK,
					check.SeerID,
					fmt.Sprintf("预言家查验了%s，结果是%s", gs.describePlayer(check.TargetID), verdict),
				).WithTarget(check.TargetID),
			)
		}
	}

	// 阶段3: 女巫用药
	witches := gs.AliveByRole(RoleWitch)
	if len(witches) > 0 {
		witch := witches[0]
		wr := nr.resolveWitch(gs, witch, result.Kill, actions.WitchAntidote, actions.WitchPoisonTarget)
		result.Witch = &wr

		if wr.AntidoteUsed {
			gs.AddEvent(
				PrivateEvent(
					EVENT_WITCH_ANTIDOTE,
					witch.ID,
					fmt.Sprintf("女巫使用解药救活了%s", gs.describePlayer(wr.SavedID)),
				).WithTarget(wr.SavedID),
			)
		}

		if wr.PoisonUsed {
			gs.AddEvent(
				PrivateEvent(
					EVENT_WITCH_POISON,
					witch.ID,
					fmt.Sprintf("女巫使用毒药毒死了%s", gs.describePlayer(wr.PoisonedID)),
				).WithTarget(wr.PoisonedID),
			)
		}

		// 无论本夜是否用药，女巫度过的第一个夜晚之后都不再是首夜
		witch.Role.MarkFirstNightPassed()
	} else if actions.WitchAntidote || actions.WitchPoisonTarget != "" {
		result.Witch = &WitchActionResult{Reason: REJECT_NO_WITCH}
	}

	// 阶段4: 计算死亡名单
	result.Deaths = computeDeaths(result.Kill, result.Witch)

	// 阶段5: 标记死亡
	for _, id := range result.Deaths {
		p := gs.PlayerByID(id)
		if p == nil {
			continue
		}

		reason := DeathWolfKilled
		if result.Witch != nil && result.Witch.PoisonUsed && result.Witch.PoisonedID == id {
			reason = DeathPoisoned
		}

		p.MarkDead(reason, gs.Round)
	}

	gs.LastNightDeaths = slices.Clone(result.Deaths)

	gs.AddEvent(PublicEvent(
		EVENT_NIGHT_END,
		fmt.Sprintf("夜晚结束，共有%d名玩家死亡", len(result.Deaths)),
	))

	return result
}

// resolveWolfKill 统计存活狼人的投票，得票最多者为击杀目标。
// 平票时取座位号最小的目标，不依赖 map 的遍历顺序。
func (nr *NightResolver) resolveWolfKill(gs *GameState, votes map[string]string) WolfKillResult {
	result := WolfKillResult{
		Tally:    make(map[string]int),
		Rejected: make(map[string]string),
	}

	for voterID, targetID := range votes {
		voter := gs.PlayerByID(voterID)
		if voter == nil || !voter.Alive || !voter.Is(RoleWolf) {
			result.Rejected[voterID] = REJECT_VOTER_NOT_WOLF
			continue
		}

		if targetID == "" {
			continue
		}

		target := gs.PlayerByID(targetID)
		if target == nil || !target.Alive {
			result.Rejected[voterID] = REJECT_TARGET_INVALID
			continue
		}

		result.Tally[targetID]++
	}

	if len(result.Tally) == 0 {
		result.Reason = REJECT_NO_WOLF_VOTES
		return result
	}

	top := topTargets(result.Tally)
	result.MaxVotes = result.Tally[top[0]]

	top = sortBySeat(gs, top)
	if len(top) > 1 {
		result.Tied = top
	}

	result.Success = true
	result.TargetID = top[0]
	result.Reason = "狼人击杀目标确定"

	return result
}

func (nr *NightResolver) resolveSeerCheck(gs *GameState, targetID string) SeerCheckResult {
	seers := gs.AliveByRole(RoleSeer)
	if len(seers) == 0 {
		return SeerCheckResult{TargetID: targetID, Reason: REJECT_NO_SEER}
	}

	seer := seers[0]
	result := SeerCheckResult{
		SeerID:   seer.ID,
		TargetID: targetID,
	}

	if targetID == seer.ID {
		result.Reason = REJECT_CHECK_SELF
		return result
	}

	target := gs.PlayerByID(targetID)
	if target == nil || !target.Alive {
		result.Reason = REJECT_TARGET_INVALID
		return result
	}

	result.Success = true
	result.IsWolf = target.Camp() == CampWolf
	result.Reason = "查验完成"

	return result
}

// resolveWitch 同一夜至多使用一种药，被拒绝的行动不消耗任何药
func (nr *NightResolver) resolveWitch(
	gs *GameState,
	witch *Player,
	kill WolfKillResult,
	useAntidote bool,
	poisonTargetID string,
) WitchActionResult {
	result := WitchActionResult{WitchID: witch.ID}
	role := witch.Role

	if useAntidote && poisonTargetID != "" {
		result.Reason = REJECT_BOTH_POTIONS
		return result
	}

	if useAntidote {
		antidote := role.Antidote()
		if antidote == nil || !antidote.IsAvailable() {
			result.Reason = REJECT_ANTIDOTE_EXHAUSTED
			return result
		}

		if !kill.Success || kill.TargetID == "" {
			result.Reason = REJECT_NO_KILL
			return result
		}

		if role.IsFirstNight() && kill.TargetID == witch.ID {
			result.Reason = REJECT_FIRST_NIGHT_SELF
			return result
		}

		target := gs.PlayerByID(kill.TargetID)
		if target == nil || !target.Alive {
			result.Reason = REJECT_TARGET_INVALID
			return result
		}

		antidote.Use()
		result.AntidoteUsed = true
		result.SavedID = kill.TargetID
	}

	if poisonTargetID != "" {
		poison := role.Poison()
		if poison == nil || !poison.IsAvailable() {
			result.Reason = REJECT_POISON_EXHAUSTED
			return result
		}

		target := gs.PlayerByID(poisonTargetID)
		if target == nil || !target.Alive {
			result.Reason = REJECT_TARGET_INVALID
			return result
		}

		poison.Use()
		result.PoisonUsed = true
		result.PoisonedID = poisonTargetID
	}

	result.Success = true
	result.Reason = "女巫行动完成"

	return result
}

// computeDeaths 返回按发生顺序排列、不重复的死亡名单
func computeDeaths(kill WolfKillResult, witch *WitchActionResult) []string {
	deaths := make([]string, 0, 2)

	if kill.Success && kill.TargetID != "" {
		deaths = append(deaths, kill.TargetID)
	}

	if witch == nil {
		return deaths
	}

	if witch.AntidoteUsed && witch.PoisonUsed && witch.SavedID == witch.PoisonedID {
		panic("同一名玩家在同一夜既被救又被毒: " + witch.SavedID)
	}

	if witch.AntidoteUsed && witch.SavedID != "" {
		deaths = slices.DeleteFunc(deaths, func(id string) bool {
			return id == witch.SavedID
		})
	}

	if witch.PoisonUsed && witch.PoisonedID != "" && !slices.Contains(deaths, witch.PoisonedID) {
		deaths = append(deaths, witch.PoisonedID)
	}

	return deaths
}

// topTargets 返回得票数并列最高的所有目标，按 ID 排序保证结果稳定
func topTargets(tally map[string]int) []string {
	maxVotes := 0
	top := make([]string, 0, 1)

	for targetID, count := range tally {
		switch {
		case count > maxVotes:
			maxVotes = count
			top = append(top[:0], targetID)
		case count == maxVotes:
			top = append(top, targetID)
		}
	}

	slices.SortFunc(top, strings.Compare)
	return top
}

func playerIDs(players []*Player) []string {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}

	return ids
}
