package game

import "slices"

// 白天投票被拒绝的原因
const (
	REJECT_VOTER_INVALID = "投票者不存在或已死亡"
	REJECT_VOTE_TARGET   = "被投票者不存在或已死亡"
)

// VoteBox 收集白天投票。
// 同一投票者后投的票覆盖先投的票；弃票会撤销此前投出的票，并且不计入投票人数。
type VoteBox struct {
	ballots   map[string]string
	abstained map[string]bool
}

func NewVoteBox() *VoteBox {
	return &VoteBox{
		ballots:   make(map[string]string),
		abstained: make(map[string]bool),
	}
}

func (vb *VoteBox) Cast(voterID, targetID string) {
	if targetID == "" {
		vb.Abstain(voterID)
		return
	}

	vb.ballots[voterID] = targetID
	delete(vb.abstained, voterID)
}

func (vb *VoteBox) Abstain(voterID string) {
	delete(vb.ballots, voterID)
	vb.abstained[voterID] = true
}

func (vb *VoteBox) TotalVoters() int {
	return len(vb.ballots)
}

// Tally 只依赖 (投票者, 目标) 的集合，与投票先后无关
func (vb *VoteBox) Tally() VoteResult {
	result := VoteResult{
		Tally:       make(map[string]int),
		Ballots:     make(map[string]string, len(vb.ballots)),
		TotalVoters: len(vb.ballots),
	}

	for voterID, targetID := range vb.ballots {
		result.Ballots[voterID] = targetID
		result.Tally[targetID]++
	}

	for voterID := range vb.abstained {
		result.Abstained = append(result.Abstained, voterID)
	}
	slices.Sort(result.Abstained)

	// 没有有效选票时既不算平票也没有人出局
	if len(result.Tally) == 0 {
		return result
	}

	result.TopTargets = topTargets(result.Tally)
	result.MaxVotes = result.Tally[result.TopTargets[0]]
	result.Tie = len(result.TopTargets) > 1

	if !result.Tie {
		result.ExiledID = result.TopTargets[0]
	}

	return result
}
