package game

import "fmt"

// 发言顺序
type SpeechOrder string

const (
	SpeechBySeat   SpeechOrder = "seat"
	SpeechShuffled SpeechOrder = "shuffle"
)

func ParseSpeechOrder(s string) (SpeechOrder, error) {
	switch SpeechOrder(s) {
	case SpeechBySeat, "":
		return SpeechBySeat, nil
	case SpeechShuffled:
		return SpeechShuffled, nil
	default:
		return "", fmt.Errorf("未知的发言顺序: %q", s)
	}
}

// 空白发言的占位文本
const (
	NO_LAST_WORDS = "[无遗言]"
	SILENCE       = "[沉默]"
)

// speakingOrder 返回本轮存活玩家的发言顺序。
// 玩家列表本身按座位排列，所以座位顺序就是存活玩家的原始顺序。
func speakingOrder(gs *GameState, order SpeechOrder, rng Random) []*Player {
	alive := gs.AlivePlayers()

	if order == SpeechShuffled && rng != nil {
		rng.Shuffle(len(alive), func(i, j int) {
			alive[i], alive[j] = alive[j], alive[i]
		})
	}

	return alive
}

// recordStatements 为 speakers 中每个玩家记录一条发言，缺失或空白的内容替换为占位文本
func recordStatements(speakers []*Player, statements map[string]string, placeholder string) []StatementRecord {
	records := make([]StatementRecord, 0, len(speakers))

	for _, p := range speakers {
		records = append(records, StatementRecord{
			PlayerID: p.ID,
			Seat:     p.Seat,
			Content:  normalizeStatement(statements[p.ID], placeholder),
		})
	}

	return records
}
