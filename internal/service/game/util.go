package game

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

func GenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("Failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// normalizeStatement 把空白内容替换为占位文本
func normalizeStatement(content, placeholder string) string {
	if strings.TrimSpace(content) == "" {
		return placeholder
	}

	return content
}

// truncate 用于事件描述，避免长发言撑爆日志
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// sortBySeat 按座位号升序排列玩家 ID，未知 ID 排在最后并保持字典序
func sortBySeat(gs *GameState, ids []string) []string {
	sorted := slices.Clone(ids)

	seatOf := func(id string) int {
		if p := gs.PlayerByID(id); p != nil {
			return p.Seat
		}
		return MAX_SEAT + 1
	}

	slices.SortStableFunc(sorted, func(a, b string) int {
		if sa, sb := seatOf(a), seatOf(b); sa != sb {
			return sa - sb
		}
		return strings.Compare(a, b)
	})

	return sorted
}
