package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Random 是引擎中仅有的两个随机点（角色分配、随机发言顺序）使用的随机源，
// 测试时注入固定种子即可复现结果。
type Random interface {
	Shuffle(n int, swap func(i, j int))
}

func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed 使用 crypto/rand 生成种子
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("读取随机种子失败: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}

func mustNewRandom() *rand.Rand {
	seed, err := NewSeed()
	if err != nil {
		panic(err)
	}

	return NewRandom(seed)
}
