package genrand

import (
	"math/rand/v2"
)

// Default is the built-in Rand implementation used whenever a caller does
// not supply their own. It wraps math/rand/v2's PCG source: the engine has
// no example in the retrieved pack implementing this exact small contract
// (gen/gopter-style property testing sources appear only as reference
// manifests, never as a vendorable package alongside the rest of the
// pack's stack), so this adapter is the one deliberately stdlib-only part
// of specgo, matching §1's framing of Rand as an external collaborator
// whose contract, not implementation, is in scope.
type Default struct {
	src *rand.Rand
}

// NewDefault returns a Default seeded deterministically from seed so that
// two runs with the same seed produce the same sequence of values.
func NewDefault(seed uint64) *Default {
	return &Default{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *Default) Integer() int {
	return int(int32(d.src.Int64()))
}

func (d *Default) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + d.src.IntN(hi-lo+1)
}

func (d *Default) Choose(choices ...any) any {
	if len(choices) == 0 {
		return nil
	}
	return choices[d.src.IntN(len(choices))]
}

func (d *Default) Sized(n int, block func(size int) any) any {
	return block(n)
}

func (d *Default) Freq(weighted []WeightedGen) (any, bool) {
	total := 0
	for _, w := range weighted {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total == 0 {
		return nil, false
	}
	pick := d.src.IntN(total)
	for _, w := range weighted {
		if w.Weight <= 0 {
			continue
		}
		if pick < w.Weight {
			return w.Gen(d, 10)
		}
		pick -= w.Weight
	}
	return nil, false
}

func (d *Default) Branch(gens ...Gen) (any, bool) {
	if len(gens) == 0 {
		return nil, false
	}
	return gens[d.src.IntN(len(gens))](d, 10)
}

func (d *Default) Float64() float64 {
	return d.src.Float64()
}
