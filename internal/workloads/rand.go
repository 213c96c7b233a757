package workloads

// lcgRand is the workload PRNG: the BEEBS linear congruential generator.
// It is deliberately not math/rand — the archive-search and CRC workloads
// assert exact literals derived from this generator's byte sequence, and
// the state is an explicit struct so an iteration can never observe a seed
// left behind by a previous one.
type lcgRand struct {
	seed uint32
}

func newLCG(seed uint32) *lcgRand {
	return &lcgRand{seed: seed}
}

// next returns the next value in [0, 32768).
func (r *lcgRand) next() int {
	r.seed = (r.seed*1103515245 + 12345) & 0x7fffffff
	return int(r.seed >> 16)
}
