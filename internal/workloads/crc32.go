package workloads

// CRC-32 frame check sequence over a fixed pseudo-random byte stream
// (ANSI X3.66 polynomial, table-driven). The oracle reduces the checksum
// modulo 32768 and compares against a fixed literal.

const (
	crcScaleFactor = 1
	crcStreamLen   = 1024
	crcExpected    = 11433
)

// crcContext owns the feedback-term table. The original kept it in a
// per-container context record rather than static storage; same here so
// nothing survives an iteration.
type crcContext struct {
	table [256]uint32
}

func newCRCContext() *crcContext {
	var ctx crcContext
	for i := range ctx.table {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = 0xedb88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		ctx.table[i] = c
	}
	return &ctx
}

func (ctx *crcContext) crc32pseudo(rng *lcgRand) uint32 {
	crc := uint32(0xffffffff)
	for i := 0; i < crcStreamLen; i++ {
		crc = ctx.table[(crc^uint32(rng.next()))&0xff] ^ (crc >> 8)
	}
	return ^crc
}

// CRC32Benchmark computes the checksum of 1024 pseudo-random bytes from a
// zero-seeded generator and verifies it modulo 32768.
func CRC32Benchmark() bool {
	ctx := newCRCContext()

	var r uint32
	for sf := 0; sf < crcScaleFactor; sf++ {
		rng := newLCG(0)
		r = ctx.crc32pseudo(rng)
	}

	return int(r%32768) == crcExpected
}
