package workloads

// MD5 digest of a fixed deterministic message. The four 32-bit state words
// live in an explicit context — the original kept them in module globals,
// which would defeat the harness's per-iteration reset invariant — and the
// oracle XORs them together after hashing.

const (
	md5ScaleFactor = 1
	md5MsgSize     = 1000
	md5Expected    = 0x33f673b4
)

var md5Shifts = [64]uint{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

var md5Sines = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

type md5Context struct {
	h0, h1, h2, h3 uint32
}

func leftRotate(x uint32, c uint) uint32 {
	return (x << c) | (x >> (32 - c))
}

func (ctx *md5Context) digest(msg []byte) {
	length := len(msg)

	ctx.h0 = 0x67452301
	ctx.h1 = 0xefcdab89
	ctx.h2 = 0x98badcfe
	ctx.h3 = 0x10325476

	newLen := ((length+8)/64+1)*64 - 8
	buf := make([]byte, newLen+64)
	copy(buf, msg)
	buf[length] = 0x80

	bitsLen := uint32(length * 8)
	buf[newLen] = byte(bitsLen)
	buf[newLen+1] = byte(bitsLen >> 8)
	buf[newLen+2] = byte(bitsLen >> 16)
	buf[newLen+3] = byte(bitsLen >> 24)

	var w [16]uint32
	for offset := 0; offset < newLen; offset += 64 {
		for j := 0; j < 16; j++ {
			base := offset + j*4
			w[j] = uint32(buf[base]) |
				uint32(buf[base+1])<<8 |
				uint32(buf[base+2])<<16 |
				uint32(buf[base+3])<<24
		}

		a, b, c, d := ctx.h0, ctx.h1, ctx.h2, ctx.h3

		for k := 0; k < 64; k++ {
			var f uint32
			var g int
			switch {
			case k < 16:
				f = (b & c) | (^b & d)
				g = k
			case k < 32:
				f = (d & b) | (^d & c)
				g = (5*k + 1) % 16
			case k < 48:
				f = b ^ c ^ d
				g = (3*k + 5) % 16
			default:
				f = c ^ (b | ^d)
				g = (7 * k) % 16
			}

			a, d, c, b = d, c, b, b+leftRotate(a+f+md5Sines[k]+w[g], md5Shifts[k])
		}

		ctx.h0 += a
		ctx.h1 += b
		ctx.h2 += c
		ctx.h3 += d
	}
}

// MD5Benchmark hashes a 1000-byte message where byte i equals i mod 256
// and XORs the four resulting state words against a fixed literal.
func MD5Benchmark() bool {
	var ctx md5Context
	for sf := 0; sf < md5ScaleFactor; sf++ {
		msg := make([]byte, md5MsgSize)
		for i := range msg {
			msg[i] = byte(i)
		}
		ctx.digest(msg)
	}

	return ctx.h0^ctx.h1^ctx.h2^ctx.h3 == md5Expected
}
