package workloads

import (
	"bytes"
	"encoding/binary"
)

// eBPF opcode bytes for the instructions the sum program needs.
const (
	bpfMovImm = 0xb7 // dst = imm
	bpfMovReg = 0xbf // dst = src
	bpfAddImm = 0x07 // dst += imm
	bpfAddReg = 0x0f // dst += src
	bpfMulReg = 0x2f // dst *= src
	bpfDivImm = 0x37 // dst /= imm
	bpfJGTReg = 0x2d // if dst > src goto +off
	bpfJEqReg = 0x1d // if dst == src goto +off
	bpfJa     = 0x05 // goto +off
	bpfExit   = 0x95
)

func bpfInsn(op byte, dst, src uint8, off int16, imm int32) [8]byte {
	var b [8]byte
	b[0] = op
	b[1] = src<<4 | dst
	binary.LittleEndian.PutUint16(b[2:4], uint16(off))
	binary.LittleEndian.PutUint32(b[4:8], uint32(imm))
	return b
}

// sumBPF encodes the register-VM rendition of the triangular-sum workload:
// r7 counts 0..r4, r6 accumulates, and the expected sum is recomputed in
// r2 from the closed form before the final compare. r0 carries the boolean
// result (1 = correct).
func sumBPF() []byte {
	prog := [][8]byte{
		bpfInsn(bpfMovImm, 6, 0, 0, 0),   // r6 = sum = 0
		bpfInsn(bpfMovImm, 7, 0, 0, 0),   // r7 = i = 0
		bpfInsn(bpfMovImm, 4, 0, 0, 100), // r4 = SCALE_FACTOR
		bpfInsn(bpfJGTReg, 7, 4, 3, 0),   // if i > sf goto end
		bpfInsn(bpfAddReg, 6, 7, 0, 0),   // sum += i
		bpfInsn(bpfAddImm, 7, 0, 0, 1),   // i++
		bpfInsn(bpfJa, 0, 0, -4, 0),      // goto loop test
		bpfInsn(bpfMovReg, 2, 4, 0, 0),   // r2 = sf
		bpfInsn(bpfMovReg, 3, 4, 0, 0),   // r3 = sf
		bpfInsn(bpfAddImm, 3, 0, 0, 1),   // r3 = sf + 1
		bpfInsn(bpfMulReg, 2, 3, 0, 0),   // r2 = sf * (sf + 1)
		bpfInsn(bpfDivImm, 2, 0, 0, 2),   // r2 /= 2
		bpfInsn(bpfMovImm, 0, 0, 0, 0),   // r0 = 0
		bpfInsn(bpfJEqReg, 6, 2, 1, 0),   // if sum == expected goto success
		bpfInsn(bpfExit, 0, 0, 0, 0),
		bpfInsn(bpfMovImm, 0, 0, 0, 1), // r0 = 1
		bpfInsn(bpfExit, 0, 0, 0, 0),
	}

	var buf bytes.Buffer
	for _, ins := range prog {
		buf.Write(ins[:])
	}
	return buf.Bytes()
}

// BPFPayload returns the instruction stream for the named workload.
func BPFPayload(name string) ([]byte, bool) {
	if name == "sum" {
		return sumBPF(), true
	}
	return nil, false
}
