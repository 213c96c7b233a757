// Package bpfvm adapts a small userspace eBPF interpreter to the
// benchmark lifecycle. Workloads are raw eBPF bytecode; Load decodes them
// with the cilium/ebpf assembler and Execute interprets the instruction
// stream directly. The program's verdict is register r0 at exit, with 1
// meaning the self-check passed.
package bpfvm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/cilium/ebpf/asm"

	"runebench/internal/core"
)

// stepBudget bounds the interpreter so a buggy workload with a wrong jump
// offset terminates as a runtime error instead of spinning forever.
const stepBudget = 1 << 24

type Engine struct{}

type vmHandle struct {
	regs [11]uint64
}

// New constructs a fresh interpreter adapter.
func New() core.Adapter { return &Engine{} }

func (e *Engine) Name() string { return "bpf" }

func (e *Engine) Init() (core.Handle, error) {
	return &vmHandle{}, nil
}

// Load decodes the bytecode into instructions. Decoding is this engine's
// parse phase; a malformed or truncated stream is a ParseError.
func (e *Engine) Load(_ core.Handle, w *core.Workload) (core.Program, error) {
	if len(w.Bytes) == 0 || len(w.Bytes)%asm.InstructionSize != 0 {
		return nil, core.Errorf(core.ParseError, "%s: bytecode length %d is not a whole number of instructions", w.Name, len(w.Bytes))
	}
	r := bytes.NewReader(w.Bytes)
	var insns []asm.Instruction
	for {
		var ins asm.Instruction
		_, err := ins.Unmarshal(r, binary.LittleEndian)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.Errorf(core.ParseError, "%s: decoding instruction %d: %v", w.Name, len(insns), err)
		}
		if ins.Dst > asm.R10 || ins.Src > asm.R10 {
			return nil, core.Errorf(core.ParseError, "%s: instruction %d references register beyond r10", w.Name, len(insns))
		}
		insns = append(insns, ins)
	}
	if len(insns) == 0 {
		return nil, core.Errorf(core.ParseError, "%s: empty program", w.Name)
	}
	return insns, nil
}

func (e *Engine) Execute(h core.Handle, p core.Program) (core.Value, error) {
	vh := h.(*vmHandle)
	insns := p.([]asm.Instruction)

	r0, err := vh.run(insns)
	if err != nil {
		return nil, err
	}
	if r0 == 0 || r0 == 1 {
		return r0 == 1, nil
	}
	return r0, nil
}

func (e *Engine) Teardown(h core.Handle) {
	vh, ok := h.(*vmHandle)
	if !ok {
		return
	}
	vh.regs = [11]uint64{}
}

// run interprets the ALU64 and jump subset the benchmark payloads use.
// Memory, calls, and atomics are outside this VM's scope and reported as
// runtime errors.
func (vh *vmHandle) run(insns []asm.Instruction) (uint64, error) {
	regs := &vh.regs
	pc := 0

	for steps := 0; steps < stepBudget; steps++ {
		if pc < 0 || pc >= len(insns) {
			return 0, core.Errorf(core.RuntimeError, "jump out of bounds to %d", pc)
		}
		ins := insns[pc]
		op := ins.OpCode
		dst, src := int(ins.Dst), int(ins.Src)

		switch cls := op.Class(); {
		case cls.IsALU():
			operand := uint64(ins.Constant)
			if op.Source() == asm.RegSource {
				operand = regs[src]
			}
			switch op.ALUOp() {
			case asm.Mov:
				regs[dst] = operand
			case asm.Add:
				regs[dst] += operand
			case asm.Sub:
				regs[dst] -= operand
			case asm.Mul:
				regs[dst] *= operand
			case asm.Div:
				if operand == 0 {
					return 0, core.Errorf(core.RuntimeError, "division by zero at %d", pc)
				}
				regs[dst] /= operand
			case asm.Mod:
				if operand == 0 {
					return 0, core.Errorf(core.RuntimeError, "modulo by zero at %d", pc)
				}
				regs[dst] %= operand
			case asm.And:
				regs[dst] &= operand
			case asm.Or:
				regs[dst] |= operand
			case asm.Xor:
				regs[dst] ^= operand
			case asm.LSh:
				regs[dst] <<= operand & 63
			case asm.RSh:
				regs[dst] >>= operand & 63
			case asm.Neg:
				regs[dst] = -regs[dst]
			default:
				return 0, core.Errorf(core.RuntimeError, "unsupported alu op %v at %d", op, pc)
			}
			if cls == asm.ALUClass {
				regs[dst] &= 0xffffffff
			}
			pc++

		case cls.IsJump():
			if op.JumpOp() == asm.Exit {
				return regs[0], nil
			}
			if op.JumpOp() == asm.Ja {
				pc += int(ins.Offset) + 1
				continue
			}
			operand := uint64(ins.Constant)
			if op.Source() == asm.RegSource {
				operand = regs[src]
			}
			var taken bool
			switch op.JumpOp() {
			case asm.JEq:
				taken = regs[dst] == operand
			case asm.JNE:
				taken = regs[dst] != operand
			case asm.JGT:
				taken = regs[dst] > operand
			case asm.JGE:
				taken = regs[dst] >= operand
			case asm.JLT:
				taken = regs[dst] < operand
			case asm.JLE:
				taken = regs[dst] <= operand
			case asm.JSGT:
				taken = int64(regs[dst]) > int64(operand)
			case asm.JSGE:
				taken = int64(regs[dst]) >= int64(operand)
			case asm.JSLT:
				taken = int64(regs[dst]) < int64(operand)
			case asm.JSLE:
				taken = int64(regs[dst]) <= int64(operand)
			case asm.JSet:
				taken = regs[dst]&operand != 0
			default:
				return 0, core.Errorf(core.RuntimeError, "unsupported jump op %v at %d", op, pc)
			}
			if taken {
				pc += int(ins.Offset) + 1
			} else {
				pc++
			}

		default:
			return 0, core.Errorf(core.RuntimeError, "unsupported instruction class %v at %d", cls, pc)
		}
	}
	return 0, core.Errorf(core.RuntimeError, "instruction budget exhausted after %d steps", stepBudget)
}
