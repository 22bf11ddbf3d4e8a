// Package fuzz generates random instruction sequences and checks that the
// engine's quantified invariants hold for them. It mutates without a cost
// function to minimize — there is no "better" program here, only "did an
// invariant break" — which is why it reaches for math/rand/v2 directly
// instead of the simulated-annealing search it is grounded on.
package fuzz

import (
	"fmt"
	"math/rand/v2"

	"github.com/moregh/cpu8/pkg/cpu"
	"github.com/moregh/cpu8/pkg/inst"
)

// RandomProgram draws n random catalog opcodes, each with randomly filled
// operand bytes, and returns them as a decoded instruction sequence. The
// last instruction is always HLT so a run terminates.
func RandomProgram(rng *rand.Rand, n int) []inst.Instruction {
	prog := make([]inst.Instruction, 0, n+1)
	for i := 0; i < n; i++ {
		op := inst.OpCode(rng.IntN(int(inst.OpCodeCount)))
		if op == inst.HLT {
			// HLT ends the program early if drawn mid-sequence; keep the
			// sequence length predictable by redrawing once.
			op = inst.OpCode(1 + rng.IntN(int(inst.OpCodeCount)-1))
		}
		operand := make([]byte, inst.OperandBytes(op))
		for j := range operand {
			operand[j] = byte(rng.IntN(256))
		}
		prog = append(prog, inst.Instruction{Op: op, Operand: operand})
	}
	prog = append(prog, inst.Instruction{Op: inst.HLT})
	return prog
}

// Assemble flattens a decoded instruction sequence into its byte encoding.
func Assemble(prog []inst.Instruction) []byte {
	var out []byte
	for _, in := range prog {
		out = in.Encode(out)
	}
	return out
}

// InvariantViolation describes a quantified invariant that failed during a
// run, along with the tick at which it was observed.
type InvariantViolation struct {
	Tick uint64
	Rule string
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("tick %d: %s", v.Tick, v.Rule)
}

// CheckInvariants runs engine for up to maxTicks, asserting after every
// tick that the tick counter advanced by exactly one and that Tick is a
// true no-op once halted. A random program that loops forever (e.g. a
// backward jump) is not itself a violation — only a broken invariant is.
// It returns the first violation found, or nil if none occurred.
func CheckInvariants(engine *cpu.Engine, maxTicks uint64) error {
	for !engine.Halted() && engine.Ticks < maxTicks {
		before := engine.Ticks
		if err := engine.Tick(); err != nil {
			return err
		}
		if engine.Ticks != before+1 {
			return InvariantViolation{Tick: engine.Ticks, Rule: "tick counter did not advance by exactly one"}
		}
	}
	if engine.Halted() {
		ticksAtHalt := engine.Ticks
		if err := engine.Tick(); err != nil {
			return err
		}
		if engine.Ticks != ticksAtHalt {
			return InvariantViolation{Tick: engine.Ticks, Rule: "Tick advanced the counter while halted"}
		}
	}
	return nil
}

// RunRandomPrograms generates count random programs of length progLen,
// assembles and runs each to completion (or maxTicks), and returns the
// first invariant violation encountered, or nil if every run was clean.
func RunRandomPrograms(seed uint64, count, progLen int, maxTicks uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed^0xA5A5A5A5))
	for i := 0; i < count; i++ {
		prog := RandomProgram(rng, progLen)
		code := Assemble(prog)

		engine, err := cpu.NewEngine(cpu.MinMemKB, nil)
		if err != nil {
			return err
		}
		if err := engine.LoadData(code, 0); err != nil {
			// A randomly generated program that doesn't fit is not an
			// invariant violation, just an unlucky draw; skip it.
			continue
		}
		if err := CheckInvariants(engine, maxTicks); err != nil {
			return fmt.Errorf("program %d: %w", i, err)
		}
	}
	return nil
}
