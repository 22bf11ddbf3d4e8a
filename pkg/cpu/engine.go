package cpu

import "github.com/moregh/cpu8/pkg/inst"

// Display is the framebuffer sink an Engine hands its memory-mapped display
// region to after every tick. Len reports how many trailing bytes of memory
// make up the framebuffer; Draw is handed exactly that many bytes. Draw
// returning an error aborts Run.
type Display interface {
	Len() int
	Draw(frame []byte) error
}

// RunSummary reports how a Run call ended.
type RunSummary struct {
	Ticks       uint64
	Interrupted bool
	Err         error
}

// Engine is the fetch-decode-execute machine: register file, flags, memory,
// tick counter, and an optional attached Display. It is single-threaded —
// nothing inside Engine synchronizes access, so one Engine must never be
// shared across goroutines (see harness.Pool, whose workers build their
// own Engine for every job).
type Engine struct {
	Reg   Registers
	Flags Flags
	Mem   *Memory
	Ticks uint64

	display Display
}

// NewEngine allocates a zeroed Engine with memory sized (after rounding up
// to the next power of two, clamped to [MinMemKB, MaxMemKB] KB) to memSizeKB
// kilobytes. display may be nil.
func NewEngine(memSizeKB int, display Display) (*Engine, error) {
	return &Engine{
		Mem:     newMemory(memSizeKB * 1024),
		display: display,
	}, nil
}

// LoadData copies a byte stream into memory at offset and resets the
// register/flag/tick state so the engine is ready to run from address 0 (or
// wherever the caller sets Reg.PC after loading).
func (e *Engine) LoadData(data []byte, offset int) error {
	if err := e.Mem.Load(data, offset); err != nil {
		return err
	}
	e.Reg = Registers{}
	e.Flags = Flags{}
	e.Ticks = 0
	return nil
}

// Halted reports whether the halt flag is set.
func (e *Engine) Halted() bool {
	return e.Flags.H
}

// Reset zeroes registers and flags and clears memory, so the engine can run
// again from a clean state. The tick counter, memory size and display
// binding are kept. Halted -> Running only happens here.
func (e *Engine) Reset() {
	e.Reg = Registers{}
	e.Flags = Flags{}
	e.Mem.Reset()
}

// Tick fetches, decodes, and executes exactly one instruction, advancing PC
// past the opcode and its operand bytes before Exec runs (so a jump opcode's
// write to PC is not immediately overwritten). It is a no-op if the engine
// is already halted. If a display is attached, Tick hands it the trailing
// display.Len() bytes of memory as the framebuffer; a non-nil error from
// Draw is returned as-is.
func (e *Engine) Tick() error {
	if e.Halted() {
		return nil
	}
	op := inst.OpCode(e.Mem.Read(e.Reg.PC))
	n := inst.OperandBytes(op)

	operand := make([]byte, n)
	for i := 0; i < n; i++ {
		operand[i] = e.Mem.Read(e.Reg.PC + 1 + uint16(i))
	}
	e.Reg.PC = (e.Reg.PC + 1 + uint16(n)) & e.Mem.Mask()

	e.Flags = Exec(&e.Reg, e.Flags, op, operand, e.Mem)
	e.Ticks++

	if e.display != nil {
		frame := e.Mem.Slice(e.Mem.Size()-e.display.Len(), e.Mem.Size())
		if err := e.display.Draw(frame); err != nil {
			return err
		}
	}
	return nil
}

// Run executes Tick repeatedly until the engine halts, stop is closed, or
// Tick returns an error. When reportInterval > 0 and report is non-nil,
// report is called every reportInterval ticks; on a stop signal or a Tick
// error, report is called one final time before returning with Interrupted
// or Err set respectively.
func (e *Engine) Run(reportInterval int, report func(*Engine), stop <-chan struct{}) RunSummary {
	for !e.Halted() {
		select {
		case <-stop:
			if report != nil {
				report(e)
			}
			return RunSummary{Ticks: e.Ticks, Interrupted: true}
		default:
		}

		if err := e.Tick(); err != nil {
			if report != nil {
				report(e)
			}
			return RunSummary{Ticks: e.Ticks, Err: err}
		}

		if reportInterval > 0 && report != nil && e.Ticks%uint64(reportInterval) == 0 {
			report(e)
		}
	}
	if report != nil {
		report(e)
	}
	return RunSummary{Ticks: e.Ticks}
}
