package cpu

import (
	"strings"
	"testing"

	"github.com/moregh/cpu8/pkg/display"
	"github.com/moregh/cpu8/pkg/inst"
)

func TestNewEngineRoundsMemoryUpToPowerOfTwo(t *testing.T) {
	e, err := NewEngine(5, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if e.Mem.Size() != 8*1024 {
		t.Errorf("Mem.Size() = %d, want %d", e.Mem.Size(), 8*1024)
	}
}

func TestNewEngineClampsToBounds(t *testing.T) {
	e, _ := NewEngine(1, nil)
	if e.Mem.Size() != MinMemKB*1024 {
		t.Errorf("Mem.Size() = %d, want min %d", e.Mem.Size(), MinMemKB*1024)
	}

	e2, _ := NewEngine(1<<20, nil)
	if e2.Mem.Size() != MaxMemKB*1024 {
		t.Errorf("Mem.Size() = %d, want max %d", e2.Mem.Size(), MaxMemKB*1024)
	}
}

func TestTickIsNoOpWhenHalted(t *testing.T) {
	e, _ := NewEngine(MinMemKB, nil)
	e.Flags.H = true
	before := e.Ticks
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if e.Ticks != before {
		t.Errorf("Ticks advanced while halted: %d -> %d", before, e.Ticks)
	}
}

func TestTickAdvancesPCPastOperand(t *testing.T) {
	e, _ := NewEngine(MinMemKB, nil)
	program := []byte{byte(inst.LDA), 0x55, byte(inst.HLT)}
	if err := e.LoadData(program, 0); err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if e.Reg.A != 0x55 {
		t.Errorf("A = %#x, want 0x55", e.Reg.A)
	}
	if e.Reg.PC != 2 {
		t.Errorf("PC = %d, want 2", e.Reg.PC)
	}
	if e.Ticks != 1 {
		t.Errorf("Ticks = %d, want 1", e.Ticks)
	}
}

func TestRunStopsOnHalt(t *testing.T) {
	e, _ := NewEngine(MinMemKB, nil)
	program := []byte{
		byte(inst.LDA), 3,
		byte(inst.INA),
		byte(inst.INA),
		byte(inst.HLT),
	}
	if err := e.LoadData(program, 0); err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	summary := e.Run(0, nil, nil)
	if !e.Halted() {
		t.Fatalf("engine did not halt")
	}
	if e.Reg.A != 5 {
		t.Errorf("A = %d, want 5", e.Reg.A)
	}
	if summary.Interrupted {
		t.Errorf("summary.Interrupted = true, want false")
	}
	if summary.Ticks != 4 {
		t.Errorf("summary.Ticks = %d, want 4", summary.Ticks)
	}
}

func TestRunStopsOnSignal(t *testing.T) {
	e, _ := NewEngine(MinMemKB, nil)
	program := []byte{byte(inst.NOP)}
	e.LoadData(program, 0)
	// stop is closed before Run starts, so Run returns before the first tick
	// (left running, the NOP would be followed by the zeroed byte at address
	// 1, which halts).
	stop := make(chan struct{})
	close(stop)
	summary := e.Run(0, nil, stop)
	if !summary.Interrupted {
		t.Errorf("summary.Interrupted = false, want true")
	}
}

func TestRunInvokesReportEveryInterval(t *testing.T) {
	e, _ := NewEngine(MinMemKB, nil)
	program := []byte{
		byte(inst.INA),
		byte(inst.JMP), 0x00, 0x00,
	}
	e.LoadData(program, 0)
	var reports int
	stop := make(chan struct{})
	var last int
	var stopped bool
	report := func(eng *Engine) {
		reports++
		last = int(eng.Ticks)
		if eng.Ticks >= 10 && !stopped {
			stopped = true
			close(stop)
		}
	}
	e.Run(2, report, stop)
	if reports == 0 {
		t.Errorf("report was never called")
	}
	if last < 10 {
		t.Errorf("last reported tick = %d, want >= 10", last)
	}
}

func TestResetClearsStateAndMemory(t *testing.T) {
	e, _ := NewEngine(MinMemKB, nil)
	e.LoadData([]byte{byte(inst.LDA), 0x42, byte(inst.HLT)}, 0)
	e.Run(0, nil, nil)
	e.Reset()
	if e.Halted() {
		t.Errorf("engine still halted after Reset")
	}
	if e.Reg.A != 0 || e.Ticks != 2 {
		t.Errorf("Reg not cleared or Ticks not kept: %+v, ticks=%d (want ticks=2)", e.Reg, e.Ticks)
	}
	if e.Mem.Read(0) != 0 {
		t.Errorf("memory not cleared after Reset")
	}
}

type recordingDisplay struct {
	frames int
	len    int
}

func (d *recordingDisplay) Len() int {
	return d.len
}

func (d *recordingDisplay) Draw(frame []byte) error {
	d.frames++
	return nil
}

func TestTickDrawsToAttachedDisplay(t *testing.T) {
	disp := &recordingDisplay{len: 4}
	e, _ := NewEngine(MinMemKB, disp)
	e.LoadData([]byte{byte(inst.NOP), byte(inst.HLT)}, 0)
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if disp.frames != 1 {
		t.Errorf("frames = %d, want 1", disp.frames)
	}
}

// TestTickDrawsExactFramebufferTail exercises a real *display.Display (not a
// stub that accepts any length) to catch any mismatch between the bytes
// Tick slices off memory and what Draw actually requires.
func TestTickDrawsExactFramebufferTail(t *testing.T) {
	var sink recordingSink
	disp := &display.Display{Width: 4, Height: 2, FPS: display.DefaultFPS, Sink: &sink}
	e, _ := NewEngine(MinMemKB, disp)
	e.LoadData([]byte{byte(inst.NOP), byte(inst.HLT)}, 0)

	if err := e.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if sink.writes != 1 {
		t.Fatalf("display rendered %d frames, want 1", sink.writes)
	}

	wantLen := disp.Len()
	if wantLen != 8 {
		t.Fatalf("disp.Len() = %d, want 8", wantLen)
	}
	gotLines := strings.Count(sink.last, "\n")
	if gotLines != disp.Height {
		t.Errorf("rendered %d lines, want %d", gotLines, disp.Height)
	}
}

// recordingSink is an io.Writer that keeps the most recent write so tests
// can assert on exactly what a Display rendered.
type recordingSink struct {
	writes int
	last   string
}

func (s *recordingSink) Write(p []byte) (int, error) {
	s.writes++
	s.last = string(p)
	return len(p), nil
}
