package fuzz

import (
	"math/rand/v2"
	"testing"

	"github.com/moregh/cpu8/pkg/cpu"
	"github.com/moregh/cpu8/pkg/inst"
)

func TestRandomProgramEndsWithHLT(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	prog := RandomProgram(rng, 20)
	if len(prog) != 21 {
		t.Fatalf("len(prog) = %d, want 21", len(prog))
	}
	if prog[len(prog)-1].Op != inst.HLT {
		t.Errorf("last instruction = %v, want HLT", prog[len(prog)-1].Op)
	}
	for _, in := range prog[:len(prog)-1] {
		if in.Op == inst.HLT {
			t.Errorf("HLT found before the end of the sequence")
		}
	}
}

func TestAssembleProducesCorrectByteLength(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 9))
	prog := RandomProgram(rng, 10)
	code := Assemble(prog)
	want := 0
	for _, in := range prog {
		want += in.ByteSize()
	}
	if len(code) != want {
		t.Errorf("len(code) = %d, want %d", len(code), want)
	}
}

func TestCheckInvariantsOnHaltingProgram(t *testing.T) {
	engine, _ := cpu.NewEngine(cpu.MinMemKB, nil)
	engine.LoadData([]byte{byte(inst.LDA), 1, byte(inst.HLT)}, 0)
	if err := CheckInvariants(engine, 100); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

func TestRunRandomProgramsIsClean(t *testing.T) {
	if err := RunRandomPrograms(42, 25, 8, 500); err != nil {
		t.Fatalf("RunRandomPrograms: %v", err)
	}
}
