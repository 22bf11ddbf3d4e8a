package cpu

import (
	"testing"

	"github.com/moregh/cpu8/pkg/inst"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	m, err := newRawMemory(256)
	if err != nil {
		t.Fatalf("newRawMemory: %v", err)
	}
	return m
}

func TestExecArithmeticFlags(t *testing.T) {
	cases := []struct {
		name    string
		a, x    uint8
		op      inst.OpCode
		wantA   uint8
		wantF   Flags
	}{
		{"add no overflow", 10, 20, inst.AAX, 30, BlankFlags},
		{"add exactly 256 sets Z and O", 200, 56, inst.AAX, 0, Flags{Z: true, O: true}},
		{"add overflow above 256", 200, 100, inst.AAX, 44, OverflowFlags},
		{"subtract underflow", 5, 10, inst.SAX, 251, NegativeFlags},
		{"subtract to zero", 7, 7, inst.SAX, 0, ZeroFlags},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := &Registers{A: tc.a, X: tc.x}
			mem := newTestMemory(t)
			f := Exec(reg, BlankFlags, tc.op, nil, mem)
			if reg.A != tc.wantA {
				t.Errorf("A = %d, want %d", reg.A, tc.wantA)
			}
			if f != tc.wantF {
				t.Errorf("flags = %+v, want %+v", f, tc.wantF)
			}
		})
	}
}

func TestExecAdd256SetsBothZAndO(t *testing.T) {
	reg := &Registers{A: 128, X: 128}
	mem := newTestMemory(t)
	f := Exec(reg, BlankFlags, inst.AAX, nil, mem)
	if reg.A != 0 {
		t.Fatalf("A = %d, want 0", reg.A)
	}
	if !f.Z || !f.O {
		t.Fatalf("flags = %+v, want Z and O both set", f)
	}
}

func TestExecHLTSetsHaltFlag(t *testing.T) {
	reg := &Registers{}
	mem := newTestMemory(t)
	f := Exec(reg, BlankFlags, inst.HLT, nil, mem)
	if !f.H {
		t.Fatalf("flags = %+v, want H set", f)
	}
}

func TestExecUnknownOpcodeHalts(t *testing.T) {
	reg := &Registers{}
	mem := newTestMemory(t)
	f := Exec(reg, BlankFlags, inst.OpCodeCount+10, nil, mem)
	if !f.H {
		t.Fatalf("flags = %+v, want H set for unknown opcode", f)
	}
}

func TestExecMemoryRoundTrip(t *testing.T) {
	reg := &Registers{A: 42}
	mem := newTestMemory(t)
	Exec(reg, BlankFlags, inst.WMA, []byte{0x00, 0x10}, mem)
	reg2 := &Registers{}
	Exec(reg2, BlankFlags, inst.RMA, []byte{0x00, 0x10}, mem)
	if reg2.A != 42 {
		t.Errorf("RMA read back %d, want 42", reg2.A)
	}
}

func TestExecIndexedMemory(t *testing.T) {
	reg := &Registers{A: 7, X: 5, Y: 0}
	mem := newTestMemory(t)
	Exec(reg, BlankFlags, inst.WMI, nil, mem)
	reg2 := &Registers{X: 5, Y: 0}
	Exec(reg2, BlankFlags, inst.RMI, nil, mem)
	if reg2.A != 7 {
		t.Errorf("RMI read back %d, want 7", reg2.A)
	}
}

func TestExecConditionalJumpRespectsFlags(t *testing.T) {
	reg := &Registers{PC: 0}
	mem := newTestMemory(t)
	f := Exec(reg, ZeroFlags, inst.JMZ, []byte{0x00, 0x40}, mem)
	if reg.PC != 0x40 {
		t.Errorf("PC = %#x, want 0x40 (JMZ should take when Z is set)", reg.PC)
	}
	if f != BlankFlags {
		t.Errorf("jump flags = %+v, want blank", f)
	}

	reg2 := &Registers{PC: 0}
	Exec(reg2, BlankFlags, inst.JMZ, []byte{0x00, 0x40}, mem)
	if reg2.PC != 0 {
		t.Errorf("PC = %#x, want 0 (JMZ should not take when Z is clear)", reg2.PC)
	}
}

func TestExecConditionalLoad(t *testing.T) {
	reg := &Registers{A: 1}
	mem := newTestMemory(t)
	Exec(reg, ZeroFlags, inst.CAZ, []byte{99}, mem)
	if reg.A != 99 {
		t.Errorf("A = %d, want 99 (CAZ should load when Z set)", reg.A)
	}

	reg2 := &Registers{A: 1}
	Exec(reg2, BlankFlags, inst.CAZ, []byte{99}, mem)
	if reg2.A != 1 {
		t.Errorf("A = %d, want unchanged 1 (CAZ should not load when Z clear)", reg2.A)
	}
}

func TestExecShifts(t *testing.T) {
	reg := &Registers{A: 0x81}
	mem := newTestMemory(t)
	Exec(reg, BlankFlags, inst.BLA, nil, mem)
	if reg.A != 0x02 {
		t.Errorf("BLA result = %#x, want 0x02 (top bit dropped on truncation)", reg.A)
	}

	reg2 := &Registers{A: 0x81}
	Exec(reg2, BlankFlags, inst.BRA, nil, mem)
	if reg2.A != 0x40 {
		t.Errorf("BRA result = %#x, want 0x40", reg2.A)
	}
}

func TestExecFillAndCopyAndCompare(t *testing.T) {
	reg := &Registers{A: 4, X: 0, Y: 0}
	mem := newTestMemory(t)
	Exec(reg, BlankFlags, inst.FIL, []byte{0xAB}, mem)
	for i := 0; i < 4; i++ {
		if mem.Read(uint16(i)) != 0xAB {
			t.Fatalf("byte %d = %#x, want 0xAB", i, mem.Read(uint16(i)))
		}
	}

	Exec(reg, BlankFlags, inst.CPY, []byte{0x00, 0x20}, mem)
	for i := 0; i < 4; i++ {
		if mem.Read(uint16(0x20+i)) != 0xAB {
			t.Fatalf("copied byte %d = %#x, want 0xAB", i, mem.Read(uint16(0x20+i)))
		}
	}

	f := Exec(reg, BlankFlags, inst.CMP, []byte{0x00, 0x20}, mem)
	if f != ZeroFlags {
		t.Errorf("CMP flags = %+v, want ZeroFlags for identical regions", f)
	}

	mem.Write(0x20, 0xFF)
	f = Exec(reg, BlankFlags, inst.CMP, []byte{0x00, 0x20}, mem)
	if f != BlankFlags {
		t.Errorf("CMP flags = %+v, want BlankFlags for differing regions", f)
	}
}
