package cpu

import "github.com/moregh/cpu8/pkg/inst"

// addr16 combines a big-endian two-byte operand into a 16-bit address.
func addr16(data []byte) uint16 {
	return uint16(data[0])<<8 | uint16(data[1])
}

// indexed returns the (Y*256 + X) address used by the indexed and
// block-operation opcodes.
func indexed(reg *Registers) uint16 {
	return uint16(reg.Y)*256 + uint16(reg.X)
}

// Exec applies the transition for a single decoded instruction: it mutates
// reg and mem in place and returns the resulting flags. data holds exactly
// inst.OperandBytes(op) bytes, already fetched by the engine. flags is the
// flag state in effect before this instruction runs, which the conditional
// jump and conditional-load opcodes read.
func Exec(reg *Registers, flags Flags, op inst.OpCode, data []byte, mem *Memory) Flags {
	switch op {

	// --- Control ---
	case inst.HLT:
		return HaltFlags
	case inst.CLR:
		reg.A, reg.X, reg.Y = 0, 0, 0
		return BlankFlags
	case inst.NOP:
		return BlankFlags

	// --- Immediate loads ---
	case inst.LDA:
		reg.A = data[0]
		return BlankFlags
	case inst.LDX:
		reg.X = data[0]
		return BlankFlags
	case inst.LDY:
		reg.Y = data[0]
		return BlankFlags

	// --- Register copies ---
	case inst.CAX:
		reg.X = reg.A
		return resultFlags(int(reg.X))
	case inst.CAY:
		reg.Y = reg.A
		return resultFlags(int(reg.Y))
	case inst.CXA:
		reg.A = reg.X
		return resultFlags(int(reg.A))
	case inst.CYA:
		reg.A = reg.Y
		return resultFlags(int(reg.A))
	case inst.CXY:
		reg.Y = reg.X
		return resultFlags(int(reg.Y))
	case inst.CYX:
		reg.X = reg.Y
		return resultFlags(int(reg.X))

	// --- Memory, absolute ---
	case inst.WMA:
		mem.Write(addr16(data), reg.A)
		return BlankFlags
	case inst.WMX:
		mem.Write(addr16(data), reg.X)
		return BlankFlags
	case inst.WMY:
		mem.Write(addr16(data), reg.Y)
		return BlankFlags
	case inst.RMA:
		reg.A = mem.Read(addr16(data))
		return BlankFlags
	case inst.RMX:
		reg.X = mem.Read(addr16(data))
		return BlankFlags
	case inst.RMY:
		reg.Y = mem.Read(addr16(data))
		return BlankFlags

	// --- Memory, indexed ---
	case inst.RMI:
		reg.A = mem.Read(indexed(reg))
		return resultFlags(int(reg.A))
	case inst.WMI:
		mem.Write(indexed(reg), reg.A)
		return BlankFlags

	// --- Memory, base+X offset ---
	case inst.RMO:
		base := addr16(data)
		reg.A = mem.Read(base + uint16(reg.X))
		return resultFlags(int(reg.A))
	case inst.WMO:
		base := addr16(data)
		mem.Write(base+uint16(reg.X), reg.A)
		return BlankFlags

	// --- Block operations ---
	case inst.FIL:
		base := indexed(reg)
		v := data[0]
		for i := 0; i < int(reg.A); i++ {
			mem.Write(base+uint16(i), v)
		}
		return BlankFlags
	case inst.CPY:
		base := indexed(reg)
		dst := addr16(data)
		for i := 0; i < int(reg.A); i++ {
			mem.Write(dst+uint16(i), mem.Read(base+uint16(i)))
		}
		return BlankFlags
	case inst.CMP:
		base := indexed(reg)
		dst := addr16(data)
		for i := 0; i < int(reg.A); i++ {
			if mem.Read(base+uint16(i)) != mem.Read(dst+uint16(i)) {
				return BlankFlags
			}
		}
		return ZeroFlags

	// --- Arithmetic ---
	case inst.AAX:
		var f Flags
		reg.A, f = truncate(int(reg.A) + int(reg.X))
		return f
	case inst.AAY:
		var f Flags
		reg.A, f = truncate(int(reg.A) + int(reg.Y))
		return f
	case inst.AXY:
		var f Flags
		reg.X, f = truncate(int(reg.X) + int(reg.Y))
		return f
	case inst.SAX:
		var f Flags
		reg.A, f = truncate(int(reg.A) - int(reg.X))
		return f
	case inst.SAY:
		var f Flags
		reg.A, f = truncate(int(reg.A) - int(reg.Y))
		return f
	case inst.SXY:
		var f Flags
		reg.X, f = truncate(int(reg.X) - int(reg.Y))
		return f
	case inst.INA:
		var f Flags
		reg.A, f = truncate(int(reg.A) + 1)
		return f
	case inst.INX:
		var f Flags
		reg.X, f = truncate(int(reg.X) + 1)
		return f
	case inst.INY:
		var f Flags
		reg.Y, f = truncate(int(reg.Y) + 1)
		return f
	case inst.DEA:
		var f Flags
		reg.A, f = truncate(int(reg.A) - 1)
		return f
	case inst.DEX:
		var f Flags
		reg.X, f = truncate(int(reg.X) - 1)
		return f
	case inst.DEY:
		var f Flags
		reg.Y, f = truncate(int(reg.Y) - 1)
		return f

	// --- Bitwise logic ---
	case inst.NAX:
		reg.A &= reg.X
		return resultFlags(int(reg.A))
	case inst.NAY:
		reg.A &= reg.Y
		return resultFlags(int(reg.A))
	case inst.NXY:
		reg.X &= reg.Y
		return resultFlags(int(reg.X))
	case inst.OAX:
		reg.A |= reg.X
		return resultFlags(int(reg.A))
	case inst.OAY:
		reg.A |= reg.Y
		return resultFlags(int(reg.A))
	case inst.OXY:
		reg.X |= reg.Y
		return resultFlags(int(reg.X))
	case inst.XAX:
		reg.A ^= reg.X
		return resultFlags(int(reg.A))
	case inst.XAY:
		reg.A ^= reg.Y
		return resultFlags(int(reg.A))
	case inst.XXY:
		reg.X ^= reg.Y
		return resultFlags(int(reg.X))

	// --- Shifts ---
	case inst.BLA:
		var f Flags
		reg.A, f = truncate(int(reg.A) << 1)
		return f
	case inst.BLX:
		var f Flags
		reg.X, f = truncate(int(reg.X) << 1)
		return f
	case inst.BLY:
		var f Flags
		reg.Y, f = truncate(int(reg.Y) << 1)
		return f
	case inst.BRA:
		reg.A = reg.A >> 1
		return resultFlags(int(reg.A))
	case inst.BRX:
		reg.X = reg.X >> 1
		return resultFlags(int(reg.X))
	case inst.BRY:
		reg.Y = reg.Y >> 1
		return resultFlags(int(reg.Y))

	// --- Equality ---
	case inst.EAX:
		if reg.A != reg.X {
			return BlankFlags
		}
		return ZeroFlags
	case inst.EAY:
		if reg.A != reg.Y {
			return BlankFlags
		}
		return ZeroFlags
	case inst.EXY:
		if reg.X != reg.Y {
			return BlankFlags
		}
		return ZeroFlags

	// --- Absolute jumps. Flags are unconditionally blanked, taken or not. ---
	case inst.JMP:
		reg.PC = addr16(data)
		return BlankFlags
	case inst.JNZ:
		return execCondJump(reg, data, !flags.Z)
	case inst.JMZ:
		return execCondJump(reg, data, flags.Z)
	case inst.JNN:
		return execCondJump(reg, data, !flags.N)
	case inst.JMN:
		return execCondJump(reg, data, flags.N)
	case inst.JNO:
		return execCondJump(reg, data, !flags.O)
	case inst.JMO:
		return execCondJump(reg, data, flags.O)

	// --- Relative jumps ---
	case inst.JFA:
		reg.PC = (reg.PC + uint16(reg.A)) & mem.Mask()
		return BlankFlags
	case inst.JFX:
		reg.PC = (reg.PC + uint16(reg.X)) & mem.Mask()
		return BlankFlags
	case inst.JFY:
		reg.PC = (reg.PC + uint16(reg.Y)) & mem.Mask()
		return BlankFlags
	case inst.JBA:
		reg.PC = (reg.PC - uint16(reg.A)) & mem.Mask()
		return BlankFlags
	case inst.JBX:
		reg.PC = (reg.PC - uint16(reg.X)) & mem.Mask()
		return BlankFlags
	case inst.JBY:
		reg.PC = (reg.PC - uint16(reg.Y)) & mem.Mask()
		return BlankFlags

	// --- Conditional immediate loads: A ---
	case inst.CAZ:
		return execCondLoad(&reg.A, data[0], flags.Z)
	case inst.NAZ:
		return execCondLoad(&reg.A, data[0], !flags.Z)
	case inst.CAO:
		return execCondLoad(&reg.A, data[0], flags.O)
	case inst.NAO:
		return execCondLoad(&reg.A, data[0], !flags.O)
	case inst.CAN:
		return execCondLoad(&reg.A, data[0], flags.N)
	case inst.NAN:
		return execCondLoad(&reg.A, data[0], !flags.N)

	// --- Conditional immediate loads: X ---
	case inst.CXZ:
		return execCondLoad(&reg.X, data[0], flags.Z)
	case inst.NXZ:
		return execCondLoad(&reg.X, data[0], !flags.Z)
	case inst.CXO:
		return execCondLoad(&reg.X, data[0], flags.O)
	case inst.NXO:
		return execCondLoad(&reg.X, data[0], !flags.O)
	case inst.CXN:
		return execCondLoad(&reg.X, data[0], flags.N)
	case inst.NXN:
		return execCondLoad(&reg.X, data[0], !flags.N)

	// --- Conditional immediate loads: Y ---
	case inst.CYZ:
		return execCondLoad(&reg.Y, data[0], flags.Z)
	case inst.NYZ:
		return execCondLoad(&reg.Y, data[0], !flags.Z)
	case inst.CYO:
		return execCondLoad(&reg.Y, data[0], flags.O)
	case inst.NYO:
		return execCondLoad(&reg.Y, data[0], !flags.O)
	case inst.CYN:
		return execCondLoad(&reg.Y, data[0], flags.N)
	case inst.NYN:
		return execCondLoad(&reg.Y, data[0], !flags.N)

	default:
		// Undefined opcode byte: decode as HLT (see DESIGN.md open question 1).
		return HaltFlags
	}
}

func execCondJump(reg *Registers, data []byte, take bool) Flags {
	if take {
		reg.PC = addr16(data)
	}
	return BlankFlags
}

func execCondLoad(dest *uint8, value uint8, take bool) Flags {
	if take {
		*dest = value
	}
	return BlankFlags
}
