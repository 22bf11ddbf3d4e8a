// Package inst declares the instruction set as data: an explicit, reviewed
// enumeration of opcodes and their static metadata. It knows nothing about
// registers, memory or execution — that lives in package cpu. Keeping the
// two separate means the assembler (which only needs names and operand
// counts) never has to import the execution engine.
package inst

// OpCode is the numeric identity of an instruction. The numbering is fixed
// by this enum, never by import order or reflection — see DESIGN.md for why.
type OpCode uint8

const (
	// Control. HLT is reserved at opcode 0 so a zeroed memory region halts
	// cleanly on first execution.
	HLT OpCode = iota
	CLR
	NOP

	// Immediate loads.
	LDA
	LDX
	LDY

	// Register-to-register copies.
	CAX
	CAY
	CXA
	CYA
	CXY
	CYX

	// Memory, absolute 16-bit address.
	WMA
	WMX
	WMY
	RMA
	RMX
	RMY

	// Memory, indexed by (Y*256 + X).
	RMI
	WMI

	// Memory, base address (2-byte operand) + X offset.
	RMO
	WMO

	// Block operations over the (Y*256+X) region, A bytes long.
	FIL
	CMP
	CPY

	// Arithmetic between registers.
	AAX
	AAY
	AXY
	SAX
	SAY
	SXY
	INA
	INX
	INY
	DEA
	DEX
	DEY

	// Bitwise logic.
	NAX
	NAY
	NXY
	OAX
	OAY
	OXY
	XAX
	XAY
	XXY

	// Shifts.
	BLA
	BLX
	BLY
	BRA
	BRX
	BRY

	// Equality comparison.
	EAX
	EAY
	EXY

	// Absolute jumps.
	JMP
	JNZ
	JMZ
	JNN
	JMN
	JNO
	JMO

	// Relative jumps.
	JFA
	JFX
	JFY
	JBA
	JBX
	JBY

	// Conditional immediate loads: A register.
	CAZ
	NAZ
	CAO
	NAO
	CAN
	NAN

	// Conditional immediate loads: X register.
	CXZ
	NXZ
	CXO
	NXO
	CXN
	NXN

	// Conditional immediate loads: Y register.
	CYZ
	NYZ
	CYO
	NYO
	CYN
	NYN

	// OpCodeCount is the number of defined opcodes. Bytes >= OpCodeCount
	// decode to HLT by fallback (see the default case of cpu.Exec).
	OpCodeCount
)
