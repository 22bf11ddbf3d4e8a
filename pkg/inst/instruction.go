package inst

// Instruction is a compact, decoded representation of one opcode byte plus
// its operand bytes — what the assembler emits per statement and what the
// fuzzer generates directly without going through source text.
type Instruction struct {
	Op      OpCode
	Operand []byte
}

// ByteSize returns the total encoded length of the instruction: one opcode
// byte plus its declared operand bytes.
func (i Instruction) ByteSize() int {
	return 1 + OperandBytes(i.Op)
}

// Encode appends the instruction's bytes (opcode, then operand) to dst.
func (i Instruction) Encode(dst []byte) []byte {
	dst = append(dst, byte(i.Op))
	return append(dst, i.Operand...)
}
