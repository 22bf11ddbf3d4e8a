package cpu

import "errors"

// ErrProgramTooLarge is returned by Memory.Load when the program does not
// fit in the configured memory size.
var ErrProgramTooLarge = errors.New("cpu: program exceeds memory size")

// ErrTruncatedInstruction describes an opcode whose operand bytes run past
// the end of memory. Engine does not return it: operand fetches wrap around
// to the start of memory.
var ErrTruncatedInstruction = errors.New("cpu: instruction operand runs past end of memory")
