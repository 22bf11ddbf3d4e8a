package asm

import "fmt"

// Kind classifies why a program failed to compile.
type Kind int

const (
	UnknownOpcode Kind = iota
	DuplicateLabel
	BadAddress
	BadNumber
	BadChar
	WrongOperandCount
	AddressOutOfRange
	ByteOutOfRange
	UnresolvedSymbol
)

func (k Kind) String() string {
	switch k {
	case UnknownOpcode:
		return "UnknownOpcode"
	case DuplicateLabel:
		return "DuplicateLabel"
	case BadAddress:
		return "BadAddress"
	case BadNumber:
		return "BadNumber"
	case BadChar:
		return "BadChar"
	case WrongOperandCount:
		return "WrongOperandCount"
	case AddressOutOfRange:
		return "AddressOutOfRange"
	case ByteOutOfRange:
		return "ByteOutOfRange"
	case UnresolvedSymbol:
		return "UnresolvedSymbol"
	default:
		return "Unknown"
	}
}

// CompileError reports the line and column of a source defect alongside its
// Kind.
type CompileError struct {
	Kind    Kind
	Line    int
	Column  int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

func errf(kind Kind, line, col int, format string, args ...any) *CompileError {
	return &CompileError{Kind: kind, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}
