package asm

import (
	"strings"

	"github.com/moregh/cpu8/pkg/inst"
)

// pass1 assigns a byte address to every label by walking the statement list
// once, tracking a cursor that only instructions advance.
func pass1(stmts []rawLine) (map[string]int, error) {
	labels := map[string]int{}
	idx := 0
	for _, l := range stmts {
		if strings.HasPrefix(l.Fields[0], ":") {
			name := l.Fields[0][1:]
			if len(l.Fields) != 1 {
				return nil, errf(WrongOperandCount, l.Num, 1, "label %q must stand alone on its line", name)
			}
			if _, dup := labels[name]; dup {
				return nil, errf(DuplicateLabel, l.Num, 1, "label %q already defined", name)
			}
			labels[name] = idx
			continue
		}
		op, ok := inst.Lookup(strings.ToUpper(l.Fields[0]))
		if !ok {
			return nil, errf(UnknownOpcode, l.Num, 1, "unknown mnemonic %q", l.Fields[0])
		}
		idx += 1 + inst.OperandBytes(op)
	}
	return labels, nil
}

// pass2 re-walks the statement list emitting bytes, now that every label's
// address is known.
func pass2(stmts []rawLine, labels, syms map[string]int) ([]byte, error) {
	var out []byte
	for _, l := range stmts {
		if strings.HasPrefix(l.Fields[0], ":") {
			continue
		}
		op, ok := inst.Lookup(strings.ToUpper(l.Fields[0]))
		if !ok {
			return nil, errf(UnknownOpcode, l.Num, 1, "unknown mnemonic %q", l.Fields[0])
		}
		out = append(out, byte(op))

		args, err := emitArgs(op, l.Fields[1:], labels, syms, l.Num)
		if err != nil {
			return nil, err
		}
		out = append(out, args...)
	}
	return out, nil
}

// emitArgs produces the operand bytes for op's arguments, enforcing that
// their total matches the opcode's declared operand byte count.
func emitArgs(op inst.OpCode, args []string, labels, syms map[string]int, line int) ([]byte, error) {
	need := inst.OperandBytes(op)

	switch need {
	case 0:
		if len(args) != 0 {
			return nil, errf(WrongOperandCount, line, 1, "%s takes no operands, got %d", inst.Mnemonic(op), len(args))
		}
		return nil, nil

	case 1:
		if len(args) != 1 {
			return nil, errf(WrongOperandCount, line, 1, "%s takes 1 operand, got %d", inst.Mnemonic(op), len(args))
		}
		b, err := resolveByte(args[0], labels, syms, line)
		if err != nil {
			return nil, err
		}
		return []byte{b}, nil

	case 2:
		switch len(args) {
		case 1:
			v, err := resolveAddress(args[0], labels, syms, line)
			if err != nil {
				return nil, err
			}
			return []byte{byte(v >> 8), byte(v & 0xFF)}, nil
		case 2:
			hi, err := resolveByte(args[0], labels, syms, line)
			if err != nil {
				return nil, err
			}
			lo, err := resolveByte(args[1], labels, syms, line)
			if err != nil {
				return nil, err
			}
			return []byte{hi, lo}, nil
		default:
			return nil, errf(WrongOperandCount, line, 1, "%s takes 1 or 2 operands, got %d", inst.Mnemonic(op), len(args))
		}

	default:
		return nil, errf(WrongOperandCount, line, 1, "%s declares an unsupported operand count %d", inst.Mnemonic(op), need)
	}
}

// resolveValue resolves a single argument token to an integer: a $HHHH hex
// literal, a decimal literal, a character literal, a known label, or a
// known CONST/VAR symbol, in that order.
func resolveValue(tok string, labels, syms map[string]int, line int) (int, error) {
	if n, ok, err := parseNumberToken(tok); ok {
		if ce, isCE := err.(*CompileError); isCE {
			ce.Line = line
		}
		return n, err
	}
	if v, ok := labels[tok]; ok {
		return v, nil
	}
	if v, ok := syms[tok]; ok {
		return v, nil
	}
	return 0, errf(UnresolvedSymbol, line, 1, "unresolved symbol %q", tok)
}

func resolveAddress(tok string, labels, syms map[string]int, line int) (int, error) {
	v, err := resolveValue(tok, labels, syms, line)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xFFFF {
		return 0, errf(AddressOutOfRange, line, 1, "address %d out of range 0..65535", v)
	}
	return v, nil
}

func resolveByte(tok string, labels, syms map[string]int, line int) (byte, error) {
	v, err := resolveValue(tok, labels, syms, line)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xFF {
		return 0, errf(ByteOutOfRange, line, 1, "value %d out of range 0..255", v)
	}
	return byte(v), nil
}
