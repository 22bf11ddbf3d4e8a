package asm

import (
	"strconv"
	"strings"
)

// exprTokens splits an expression like "BASE + 1 << 2" into its operand and
// operator tokens. Operators are always surrounded by whitespace in source,
// matching the fields already produced by splitFields.
func exprTokens(fields []string) []string {
	return fields
}

var binOps = map[string]int{
	"|": 1, "^": 1,
	"&": 2,
	"<<": 3, ">>": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "%": 5,
}

// evalExpr evaluates a sequence of tokens (numbers, symbol names, and
// operators from binOps) via precedence climbing. A single token with no
// operators is just looked up/parsed directly.
func evalExpr(tokens []string, syms map[string]int, line int) (int, error) {
	if len(tokens) == 0 {
		return 0, errf(BadNumber, line, 0, "empty expression")
	}
	p := &exprParser{tokens: tokens, syms: syms, line: line}
	v, err := p.parseBinary(0)
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.tokens) {
		return 0, errf(BadNumber, line, 0, "unexpected token %q in expression", p.tokens[p.pos])
	}
	return v, nil
}

type exprParser struct {
	tokens []string
	pos    int
	syms   map[string]int
	line   int
}

func (p *exprParser) parseBinary(minPrec int) (int, error) {
	lhs, err := p.parseOperand()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.tokens) {
		op := p.tokens[p.pos]
		prec, ok := binOps[op]
		if !ok || prec < minPrec {
			break
		}
		p.pos++
		rhs, err := p.parseBinary(prec + 1)
		if err != nil {
			return 0, err
		}
		lhs, err = applyOp(op, lhs, rhs, p.line)
		if err != nil {
			return 0, err
		}
	}
	return lhs, nil
}

func (p *exprParser) parseOperand() (int, error) {
	if p.pos >= len(p.tokens) {
		return 0, errf(BadNumber, p.line, 0, "expected value, got end of expression")
	}
	tok := p.tokens[p.pos]
	p.pos++

	if tok == "-" {
		v, err := p.parseOperand()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}

	if n, ok, err := parseNumberToken(tok); ok {
		if ce, isCE := err.(*CompileError); isCE {
			ce.Line = p.line
		}
		return n, err
	}
	if v, ok := p.syms[tok]; ok {
		return v, nil
	}
	return 0, errf(UnresolvedSymbol, p.line, 0, "unknown symbol %q", tok)
}

func applyOp(op string, a, b, line int) (int, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, errf(BadNumber, line, 0, "division by zero")
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, errf(BadNumber, line, 0, "modulo by zero")
		}
		return a % b, nil
	case "<<":
		return a << uint(b), nil
	case ">>":
		return a >> uint(b), nil
	case "&":
		return a & b, nil
	case "|":
		return a | b, nil
	case "^":
		return a ^ b, nil
	default:
		return 0, errf(BadNumber, line, 0, "unknown operator %q", op)
	}
}

// parseNumberToken recognizes $HHHH hex, decimal, and char-literal tokens.
// ok is false (with no error) when tok isn't any numeric form, so the
// caller can fall back to symbol lookup.
func parseNumberToken(tok string) (int, bool, error) {
	switch {
	case strings.HasPrefix(tok, "$"):
		n, err := strconv.ParseInt(tok[1:], 16, 32)
		if err != nil {
			return 0, true, errf(BadAddress, 0, 0, "invalid hex literal %q", tok)
		}
		return int(n), true, nil
	case strings.HasPrefix(tok, "'"):
		v, err := parseCharLiteral(tok)
		return v, true, err
	case isDecimalToken(tok):
		n, err := strconv.Atoi(tok)
		if err != nil {
			return 0, true, errf(BadNumber, 0, 0, "invalid number %q", tok)
		}
		return n, true, nil
	default:
		return 0, false, nil
	}
}

func isDecimalToken(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[0] == '-' {
		i = 1
	}
	if i >= len(tok) {
		return false
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// parseCharLiteral parses 'a' or the escapes '\n' '\t' '\r' '\0' '\\' '\''.
func parseCharLiteral(tok string) (int, error) {
	if len(tok) < 3 || tok[0] != '\'' || tok[len(tok)-1] != '\'' {
		return 0, errf(BadChar, 0, 0, "malformed character literal %q", tok)
	}
	body := tok[1 : len(tok)-1]
	if len(body) == 1 {
		return int(body[0]), nil
	}
	if len(body) == 2 && body[0] == '\\' {
		switch body[1] {
		case 'n':
			return '\n', nil
		case 't':
			return '\t', nil
		case 'r':
			return '\r', nil
		case '0':
			return 0, nil
		case '\\':
			return '\\', nil
		case '\'':
			return '\'', nil
		default:
			return 0, errf(BadChar, 0, 0, "unknown escape %q", tok)
		}
	}
	return 0, errf(BadChar, 0, 0, "malformed character literal %q", tok)
}
