package asm

import "strings"

// macroDef is a MACRO...ENDMACRO block: a parameter list and a body of
// unexpanded lines, substituted positionally at each call site.
type macroDef struct {
	Params []string
	Body   []rawLine
}

// preprocess consumes CONST/VAR definitions into a symbol table and expands
// macro invocations inline, leaving only label definitions and instruction
// lines for the two-pass assembler proper.
func preprocess(lines []rawLine) ([]rawLine, map[string]int, error) {
	syms := map[string]int{}
	macros := map[string]macroDef{}
	var out []rawLine

	i := 0
	for i < len(lines) {
		l := lines[i]
		keyword := strings.ToUpper(l.Fields[0])

		switch keyword {
		case "CONST", "VAR":
			if len(l.Fields) < 3 {
				return nil, nil, errf(BadNumber, l.Num, 0, "%s requires a name and an expression", keyword)
			}
			name := l.Fields[1]
			v, err := evalExpr(l.Fields[2:], syms, l.Num)
			if err != nil {
				return nil, nil, err
			}
			syms[name] = v
			i++

		case "MACRO":
			if len(l.Fields) < 2 {
				return nil, nil, errf(BadNumber, l.Num, 0, "MACRO requires a name")
			}
			name := strings.ToUpper(l.Fields[1])
			params := l.Fields[2:]
			var body []rawLine
			j := i + 1
			for j < len(lines) && strings.ToUpper(lines[j].Fields[0]) != "ENDMACRO" {
				body = append(body, lines[j])
				j++
			}
			if j >= len(lines) {
				return nil, nil, errf(BadNumber, l.Num, 0, "MACRO %s has no matching ENDMACRO", l.Fields[1])
			}
			macros[name] = macroDef{Params: params, Body: body}
			i = j + 1

		default:
			if strings.HasPrefix(l.Fields[0], ":") {
				out = append(out, l)
				i++
				continue
			}
			if m, ok := macros[keyword]; ok {
				expanded, err := expandMacro(m, l)
				if err != nil {
					return nil, nil, err
				}
				out = append(out, expanded...)
				i++
				continue
			}
			out = append(out, l)
			i++
		}
	}
	return out, syms, nil
}

// expandMacro substitutes call's arguments for m's parameters, field by
// field, across every line of the macro body.
func expandMacro(m macroDef, call rawLine) ([]rawLine, error) {
	args := call.Fields[1:]
	if len(args) != len(m.Params) {
		return nil, errf(WrongOperandCount, call.Num, 0,
			"macro %s expects %d argument(s), got %d", call.Fields[0], len(m.Params), len(args))
	}
	subst := make(map[string]string, len(m.Params))
	for i, p := range m.Params {
		subst[p] = args[i]
	}

	out := make([]rawLine, 0, len(m.Body))
	for _, bl := range m.Body {
		fields := make([]string, len(bl.Fields))
		for i, f := range bl.Fields {
			if v, ok := subst[f]; ok {
				fields[i] = v
			} else {
				fields[i] = f
			}
		}
		out = append(out, rawLine{
			Num:    call.Num,
			Text:   strings.Join(fields, " "),
			Fields: fields,
		})
	}
	return out, nil
}
