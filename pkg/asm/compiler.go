// Package asm implements the two-pass assembler: a line-oriented lexer, a
// preprocessor that resolves CONST/VAR symbols and expands MACRO bodies,
// and a two-pass code generator that assigns label addresses before
// emitting bytes.
package asm

import "os"

// Compile assembles source text into a byte stream and a label table
// (label name -> byte offset). On failure it returns a *CompileError.
func Compile(text string) ([]byte, map[string]int, error) {
	lines := lex(text)
	if len(lines) == 0 {
		return nil, map[string]int{}, nil
	}

	stmts, syms, err := preprocess(lines)
	if err != nil {
		return nil, nil, err
	}

	labels, err := pass1(stmts)
	if err != nil {
		return nil, nil, err
	}

	code, err := pass2(stmts, labels, syms)
	if err != nil {
		return nil, nil, err
	}

	return code, labels, nil
}

// CompileFile reads path and compiles its contents.
func CompileFile(path string) ([]byte, map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return Compile(string(data))
}
