// Package iface declares the boundary interfaces for tooling this module
// does not implement: a disassembler and a control-flow grapher. Both are
// shaped to slot in against pkg/inst and pkg/asm without either package
// depending on them.
package iface

import "github.com/moregh/cpu8/pkg/inst"

// Disassembler turns a raw byte stream, given its label table, back into a
// decoded instruction sequence, the inverse of asm.Compile. No
// implementation ships in this module.
type Disassembler interface {
	Disassemble(code []byte, labels map[string]int) ([]inst.Instruction, error)
}

// FlowGrapher builds a control-flow graph over a decoded instruction
// sequence, following JMP/J** targets into basic blocks. No implementation
// ships in this module.
type FlowGrapher interface {
	FlowGraph(prog []inst.Instruction) (blocks [][]inst.Instruction, edges [][2]int, err error)
}
