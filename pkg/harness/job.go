// Package harness runs a batch of assembly fixtures concurrently, each in
// its own cpu.Engine, and collects pass/fail results into a thread-safe
// report.
package harness

import "github.com/moregh/cpu8/pkg/cpu"

// Job describes one fixture: assemble Source, run it to halt or MaxTicks,
// then compare the final register and flag state against the expected
// values. A zero ExpectedFlags/ExpectedRegisters field is not checked
// unless the corresponding Check* flag is set.
type Job struct {
	Name              string
	Source            string
	MemSizeKB         int
	MaxTicks          uint64
	ExpectedRegisters cpu.Registers
	CheckRegisters    bool
	ExpectedFlags     cpu.Flags
	CheckFlags        bool
}
