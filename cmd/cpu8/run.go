package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moregh/cpu8/pkg/asm"
	"github.com/moregh/cpu8/pkg/cpu"
	"github.com/moregh/cpu8/pkg/display"
)

func newRunCmd() *cobra.Command {
	var memKB int
	var offset int
	var reportInterval int
	var verbose bool
	var withDisplay bool

	cmd := &cobra.Command{
		Use:   "run <src.asm|bin>",
		Short: "Assemble (or load) and run a program to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := loadProgram(args[0])
			if err != nil {
				return err
			}

			var disp cpu.Display
			if withDisplay {
				disp = display.New()
			}

			engine, err := cpu.NewEngine(memKB, disp)
			if err != nil {
				return err
			}
			if err := engine.LoadData(code, offset); err != nil {
				return err
			}

			stop := make(chan struct{})
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			go func() {
				<-sig
				close(stop)
			}()

			var report func(*cpu.Engine)
			if verbose {
				report = func(e *cpu.Engine) {
					fmt.Printf("tick %d: A=%#02x X=%#02x Y=%#02x PC=%#04x\n", e.Ticks, e.Reg.A, e.Reg.X, e.Reg.Y, e.Reg.PC)
				}
			}

			summary := engine.Run(reportInterval, report, stop)

			fmt.Printf("halted=%v interrupted=%v ticks=%d\n", engine.Halted(), summary.Interrupted, summary.Ticks)
			fmt.Printf("A=%#02x X=%#02x Y=%#02x PC=%#04x\n", engine.Reg.A, engine.Reg.X, engine.Reg.Y, engine.Reg.PC)
			fmt.Printf("flags: Z=%v O=%v H=%v N=%v\n", engine.Flags.Z, engine.Flags.O, engine.Flags.H, engine.Flags.N)
			if summary.Err != nil {
				return fmt.Errorf("run aborted: %w", summary.Err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&memKB, "mem-kb", cpu.MinMemKB, "memory size in KB (rounded up to a power of two)")
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset to load the program at")
	cmd.Flags().IntVar(&reportInterval, "report", 0, "call the report callback every N ticks (0 = only once when the run ends)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a line on every report interval")
	cmd.Flags().BoolVar(&withDisplay, "display", false, "attach a character display rendering to stdout")
	return cmd
}

// loadProgram assembles path if it ends in .asm, otherwise reads it as a
// raw binary.
func loadProgram(path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".asm") {
		code, _, err := asm.CompileFile(path)
		return code, err
	}
	return os.ReadFile(path)
}
