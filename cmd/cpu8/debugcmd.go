package main

import (
	"github.com/spf13/cobra"

	"github.com/moregh/cpu8/pkg/cpu"
	"github.com/moregh/cpu8/pkg/debug"
)

func newDebugCmd() *cobra.Command {
	var memKB int
	var offset int

	cmd := &cobra.Command{
		Use:   "debug <src.asm|bin>",
		Short: "Step through a program in an interactive terminal debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := loadProgram(args[0])
			if err != nil {
				return err
			}

			engine, err := cpu.NewEngine(memKB, nil)
			if err != nil {
				return err
			}
			if err := engine.LoadData(code, offset); err != nil {
				return err
			}

			return debug.Run(engine)
		},
	}

	cmd.Flags().IntVar(&memKB, "mem-kb", cpu.MinMemKB, "memory size in KB (rounded up to a power of two)")
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset to load the program at")
	return cmd
}
