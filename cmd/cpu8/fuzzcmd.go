package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moregh/cpu8/pkg/fuzz"
)

func newFuzzCmd() *cobra.Command {
	var count int
	var progLen int
	var maxTicks uint64
	var seed uint64

	cmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Run random programs and check engine invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("fuzzing %d programs of length %d (seed %d)\n", count, progLen, seed)
			if err := fuzz.RunRandomPrograms(seed, count, progLen, maxTicks); err != nil {
				return fmt.Errorf("invariant violation: %w", err)
			}
			fmt.Println("all programs clean")
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 100, "number of random programs to run")
	cmd.Flags().IntVar(&progLen, "length", 16, "instructions per random program")
	cmd.Flags().Uint64Var(&maxTicks, "max-ticks", 1000, "ticks a program may run before being treated as non-halting")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")
	return cmd
}
