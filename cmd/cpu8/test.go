package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moregh/cpu8/pkg/harness"
)

func newTestCmd() *cobra.Command {
	var numWorkers int
	var maxTicks uint64

	cmd := &cobra.Command{
		Use:   "test <fixtures-dir>",
		Short: "Assemble and run every .asm fixture in a directory, reporting pass/fail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := filepath.Glob(filepath.Join(args[0], "*.asm"))
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("no .asm fixtures found in %s", args[0])
			}

			jobs := make([]harness.Job, 0, len(matches))
			for _, path := range matches {
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				jobs = append(jobs, harness.Job{
					Name:     filepath.Base(path),
					Source:   string(src),
					MaxTicks: maxTicks,
				})
			}

			report := harness.Run(jobs, numWorkers)
			for _, r := range report.Results() {
				status := "PASS"
				if !r.Passed {
					status = "FAIL"
				}
				fmt.Printf("%-4s %-24s ticks=%-6d %s\n", status, r.Name, r.Ticks, r.Reason)
				if r.Err != nil {
					fmt.Printf("       %v\n", r.Err)
				}
			}
			fmt.Printf("\n%d/%d passed\n", report.Len()-report.Failed(), report.Len())

			if report.Failed() > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&numWorkers, "workers", 0, "number of concurrent workers (0 = GOMAXPROCS)")
	cmd.Flags().Uint64Var(&maxTicks, "max-ticks", 1<<16, "ticks a fixture may run before being marked a failure")
	return cmd
}
