// Command cpu8 assembles, runs, debugs, batch-tests, and fuzzes programs
// for the 8-bit virtual machine implemented in pkg/cpu.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cpu8",
		Short: "Assemble and run programs for the 8-bit virtual CPU",
	}

	rootCmd.AddCommand(
		newAsmCmd(),
		newRunCmd(),
		newDebugCmd(),
		newTestCmd(),
		newFuzzCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
