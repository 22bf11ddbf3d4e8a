package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/moregh/cpu8/pkg/asm"
)

func newAsmCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "asm <src.asm>",
		Short: "Assemble a source file to a raw binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, labels, err := asm.CompileFile(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("assembled %d bytes, %d label(s)\n", len(code), len(labels))
			if len(labels) > 0 {
				names := make([]string, 0, len(labels))
				for name := range labels {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("  %-16s %#04x\n", name, labels[name])
				}
			}

			if output == "" {
				return nil
			}
			return os.WriteFile(output, code, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the assembled binary to this path")
	return cmd
}
