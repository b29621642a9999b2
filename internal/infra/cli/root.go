// Package cli implements the slipctl command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the slipctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "slipctl",
		Short: "Decode payment slip codes",
		Long: `slipctl extracts the amount encoded in payment slip (boleto) codes.

Example Usage:
  slipctl decode "83640000006290110000000000000000000000000000"
  slipctl decode --policy fixed-length --output yaml CODE...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	root.AddCommand(newDecodeCommand(), newVersionCommand())

	return root
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
