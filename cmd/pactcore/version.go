package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pact-foundation/pact-core-go/internal/ffi"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pactcore and core library version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("pactcore %s (commit %s, built %s)\n", buildVersion, buildCommit, buildDate)
		fmt.Printf("core library version %s\n", ffi.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
