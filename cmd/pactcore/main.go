// pactcore is a small command-line front end over this module's mock-server
// core, useful for ad-hoc exploration of a pact file from a terminal. It is
// not part of the core library itself.
package main

import (
	"fmt"
	"os"
)

// Build-time variables set via ldflags.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
