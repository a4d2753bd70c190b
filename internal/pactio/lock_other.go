//go:build !unix

package pactio

import "os"

// flock is a no-op on non-unix platforms: golang.org/x/sys has no portable
// advisory-lock primitive outside the unix build, and this module targets
// unix CI/production hosts. Concurrent writers on other platforms race,
// same as before this package existed.
func flock(f *os.File) error { return nil }

func funlock(f *os.File) error { return nil }
