//go:build unix

package pactio

import (
	"os"

	"golang.org/x/sys/unix"
)

// flock takes an exclusive, advisory lock on f for the duration of the
// write.
func flock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

func funlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
