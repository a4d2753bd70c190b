package pactio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/pkg/pactlog"
)

// WritePactErr enumerates the failure modes of Write.
type WritePactErr int

const (
	// WriteIOError covers directory creation, open, lock, or rename
	// failures after every retry is exhausted.
	WriteIOError WritePactErr = iota
	// WriteNoInteractions is returned when the pact has nothing to write:
	// callers should not overwrite a prior run's file with an empty one.
	WriteNoInteractions
)

// WriteError wraps a WritePactErr with the underlying cause.
type WriteError struct {
	Kind WritePactErr
	Err  error
}

func (e *WriteError) Error() string { return e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

const writeRetries = 3

// Write serialises p and atomically replaces dir/p.DefaultFilename(): the
// document is written to a sibling temp file under an exclusive lock, then
// renamed into place, so a concurrent reader never observes a partial
// write. A failed attempt is retried, for at most three attempts in all,
// before WriteIOError is reported.
func Write(dir string, p *Pact, logger *slog.Logger) error {
	if logger == nil {
		logger = pactlog.Nop()
	}
	if len(p.Interactions) == 0 && len(p.Messages) == 0 && len(p.SynchronousMessages) == 0 {
		return &WriteError{Kind: WriteNoInteractions, Err: fmt.Errorf("pactio: pact %s has no interactions to write", p.DefaultFilename())}
	}

	doc := encodeDocument(p)
	body, err := content.MarshalJSON(doc)
	if err != nil {
		return &WriteError{Kind: WriteIOError, Err: fmt.Errorf("pactio: marshalling pact: %w", err)}
	}

	target := filepath.Join(dir, p.DefaultFilename())
	var lastErr error
	for attempt := 1; attempt <= writeRetries; attempt++ {
		if err := writeOnce(dir, target, body); err != nil {
			lastErr = err
			logger.Warn("pact write attempt failed", "path", target, "attempt", attempt, "error", err)
			time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
			continue
		}
		logger.Info("pact written", "path", target, "interactions", len(p.Interactions))
		return nil
	}
	return &WriteError{Kind: WriteIOError, Err: fmt.Errorf("pactio: writing %s after %d attempts: %w", target, writeRetries, lastErr)}
}

func writeOnce(dir, target string, body []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".pact-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := flock(tmp); err != nil {
		tmp.Close()
		return err
	}
	defer funlock(tmp)

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, target)
}
