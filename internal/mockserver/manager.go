package mockserver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
	"github.com/pact-foundation/pact-core-go/pkg/pactlog"
)

// Manager is the process-wide registry of mock servers. There is normally one Manager per
// process, constructed by internal/ffi at startup.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	log     *slog.Logger
}

// NewManager constructs an empty registry. A nil logger defaults to
// pactlog.Nop().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = pactlog.Nop()
	}
	return &Manager{entries: make(map[string]*Entry), log: logger}
}

// CreateOptions configures Create. When Addr is empty, the first free port
// from defaultStartPort upward is used (see findFreePort); TLS is nil for a
// plain HTTP mock server.
type CreateOptions struct {
	Addr string
	TLS  *TLSConfig
}

// Create parses pactJSON, starts a mock server bound to opts.Addr, and
// registers the resulting Entry under a fresh id.
// The pact is rejected before any socket is opened if it fails to parse.
func (m *Manager) Create(pactJSON []byte, opts CreateOptions) (entry *Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic starting mock server: %v", ErrInvalidHandle, r)
			entry = nil
		}
	}()

	pact, perr := pactio.Parse(pactJSON)
	if perr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPact, perr)
	}
	return m.CreateForPact(pact, opts)
}

// defaultStartPort is where port scanning begins when the caller leaves
// Addr empty, probing upward from a fixed base rather than always taking
// an OS-assigned ephemeral port.
const defaultStartPort = 21100

// CreateForPact is Create for an already-parsed pact, used by callers that
// build a Pact programmatically (e.g. the consumer DSL) instead of
// supplying raw JSON.

func (m *Manager) CreateForPact(pact *pactio.Pact, opts CreateOptions) (*Entry, error) {
	addr := opts.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", findFreePort(defaultStartPort))
	}

	e := &Entry{
		ID:    uuid.NewString(),
		Pact:  pact,
		State: Created,
	}
	srv := &server{entry: e, log: m.log}
	e.srv = srv

	if err := srv.start(addr, opts.TLS); err != nil {
		return nil, err
	}
	e.State = Running

	m.mu.Lock()
	m.entries[e.ID] = e
	m.mu.Unlock()

	m.log.Info("mock server started", "id", e.ID, "port", e.Port)
	return e, nil
}

// Get looks up a registered Entry by id.
func (m *Manager) Get(id string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	return e, ok
}

// Verdict computes the match verdict for a registered server.
func (m *Manager) Verdict(id string) (Verdict, error) {
	e, ok := m.Get(id)
	if !ok {
		return Verdict{}, ErrNoMockServer
	}
	return ComputeVerdict(e), nil
}

// WritePact serialises a registered server's pact to dir, merging with any
// existing file of the same name.
func (m *Manager) WritePact(id string, dir string) error {
	e, ok := m.Get(id)
	if !ok {
		return ErrNoMockServer
	}
	p := e.Pact
	if existing, err := pactio.Load(filepath.Join(dir, p.DefaultFilename())); err == nil {
		merged, err := pactio.Merge(existing, p)
		if err != nil {
			return err
		}
		p = merged
	}
	return pactio.Write(dir, p, m.log)
}

// Shutdown stops a registered server's listener without removing it from
// the registry, so its event log and verdict remain queryable.
func (m *Manager) Shutdown(ctx context.Context, id string) error {
	e, ok := m.Get(id)
	if !ok {
		return ErrNoMockServer
	}
	e.mu.Lock()
	if e.State != Running {
		e.mu.Unlock()
		return nil
	}
	e.State = Stopped
	srv := e.srv
	e.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.shutdown(ctx)
}

// Cleanup stops (if still running) and forgets a registered server,
// freeing its id for reuse elsewhere.
func (m *Manager) Cleanup(ctx context.Context, id string) error {
	if err := m.Shutdown(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNoMockServer
	}
	delete(m.entries, id)
	return nil
}

// TLSCACert returns the self-signed CA certificate generated for a
// registered server, or nil if it was started without TLS or with
// caller-supplied material.
func (m *Manager) TLSCACert(id string) ([]byte, error) {
	e, ok := m.Get(id)
	if !ok {
		return nil, ErrNoMockServer
	}
	e.mu.Lock()
	srv := e.srv
	e.mu.Unlock()
	if srv == nil {
		return nil, nil
	}
	return srv.caCert, nil
}
