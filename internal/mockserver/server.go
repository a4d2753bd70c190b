package mockserver

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/pkg/httputil"
	pacttls "github.com/pact-foundation/pact-core-go/pkg/tls"
)

// TLSConfig carries caller-supplied certificate material for an HTTPS mock
// server. When both fields are empty, server generates a self-signed
// certificate via pkg/tls instead.
type TLSConfig struct {
	CertPEM []byte
	KeyPEM  []byte
}

// server owns the net.Listener and http.Server backing one Entry. It is a
// thin lifecycle wrapper; request handling itself lives in ServeHTTP.
type server struct {
	entry  *Entry
	http   *http.Server
	ln     net.Listener
	log    *slog.Logger
	mu     sync.Mutex
	caCert []byte // populated only when a self-signed cert was generated
}

// findFreePort finds a free TCP port starting at start, scanning up to 100
// ports before falling back to an OS-assigned ephemeral port.
func findFreePort(start int) int {
	for port := start; port < start+100; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			_ = ln.Close()
			return port
		}
	}
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		return start
	}
	defer ln.Close()
	addr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		return start
	}
	return addr.Port
}

// start binds addr (port 0 => OS-assigned) and begins serving. If tlsCfg is
// non-nil the listener speaks HTTPS, generating a self-signed certificate
// when no material was supplied.
func (s *server) start(addr string, tlsCfg *TLSConfig) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	s.ln = ln
	s.entry.Port = ln.Addr().(*net.TCPAddr).Port

	s.http = &http.Server{Handler: s}

	if tlsCfg == nil {
		go func() {
			if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
				s.log.Error("mock server error", "id", s.entry.ID, "error", err)
			}
		}()
		return nil
	}

	certPEM, keyPEM := tlsCfg.CertPEM, tlsCfg.KeyPEM
	if len(certPEM) == 0 || len(keyPEM) == 0 {
		generated, err := pacttls.GenerateSelfSignedCert(pacttls.DefaultCertificateConfig())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTLSConfig, err)
		}
		certPEM, keyPEM = generated.CertPEM, generated.KeyPEM
		s.caCert = generated.CertPEM
	}
	cert, err := pacttls.CreateTLSCertificate(certPEM, keyPEM)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTLSConfig, err)
	}
	s.http.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}

	go func() {
		if err := s.http.ServeTLS(ln, "", ""); err != nil && err != http.ErrServerClosed {
			s.log.Error("mock server TLS error", "id", s.entry.ID, "error", err)
		}
	}()
	return nil
}

func (s *server) shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// ServeHTTP implements the mock-server HTTP surface: any method,
// path, headers, body. It normalises the request, selects the
// best-matching interaction, and replays its response verbatim; a request
// with no surviving candidate gets a 500 diagnostic, and any request after
// shutdown gets 501.
func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.entry.mu.Lock()
	state := s.entry.State
	s.entry.mu.Unlock()
	if state == Stopped {
		httputil.WriteJSON(w, http.StatusNotImplemented, map[string]string{
			"error": "mock server has been shut down",
		})
		return
	}

	actual, err := actualRequestFrom(r)
	if err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("failed to read request: %v", err),
		})
		return
	}

	sel := selectInteraction(s.entry.Pact, actual)
	s.entry.appendEvent(Event{
		Request:            actual,
		Outcome:            outcomeFor(sel),
		MatchedInteraction: sel.interaction,
		Result:             sel.result,
	})

	if !sel.found {
		httputil.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":  "no matching interaction",
			"method": actual.Method,
			"path":   actual.Path,
		})
		return
	}

	resp := sel.interaction.Response
	writeHeaders(w, resp.Headers)
	w.WriteHeader(int(resp.Status))
	if resp.Body.IsPresent() {
		_, _ = w.Write(resp.Body.Bytes())
	}
}

func writeHeaders(w http.ResponseWriter, headers *content.OrderedMap) {
	if headers == nil {
		return
	}
	for _, name := range headers.Names() {
		vals, _ := headers.Get(name)
		for _, v := range vals {
			w.Header().Add(name, v)
		}
	}
}
