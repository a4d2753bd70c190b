package mockserver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/matching"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

func samplePact() *pactio.Pact {
	jsonCT := content.ParseContentType("application/json")
	return &pactio.Pact{
		Consumer: pactio.Party{Name: "consumer"},
		Provider: pactio.Party{Name: "provider"},
		Interactions: []*pactio.Interaction{
			{
				Description: "a request for mallory",
				Request: matching.ExpectedRequest{Request: content.Request{
					Method: "GET",
					Path:   "/mallory",
				}},
				Response: matching.ExpectedResponse{Response: content.Response{
					Status: 200,
					Body:   content.NewPresentBody([]byte(`{"name":"mallory"}`), &jsonCT),
				}},
			},
		},
		SpecVersion: pactio.V3,
	}
}

func TestManagerCreateServesConfiguredInteraction(t *testing.T) {
	m := NewManager(nil)
	entry, err := m.CreateForPact(samplePact(), CreateOptions{})
	require.NoError(t, err)
	defer m.Cleanup(context.Background(), entry.ID)

	require.NotZero(t, entry.Port)
	assert.Equal(t, Running, entry.State)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/mallory", entry.Port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	verdict, err := m.Verdict(entry.ID)
	require.NoError(t, err)
	assert.True(t, verdict.Matched)
	assert.Empty(t, verdict.Rows)
}

func TestManagerVerdictReportsUnmatchedAndUnexpected(t *testing.T) {
	m := NewManager(nil)
	entry, err := m.CreateForPact(samplePact(), CreateOptions{})
	require.NoError(t, err)
	defer m.Cleanup(context.Background(), entry.ID)

	resp, err := http.Post(fmt.Sprintf("http://127.0.0.1:%d/not-configured", entry.Port), "text/plain", bytes.NewReader(nil))
	require.NoError(t, err)
	resp.Body.Close()

	verdict, err := m.Verdict(entry.ID)
	require.NoError(t, err)
	assert.False(t, verdict.Matched)

	var sawMissing, sawUnexpected bool
	for _, row := range verdict.Rows {
		switch row.Type {
		case "missing-request":
			sawMissing = true
		case "unexpected-request":
			sawUnexpected = true
		}
	}
	assert.True(t, sawMissing, "never-exercised interaction should be reported")
	assert.True(t, sawUnexpected, "unmatched incoming request should be reported")
}

func TestManagerShutdownRejectsFurtherRequests(t *testing.T) {
	m := NewManager(nil)
	entry, err := m.CreateForPact(samplePact(), CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, m.Shutdown(context.Background(), entry.ID))

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/mallory", entry.Port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	require.NoError(t, m.Cleanup(context.Background(), entry.ID))
	_, ok := m.Get(entry.ID)
	assert.False(t, ok)
}

func TestManagerCreateRejectsInvalidPactJSON(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Create([]byte(`{not json`), CreateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPact)
}

func TestManagerTLSStartsSelfSignedServer(t *testing.T) {
	m := NewManager(nil)
	entry, err := m.CreateForPact(samplePact(), CreateOptions{TLS: &TLSConfig{}})
	require.NoError(t, err)
	defer m.Cleanup(context.Background(), entry.ID)

	caCert, err := m.TLSCACert(entry.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, caCert)

	client := &http.Client{Timeout: 2 * time.Second}
	_, err = client.Get(fmt.Sprintf("https://127.0.0.1:%d/mallory", entry.Port))
	// self-signed cert, so only assert the TLS handshake itself was attempted
	// (a plain connection-refused error would indicate start() never bound).
	if err != nil {
		assert.NotContains(t, err.Error(), "connection refused")
	}
}
