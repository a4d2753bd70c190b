package ffi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-core-go/internal/rules"
)

func TestMain(m *testing.M) {
	Reset()
	m.Run()
}

func TestBuildAndServeInteractionRoundTrips(t *testing.T) {
	Reset()
	pact := NewPact("consumer", "provider")
	in, err := NewInteraction(pact, "a request for mallory")
	require.NoError(t, err)

	require.NoError(t, Given(in, "mallory exists"))
	require.NoError(t, WithRequest(in, "GET", "/mallory"))
	require.NoError(t, WithHeader(in, PartRequest, "Accept", "application/json"))
	require.NoError(t, ResponseStatus(in, 200))
	require.NoError(t, WithHeader(in, PartResponse, "Content-Type", "application/json"))
	require.NoError(t, WithBody(in, PartResponse, "application/json", []byte(`{"name":"mallory"}`), nil, nil))

	port, handle, err := CreateMockServerForPact(pact, "", nil)
	require.NoError(t, err)
	require.NotZero(t, port)
	defer CleanupMockServer(context.Background(), handle)

	req, err := http.NewRequest("GET", fmt.Sprintf("http://127.0.0.1:%d/mallory", port), nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	matched, err := MockServerMatched(handle)
	require.NoError(t, err)
	assert.True(t, matched)

	mismatches, err := MockServerMismatches(handle)
	require.NoError(t, err)
	assert.Equal(t, "[]", mismatches)

	logs, err := MockServerLogs(handle)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestBuildReportsUnmatchedInteractionAsMismatch(t *testing.T) {
	Reset()
	pact := NewPact("consumer", "provider")
	in, err := NewInteraction(pact, "an unexercised interaction")
	require.NoError(t, err)
	require.NoError(t, WithRequest(in, "GET", "/never-called"))
	require.NoError(t, ResponseStatus(in, 200))

	_, handle, err := CreateMockServerForPact(pact, "", nil)
	require.NoError(t, err)
	defer CleanupMockServer(context.Background(), handle)

	matched, err := MockServerMatched(handle)
	require.NoError(t, err)
	assert.False(t, matched)

	mismatches, err := MockServerMismatches(handle)
	require.NoError(t, err)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(mismatches), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "missing-request", rows[0]["type"])
}

func TestWithMatchingRuleAttachesToRequestBody(t *testing.T) {
	Reset()
	pact := NewPact("consumer", "provider")
	in, err := NewInteraction(pact, "a matcher on the body")
	require.NoError(t, err)
	require.NoError(t, WithRequest(in, "POST", "/things"))
	rl := rules.NewRuleList(rules.TypeMatch{})
	require.NoError(t, WithMatchingRule(in, PartRequest, rules.CategoryBody, "$.id", rl))
	require.NoError(t, WithBody(in, PartRequest, "application/json", []byte(`{"id":1}`), nil, nil))
	require.NoError(t, ResponseStatus(in, 200))

	port, handle, err := CreateMockServerForPact(pact, "", nil)
	require.NoError(t, err)
	defer CleanupMockServer(context.Background(), handle)

	resp, err := http.Post(fmt.Sprintf("http://127.0.0.1:%d/things", port), "application/json", strings.NewReader(`{"id":999}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	matched, err := MockServerMatched(handle)
	require.NoError(t, err)
	assert.True(t, matched, "a differing numeric id satisfies a type matcher")
}

func TestUnknownHandleIsRejected(t *testing.T) {
	Reset()
	_, err := NewInteraction(PactHandle(999), "unreachable")
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestMessagePactBuildAndReify(t *testing.T) {
	Reset()
	pact := NewMessagePact("consumer", "provider")
	msg, err := NewMessage(pact, "an order placed event")
	require.NoError(t, err)
	require.NoError(t, MessageGiven(msg, "an order exists"))
	require.NoError(t, MessageWithMetadata(msg, "contentType", "application/json"))
	require.NoError(t, MessageWithContents(msg, "application/json", []byte(`{"orderId":1}`), nil, nil))

	out, err := MessageReify(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":1}`, out)
}

func TestWritePactFileRejectsPactWithNoInteractions(t *testing.T) {
	Reset()
	pact := NewPact("consumer", "provider")
	err := WritePactFile(pact, t.TempDir())
	assert.Error(t, err)
}

func TestHelperOperations(t *testing.T) {
	assert.NotEmpty(t, Version())

	ts, err := GenerateDatetimeString("2006-01-02")
	require.NoError(t, err)
	assert.Len(t, ts, len("2006-01-02"))

	val, err := GenerateRegexValue(`[a-z]{3}`)
	require.NoError(t, err)
	ok, err := CheckRegex(`[a-z]{3}`, val)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckRegex(`[a-z]{3}`, "AB1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckRegex("(unterminated", "x")
	assert.Error(t, err)

	FreeString("anything")
}
