package oauth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

const testState = "expected-state-value"

func startServer(t *testing.T) *CallbackServer {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	s := NewCallbackServer(port, testState)
	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func get(t *testing.T, s *CallbackServer, query url.Values) *http.Response {
	t.Helper()
	u := fmt.Sprintf("http://127.0.0.1:%d/callback?%s", s.port, query.Encode())
	resp, err := http.Get(u)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCallbackSuccess(t *testing.T) {
	s := startServer(t)

	resp := get(t, s, url.Values{"code": {"code-1"}, "state": {testState}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Authorization complete")

	code, err := s.WaitForCode(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "code-1", code)
}

func TestCallbackProviderError(t *testing.T) {
	s := startServer(t)

	resp := get(t, s, url.Values{"error": {"access_denied"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := s.WaitForCode(context.Background(), time.Second)
	assert.ErrorIs(t, err, domain.ErrProviderDenied)
	assert.Contains(t, err.Error(), "access_denied")
}

func TestCallbackStateMismatch(t *testing.T) {
	s := startServer(t)

	resp := get(t, s, url.Values{"code": {"code-1"}, "state": {"attacker-state"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := s.WaitForCode(context.Background(), time.Second)
	assert.ErrorIs(t, err, domain.ErrStateMismatch)
}

func TestCallbackMissingCode(t *testing.T) {
	s := startServer(t)

	resp := get(t, s, url.Values{"state": {testState}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := s.WaitForCode(context.Background(), time.Second)
	assert.ErrorIs(t, err, domain.ErrNoCode)
}

func TestCallbackFirstOutcomeWins(t *testing.T) {
	s := startServer(t)

	get(t, s, url.Values{"code": {"first"}, "state": {testState}})
	get(t, s, url.Values{"code": {"second"}, "state": {testState}})

	code, err := s.WaitForCode(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", code)
}

func TestWaitForCodeTimeout(t *testing.T) {
	s := startServer(t)

	_, err := s.WaitForCode(context.Background(), 20*time.Millisecond)
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestWaitForCodeCancelled(t *testing.T) {
	s := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.WaitForCode(ctx, time.Second)
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestStartPortInUse(t *testing.T) {
	s := startServer(t)

	other := NewCallbackServer(s.port, testState)
	err := other.Start()
	assert.ErrorIs(t, err, domain.ErrPortInUse)
}
