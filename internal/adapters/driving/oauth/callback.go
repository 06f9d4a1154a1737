// Package oauth runs the loopback HTTP listener that receives the
// provider's authorization redirect during an interactive login.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/core/services"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// Ensure CallbackServer implements the receiver contract.
var _ services.CodeReceiver = (*CallbackServer)(nil)

// CallbackServer listens on localhost for the OAuth redirect and hands
// the authorization code to the waiting flow. Every terminal outcome,
// success or failure, is delivered exactly once through a buffered
// channel so the handler never blocks on a departed waiter.
type CallbackServer struct {
	port          int
	expectedState string

	server   *http.Server
	listener net.Listener

	codeChan chan string
	errChan  chan error
	once     sync.Once
}

// NewCallbackServer creates a server for the given port that accepts
// only redirects carrying expectedState.
func NewCallbackServer(port int, expectedState string) *CallbackServer {
	return &CallbackServer{
		port:          port,
		expectedState: expectedState,
		codeChan:      make(chan string, 1),
		errChan:       make(chan error, 1),
	}
}

// Start binds the listener and begins serving in the background. A port
// already in use surfaces as domain.ErrPortInUse.
func (s *CallbackServer) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPortInUse, addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)
	s.server = &http.Server{Handler: mux}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Debug("callback server stopped: %v", err)
		}
	}()

	logger.Debug("callback server listening on %s", addr)
	return nil
}

// handleCallback validates the redirect. Provider errors, state
// mismatches and missing codes all answer HTTP 400 so the browser tab
// reflects the failure, and deliver the matching domain error to the
// waiter.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		s.fail(w, "Authorization failed",
			fmt.Sprintf("The provider reported: %s. You can close this tab.", errParam),
			fmt.Errorf("%w: %s", domain.ErrProviderDenied, errParam))
		return
	}

	if state := q.Get("state"); state != s.expectedState {
		s.fail(w, "State mismatch",
			"The response did not match this login attempt. Close this tab and retry.",
			fmt.Errorf("%w: got %s", domain.ErrStateMismatch, domain.RedactState(state)))
		return
	}

	code := q.Get("code")
	if code == "" {
		s.fail(w, "Missing authorization code",
			"The redirect carried no code. Close this tab and retry.",
			fmt.Errorf("%w: redirect carried no code parameter", domain.ErrNoCode))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, successPage)
	s.deliver(func() { s.codeChan <- code })
}

func (s *CallbackServer) fail(w http.ResponseWriter, title, detail string, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, errorPage, title, title, detail)
	s.deliver(func() { s.errChan <- err })
}

// deliver runs the send once; repeat hits on the endpoint are ignored.
func (s *CallbackServer) deliver(send func()) {
	s.once.Do(send)
}

// WaitForCode blocks until a code arrives, the callback fails, the
// timeout elapses, or ctx is cancelled.
func (s *CallbackServer) WaitForCode(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-timer.C:
		return "", fmt.Errorf("%w: no authorization response within %s", domain.ErrTimeout, timeout)
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
	}
}

// Stop shuts the listener down. Safe to call after a failed Start.
func (s *CallbackServer) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

const successPage = `<!DOCTYPE html>
<html>
<head><title>Authorization complete</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 15%;">
<h1>&#10003; Authorization complete</h1>
<p>You can close this tab and return to the terminal.</p>
</body>
</html>`

const errorPage = `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 15%%;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`
