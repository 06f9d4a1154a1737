package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenexchange "github.com/taskwise/todoist-cli/internal/adapters/driven/oauth"
	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/core/ports/driving"
)

type fakeCreds struct {
	creds domain.ClientCredentials
}

func (f *fakeCreds) ClientCredentials() (domain.ClientCredentials, error) {
	return f.creds, nil
}

type fakeStore struct {
	token    string
	storeErr error
	stored   []string
}

func (f *fakeStore) Token(context.Context) (string, error) {
	if f.token == "" {
		return "", domain.ErrNotAuthenticated
	}
	return f.token, nil
}

func (f *fakeStore) TokenQuiet(context.Context) (string, bool) {
	return f.token, f.token != ""
}

func (f *fakeStore) Store(_ context.Context, token string) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored = append(f.stored, token)
	f.token = token
	return nil
}

type fakeExchanger struct {
	token       string
	err         error
	gotCode     string
	gotRedirect string
	calls       int
}

func (f *fakeExchanger) Exchange(_ context.Context, _ domain.ClientCredentials, code, redirectURI string) (string, error) {
	f.calls++
	f.gotCode = code
	f.gotRedirect = redirectURI
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(context.Context, string) error {
	return f.err
}

type fakeReceiver struct {
	code     string
	waitErr  error
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeReceiver) Start() error {
	f.started = true
	return f.startErr
}

func (f *fakeReceiver) WaitForCode(context.Context, time.Duration) (string, error) {
	if f.waitErr != nil {
		return "", f.waitErr
	}
	return f.code, nil
}

func (f *fakeReceiver) Stop() error {
	f.stopped = true
	return nil
}

func realCreds() domain.ClientCredentials {
	return domain.ClientCredentials{ClientID: "client-1", ClientSecret: "secret-1"}
}

// freePort grabs an available port so automatic-mode tests do not
// depend on 8080 being free on the test host.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func newTestFlow(receiver *fakeReceiver) (*AuthFlow, *fakeStore, *fakeExchanger) {
	store := &fakeStore{}
	exchanger := &fakeExchanger{token: "tok-from-exchange"}
	flow := &AuthFlow{
		Credentials: &fakeCreds{creds: realCreds()},
		Store:       store,
		Exchanger:   exchanger,
		NewReceiver: func(int, string) CodeReceiver { return receiver },
		OpenBrowser: func(string) error { return nil },
		Input:       strings.NewReader(""),
		Output:      io.Discard,
		ErrOutput:   io.Discard,
	}
	return flow, store, exchanger
}

func TestAuthenticateAutomatic(t *testing.T) {
	receiver := &fakeReceiver{code: "code-42"}
	flow, store, exchanger := newTestFlow(receiver)
	flow.Port = freePort(t)

	var browsedURL string
	flow.OpenBrowser = func(u string) error {
		browsedURL = u
		return nil
	}

	err := flow.Authenticate(context.Background(), driving.AuthOptions{})
	require.NoError(t, err)

	assert.True(t, receiver.started)
	assert.True(t, receiver.stopped)
	assert.Equal(t, "code-42", exchanger.gotCode)
	assert.Equal(t, []string{"tok-from-exchange"}, store.stored)

	u, err := url.Parse(browsedURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "data:read_write", q.Get("scope"))
	assert.Len(t, q.Get("state"), 64)
	assert.Equal(t, fmt.Sprintf("http://localhost:%d/callback", flow.Port), q.Get("redirect_uri"))
	assert.Equal(t, exchanger.gotRedirect, q.Get("redirect_uri"))
}

func TestAuthenticateUnconfigured(t *testing.T) {
	receiver := &fakeReceiver{code: "code-42"}
	flow, _, exchanger := newTestFlow(receiver)
	flow.Credentials = &fakeCreds{creds: domain.ClientCredentials{
		ClientID:     domain.PlaceholderClientID,
		ClientSecret: domain.PlaceholderClientSecret,
	}}

	err := flow.Authenticate(context.Background(), driving.AuthOptions{})
	assert.ErrorIs(t, err, domain.ErrUnconfigured)
	assert.Zero(t, exchanger.calls, "no network call with placeholder credentials")
	assert.False(t, receiver.started)
}

func TestAuthenticateTimeout(t *testing.T) {
	receiver := &fakeReceiver{waitErr: domain.ErrTimeout}
	flow, store, _ := newTestFlow(receiver)
	flow.Port = freePort(t)

	err := flow.Authenticate(context.Background(), driving.AuthOptions{})
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.Empty(t, store.stored)
	assert.True(t, receiver.stopped, "listener shut down on timeout")
}

func TestAuthenticateManualBareCode(t *testing.T) {
	flow, store, exchanger := newTestFlow(nil)
	flow.Input = strings.NewReader("pasted-code\n")

	err := flow.Authenticate(context.Background(), driving.AuthOptions{Mode: domain.AuthModeManual})
	require.NoError(t, err)
	assert.Equal(t, "pasted-code", exchanger.gotCode)
	assert.Equal(t, []string{"tok-from-exchange"}, store.stored)
}

func TestAuthenticateManualEmptyInput(t *testing.T) {
	flow, _, exchanger := newTestFlow(nil)
	flow.Input = strings.NewReader("\n")

	err := flow.Authenticate(context.Background(), driving.AuthOptions{Mode: domain.AuthModeManual})
	assert.ErrorIs(t, err, domain.ErrNoCode)
	assert.Zero(t, exchanger.calls)
}

func TestAuthenticateManualStateMismatchNonInteractive(t *testing.T) {
	flow, store, exchanger := newTestFlow(nil)
	flow.Interactive = false

	// Pre-supplied input means non-interactive; a mismatching state in
	// the pasted URL must abort before any exchange.
	err := flow.Authenticate(context.Background(), driving.AuthOptions{
		Code: "http://localhost:8080/callback?code=abc&state=" + strings.Repeat("ff", 32),
	})
	assert.ErrorIs(t, err, domain.ErrStateMismatch)
	assert.Zero(t, exchanger.calls, "exchange must not run after a mismatch abort")
	assert.Empty(t, store.stored)
}

func TestAuthenticateManualStateMismatchInteractiveOverride(t *testing.T) {
	flow, store, exchanger := newTestFlow(nil)
	flow.Interactive = true
	flow.Input = strings.NewReader(
		"http://localhost:8080/callback?code=abc&state=" + strings.Repeat("ff", 32) + "\n" +
			"yes\n")

	err := flow.Authenticate(context.Background(), driving.AuthOptions{Mode: domain.AuthModeManual})
	require.NoError(t, err)
	assert.Equal(t, "abc", exchanger.gotCode)
	assert.Equal(t, []string{"tok-from-exchange"}, store.stored)
}

func TestAuthenticateManualStateMismatchInteractiveDecline(t *testing.T) {
	flow, _, exchanger := newTestFlow(nil)
	flow.Interactive = true
	flow.Input = strings.NewReader(
		"http://localhost:8080/callback?code=abc&state=" + strings.Repeat("ff", 32) + "\n" +
			"no\n")

	err := flow.Authenticate(context.Background(), driving.AuthOptions{Mode: domain.AuthModeManual})
	assert.ErrorIs(t, err, domain.ErrStateMismatch)
	assert.Zero(t, exchanger.calls)
}

// pastedRedirect plays the operator who copies the redirect URL out of
// the browser: on first read it lifts the state from the authorization
// URL already printed to out and answers with a callback URL carrying
// that same state plus a code.
type pastedRedirect struct {
	out  *bytes.Buffer
	once sync.Once
	r    io.Reader
}

func (p *pastedRedirect) Read(buf []byte) (int, error) {
	p.once.Do(func() {
		m := regexp.MustCompile(`state=([0-9a-f]{64})`).FindStringSubmatch(p.out.String())
		if m == nil {
			p.r = strings.NewReader("\n")
			return
		}
		p.r = strings.NewReader("http://localhost:8080/callback?code=code-77&state=" + m[1] + "\n")
	})
	return p.r.Read(buf)
}

func TestAuthenticateManualPastedRedirectEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-1", r.FormValue("client_id"))
		assert.Equal(t, "secret-1", r.FormValue("client_secret"))
		assert.Equal(t, "code-77", r.FormValue("code"))
		w.Write([]byte(`{"access_token": "tok-from-endpoint"}`))
	}))
	defer srv.Close()

	flow, store, _ := newTestFlow(nil)
	flow.Exchanger = &tokenexchange.Exchanger{TokenURL: srv.URL}
	var out bytes.Buffer
	flow.Output = &out
	flow.Input = &pastedRedirect{out: &out}
	// Non-interactive, so reaching the exchange proves the pasted state
	// matched the generated one; a mismatch aborts without prompting.
	flow.Interactive = false

	err := flow.Authenticate(context.Background(), driving.AuthOptions{Mode: domain.AuthModeManual})
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-from-endpoint"}, store.stored)
}

func TestAuthenticateManualCancelled(t *testing.T) {
	flow, _, _ := newTestFlow(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Blocked stdin read; the cancelled context must win.
	r, w := io.Pipe()
	defer w.Close()
	flow.Input = r

	err := flow.Authenticate(ctx, driving.AuthOptions{Mode: domain.AuthModeManual})
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestAuthenticateStoreFailure(t *testing.T) {
	flow, store, _ := newTestFlow(nil)
	store.storeErr = domain.ErrStoreFailed
	flow.Input = strings.NewReader("pasted-code\n")

	err := flow.Authenticate(context.Background(), driving.AuthOptions{Mode: domain.AuthModeManual})
	assert.ErrorIs(t, err, domain.ErrStoreFailed)
}

func TestAuthenticateExchangeFailure(t *testing.T) {
	flow, store, exchanger := newTestFlow(nil)
	exchanger.err = domain.ErrExchangeFailed
	flow.Input = strings.NewReader("pasted-code\n")

	err := flow.Authenticate(context.Background(), driving.AuthOptions{Mode: domain.AuthModeManual})
	assert.ErrorIs(t, err, domain.ErrExchangeFailed)
	assert.Empty(t, store.stored)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		verifier      *fakeVerifier
		authenticated bool
		contains      string
	}{
		{
			name:          "no token",
			authenticated: false,
			contains:      "Not authenticated",
		},
		{
			name:          "token verified",
			token:         "tok",
			verifier:      &fakeVerifier{},
			authenticated: true,
			contains:      "Authenticated",
		},
		{
			name:          "token revoked",
			token:         "tok",
			verifier:      &fakeVerifier{err: domain.ErrUnauthorized},
			authenticated: false,
			contains:      "revoked or expired",
		},
		{
			name:          "verification unreachable",
			token:         "tok",
			verifier:      &fakeVerifier{err: domain.ErrConnectionFailed},
			authenticated: true,
			contains:      "could not verify",
		},
		{
			name:          "no verifier wired",
			token:         "tok",
			authenticated: true,
			contains:      "not verified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, store, _ := newTestFlow(nil)
			store.token = tt.token
			if tt.verifier != nil {
				flow.Verifier = tt.verifier
			}

			st := flow.Status(context.Background())
			assert.Equal(t, tt.authenticated, st.Authenticated)
			assert.Contains(t, st.Message, tt.contains)
		})
	}
}

func TestAuthenticatePortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	receiver := &fakeReceiver{code: "code-42"}
	flow, _, exchanger := newTestFlow(receiver)
	flow.Port = l.Addr().(*net.TCPAddr).Port

	err = flow.Authenticate(context.Background(), driving.AuthOptions{})
	assert.ErrorIs(t, err, domain.ErrPortInUse)
	assert.Zero(t, exchanger.calls)
	assert.False(t, receiver.started, "preflight failure must stop before the listener starts")
}
