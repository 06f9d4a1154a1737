package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/taskwise/todoist-cli/internal/core/domain"
	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
	"github.com/taskwise/todoist-cli/internal/core/ports/driving"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// Ensure AuthFlow implements the interface.
var _ driving.AuthService = (*AuthFlow)(nil)

const (
	// DefaultAuthorizeURL is Todoist's OAuth authorization endpoint.
	DefaultAuthorizeURL = "https://todoist.com/oauth/authorize"

	// DefaultCallbackPort must match the redirect URI registered with
	// the Todoist app: http://localhost:8080/callback.
	DefaultCallbackPort = 8080

	// DefaultAuthTimeout bounds how long the automatic flow waits for
	// the browser callback.
	DefaultAuthTimeout = 5 * time.Minute

	// DefaultScope grants read/write access to tasks and projects.
	DefaultScope = "data:read_write"
)

// CodeReceiver is a single-use local listener that captures one
// authorization callback. A fresh receiver is created for every
// attempt so no code, error, or expected state leaks across runs.
type CodeReceiver interface {
	Start() error
	WaitForCode(ctx context.Context, timeout time.Duration) (string, error)
	Stop() error
}

// AuthFlow drives the OAuth authorization-code grant: generate state,
// obtain a code (browser callback or pasted input), exchange it for a
// token, and persist the token. One AuthFlow invocation is one attempt;
// every failure is terminal and the operator re-runs to retry.
type AuthFlow struct {
	Credentials driven.CredentialsSource
	Store       driven.TokenStore
	Exchanger   driven.CodeExchanger
	Verifier    driven.TokenVerifier

	AuthorizeURL string
	Port         int
	Scope        string
	Timeout      time.Duration

	// NewReceiver constructs the callback listener for one attempt.
	NewReceiver func(port int, expectedState string) CodeReceiver
	// OpenBrowser launches the system browser. Failures degrade to
	// printing the URL, they do not abort the attempt.
	OpenBrowser func(url string) error

	// Input feeds manual-mode prompts; Output carries instructions and
	// confirmations; ErrOutput carries warnings and failure guidance.
	Input     io.Reader
	Output    io.Writer
	ErrOutput io.Writer

	// Interactive reports whether a terminal is attached. Only an
	// interactive operator may override a manual-mode state mismatch,
	// and only with an explicit "yes".
	Interactive bool
}

// Authenticate runs one authorization attempt to completion.
func (f *AuthFlow) Authenticate(ctx context.Context, opts driving.AuthOptions) error {
	creds, err := f.Credentials.ClientCredentials()
	if err != nil {
		return fmt.Errorf("load client credentials: %w", err)
	}
	if !creds.Configured() {
		f.printSetupInstructions()
		return domain.ErrUnconfigured
	}

	state, err := GenerateState()
	if err != nil {
		return fmt.Errorf("generate state: %w", err)
	}
	logger.Debug("generated authorization state %s", domain.RedactState(state))

	mode := opts.Mode
	if opts.Code != "" {
		mode = domain.AuthModeManual
	}

	if mode == domain.AuthModeAutomatic {
		if err := CheckPortAvailable(f.port()); err != nil {
			fmt.Fprintf(f.ErrOutput, "Port %d is needed for the OAuth callback.\n\nOptions:\n", f.port())
			fmt.Fprintf(f.ErrOutput, "  1. Free port %d and retry\n", f.port())
			fmt.Fprintln(f.ErrOutput, "  2. Use manual mode: todoist auth --manual")
			return err
		}
	}

	redirectURI := fmt.Sprintf("http://localhost:%d/callback", f.port())
	authURL := f.buildAuthURL(creds.ClientID, state, redirectURI)

	var code string
	switch mode {
	case domain.AuthModeManual:
		code, err = f.manualFlow(ctx, authURL, state, opts.Code)
	default:
		code, err = f.automaticFlow(ctx, authURL, state)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(f.Output, "Exchanging authorization code for token...")
	token, err := f.Exchanger.Exchange(ctx, creds, code, redirectURI)
	if err != nil {
		return err
	}

	if err := f.Store.Store(ctx, token); err != nil {
		fmt.Fprintln(f.ErrOutput, "A token was issued but could not be saved.")
		fmt.Fprintln(f.ErrOutput, "Re-run `todoist auth` once storage is fixed; the unsaved token is discarded.")
		return err
	}

	fmt.Fprintln(f.Output, "\n✓ Successfully authenticated with Todoist!")
	return nil
}

// Status reports authentication state without aborting on failure.
func (f *AuthFlow) Status(ctx context.Context) domain.AuthStatus {
	token, ok := f.Store.TokenQuiet(ctx)
	if !ok {
		return domain.AuthStatus{
			Authenticated: false,
			Message:       "Not authenticated. Run `todoist auth` to connect your Todoist account.",
		}
	}

	if f.Verifier == nil {
		return domain.AuthStatus{Authenticated: true, Message: "Token present (not verified)."}
	}

	err := f.Verifier.Verify(ctx, token)
	switch {
	case err == nil:
		return domain.AuthStatus{Authenticated: true, Message: "Authenticated with Todoist."}
	case errors.Is(err, domain.ErrUnauthorized):
		return domain.AuthStatus{
			Authenticated: false,
			Message:       "Token revoked or expired. Run `todoist auth` to re-authenticate.",
		}
	default:
		// Network trouble is not evidence of a bad token.
		return domain.AuthStatus{
			Authenticated: true,
			Message:       fmt.Sprintf("Token present (could not verify: %v)", err),
		}
	}
}

// buildAuthURL constructs the authorization URL. The explicit
// redirect_uri variant is used in both modes; the same URI is sent to
// the token endpoint during exchange.
func (f *AuthFlow) buildAuthURL(clientID, state, redirectURI string) string {
	conf := &oauth2.Config{
		ClientID:    clientID,
		Endpoint:    oauth2.Endpoint{AuthURL: f.authorizeURL()},
		RedirectURL: redirectURI,
		Scopes:      []string{f.scope()},
	}
	return conf.AuthCodeURL(state)
}

// automaticFlow opens the browser and blocks on the local callback
// listener until a code, a classified failure, or the timeout.
func (f *AuthFlow) automaticFlow(ctx context.Context, authURL, state string) (string, error) {
	receiver := f.NewReceiver(f.port(), state)
	if err := receiver.Start(); err != nil {
		// Port became unavailable between preflight and bind.
		return "", fmt.Errorf("%w: %v", domain.ErrPortInUse, err)
	}
	defer receiver.Stop() //nolint:errcheck // shutdown on a one-shot listener

	fmt.Fprintln(f.Output, "Opening browser for authorization...")
	if err := f.OpenBrowser(authURL); err != nil {
		logger.Warn("could not open browser: %v", err)
		fmt.Fprintf(f.Output, "Open this URL yourself:\n\n   %s\n\n", authURL)
	}

	return receiver.WaitForCode(ctx, f.timeout())
}

// manualFlow prints the authorization URL and parses a pasted redirect
// URL or bare code. preSupplied non-empty means non-interactive input.
func (f *AuthFlow) manualFlow(ctx context.Context, authURL, state, preSupplied string) (string, error) {
	fmt.Fprintln(f.Output, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(f.Output, "MANUAL AUTHORIZATION")
	fmt.Fprintln(f.Output, strings.Repeat("=", 60))
	fmt.Fprintf(f.Output, "\n1. Open this URL in your browser:\n\n   %s\n", authURL)
	fmt.Fprintln(f.Output, "\n2. Sign in and click 'Authorize'")
	fmt.Fprintln(f.Output, "\n3. You'll be redirected to a URL that fails to load.")
	fmt.Fprintln(f.Output, "   Copy the ENTIRE URL from your browser's address bar.")
	fmt.Fprintln(f.Output, "\n4. Paste it below (or just the 'code' parameter value):")

	input := preSupplied
	if input == "" {
		fmt.Fprint(f.Output, "\n   > ")
		line, err := f.readLine(ctx)
		if err != nil {
			return "", err
		}
		input = line
	} else {
		fmt.Fprintf(f.Output, "\n   Using provided input: %s\n", truncate(input, 50))
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: no input provided", domain.ErrNoCode)
	}

	if urlState, ok := StateFromInput(input); ok && urlState != state {
		if err := f.confirmStateMismatch(ctx, state, urlState, preSupplied != ""); err != nil {
			return "", err
		}
	}

	return ParseCodeFromInput(input), nil
}

// confirmStateMismatch surfaces a security warning for a mismatching
// state in manual input. Non-interactive callers abort unconditionally;
// interactive callers must type exactly "yes" to proceed.
func (f *AuthFlow) confirmStateMismatch(ctx context.Context, expected, received string, nonInteractive bool) error {
	fmt.Fprintln(f.ErrOutput, "\n"+strings.Repeat("!", 60))
	fmt.Fprintln(f.ErrOutput, "!  SECURITY WARNING: State parameter mismatch detected")
	fmt.Fprintln(f.ErrOutput, strings.Repeat("!", 60))
	fmt.Fprintln(f.ErrOutput, "\nThis could indicate:")
	fmt.Fprintln(f.ErrOutput, "  - A CSRF attack (someone tricked you into authorizing)")
	fmt.Fprintln(f.ErrOutput, "  - You pasted a URL from an old/different auth attempt")
	fmt.Fprintln(f.ErrOutput, "  - The auth session expired and was restarted")
	fmt.Fprintf(f.ErrOutput, "\nExpected state: %s\n", domain.RedactState(expected))
	fmt.Fprintf(f.ErrOutput, "Received state: %s\n", domain.RedactState(received))

	if nonInteractive || !f.Interactive {
		fmt.Fprintln(f.ErrOutput, "\nAborting (non-interactive mode, state mismatch).")
		return domain.ErrStateMismatch
	}

	fmt.Fprintln(f.ErrOutput, "\nContinue anyway? This is safe if you just ran 'todoist auth' yourself.")
	fmt.Fprint(f.Output, "   Type 'yes' to continue, anything else to abort: ")
	answer, err := f.readLine(ctx)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		fmt.Fprintln(f.ErrOutput, "Aborted. Run 'todoist auth --manual' to start fresh.")
		return domain.ErrStateMismatch
	}
	fmt.Fprintln(f.ErrOutput, "Continuing despite state mismatch (user confirmed).")
	return nil
}

// readLine reads one line of interactive input, translating an
// interrupt (cancelled context) or closed stdin into ErrCancelled.
func (f *AuthFlow) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		scanner := bufio.NewScanner(f.Input)
		if scanner.Scan() {
			ch <- result{line: scanner.Text()}
			return
		}
		if err := scanner.Err(); err != nil {
			ch <- result{err: err}
			return
		}
		ch <- result{err: io.EOF}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(f.ErrOutput, "\nCancelled.")
		return "", domain.ErrCancelled
	case res := <-ch:
		if res.err != nil {
			fmt.Fprintln(f.ErrOutput, "\nCancelled.")
			return "", domain.ErrCancelled
		}
		return res.line, nil
	}
}

func (f *AuthFlow) printSetupInstructions() {
	fmt.Fprintln(f.ErrOutput, "OAuth is not configured.")
	fmt.Fprintln(f.ErrOutput, "\nTo set up OAuth:")
	fmt.Fprintln(f.ErrOutput, "  1. Register an app at https://developer.todoist.com")
	fmt.Fprintln(f.ErrOutput, "  2. Create client_credentials.json in the config directory with:")
	fmt.Fprintln(f.ErrOutput, `     {"client_id": "your_id", "client_secret": "your_secret"}`)
	fmt.Fprintln(f.ErrOutput, "\nAlternatively, use a personal API token:")
	fmt.Fprintln(f.ErrOutput, "  1. Get your token from: https://todoist.com/prefs/integrations")
	fmt.Fprintln(f.ErrOutput, `  2. Set: export TODOIST_API_KEY="TOKEN" in ~/.bashrc or ~/.secrets`)
}

func (f *AuthFlow) port() int {
	if f.Port > 0 {
		return f.Port
	}
	return DefaultCallbackPort
}

func (f *AuthFlow) authorizeURL() string {
	if f.AuthorizeURL != "" {
		return f.AuthorizeURL
	}
	return DefaultAuthorizeURL
}

func (f *AuthFlow) scope() string {
	if f.Scope != "" {
		return f.Scope
	}
	return DefaultScope
}

func (f *AuthFlow) timeout() time.Duration {
	if f.Timeout > 0 {
		return f.Timeout
	}
	return DefaultAuthTimeout
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
