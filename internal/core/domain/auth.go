package domain

// AuthMode selects how the authorization code reaches the CLI.
type AuthMode string

const (
	// AuthModeAutomatic opens a browser and captures the code on a local
	// callback listener.
	AuthModeAutomatic AuthMode = "automatic"

	// AuthModeManual prints the authorization URL and accepts a pasted
	// redirect URL or bare code. Intended for SSH and headless sessions.
	AuthModeManual AuthMode = "manual"
)

// AuthStatus describes the current authentication state for status and
// diagnostic callers.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message"`
}
