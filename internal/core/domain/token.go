package domain

// Redact shortens a secret for log or warning output. Tokens are never
// printed in full anywhere in the CLI.
func Redact(secret string) string {
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// RedactState shortens a CSRF state value for the manual-mode security
// warning: enough of a prefix to compare by eye, never the whole value.
func RedactState(state string) string {
	if state == "" {
		return "none"
	}
	if len(state) <= 16 {
		return state
	}
	return state[:16] + "..."
}
