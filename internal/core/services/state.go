package services

import (
	"crypto/rand"
	"encoding/hex"
	"net/url"
	"strings"
)

// stateLength is the number of random bytes in a CSRF state value.
// 32 bytes hex-encode to 64 characters; hex cannot be mistaken for an
// authorization code pasted by the operator.
const stateLength = 32

// GenerateState creates a single-use CSRF state value for one
// authorization attempt. It must never be reused across attempts.
func GenerateState() (string, error) {
	buf := make([]byte, stateLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ParseCodeFromInput extracts an authorization code from manual-mode
// input. The input may be a full redirect URL (the code is taken from
// its query string) or a bare code, which is returned unchanged.
func ParseCodeFromInput(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "http") {
		if u, err := url.Parse(input); err == nil {
			if code := u.Query().Get("code"); code != "" {
				return code
			}
		}
	}
	return input
}

// StateFromInput extracts the state parameter from manual-mode input,
// if the input is a URL carrying one. Returns ("", false) when the
// input has no state to validate.
func StateFromInput(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "state=") {
		return "", false
	}
	u, err := url.Parse(input)
	if err != nil {
		return "", false
	}
	state := u.Query().Get("state")
	if state == "" {
		return "", false
	}
	return state, true
}
