// Package domain contains the core types and error taxonomy for the
// Todoist CLI: bearer tokens, OAuth client credentials, authorization
// attempts, and authentication status.
package domain
