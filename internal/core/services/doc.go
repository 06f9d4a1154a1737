// Package services contains the core business logic: the OAuth
// authorization flow state machine, CSRF-state generation and parsing,
// and the callback-port preflight.
package services
