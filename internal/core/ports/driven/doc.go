// Package driven defines the interfaces the core depends on: token
// storage backends, the OAuth token exchange, client-credential loading,
// and the configuration store. Adapters implement these.
package driven
