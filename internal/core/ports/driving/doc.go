// Package driving defines the interfaces through which the CLI invokes
// the core services.
package driving
