// Package secrets stores the Todoist bearer token across three
// backends in a fixed precedence order: environment variable, OS
// keychain, then a mode-600 file under the home directory. The
// environment variable always wins so CI and headless hosts can
// override ambient storage.
package secrets
