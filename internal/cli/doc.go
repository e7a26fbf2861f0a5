// Package cli implements the recordboard sub-commands (serve, list, create,
// update, delete, sandbox). Shared plumbing such as configuration resolution
// and board construction lives in shared.go.
package cli
