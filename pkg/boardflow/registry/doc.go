// Package registry provides a small generic, thread-safe key/value
// registry with register-once semantics.
//
// It backs the process-wide node definition registry in package boardflow
// but carries no domain knowledge of its own.
package registry
