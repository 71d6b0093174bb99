// Package runner executes external commands with per-attempt timeouts and a
// fixed-delay retry policy.
package runner
