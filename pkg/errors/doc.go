// Package errors provides structured error types with classification codes
// for the failure taxonomy of the deploy gateway: unauthorized requests,
// cluster query failures, apply failures, and command timeouts.
package errors
