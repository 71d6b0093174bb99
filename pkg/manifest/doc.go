// Package manifest builds the typed cluster objects the reconciler manages
// and serializes them to YAML for kubectl.
package manifest
