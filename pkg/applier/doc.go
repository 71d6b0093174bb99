// Package applier applies serialized manifests to the cluster via kubectl.
package applier
