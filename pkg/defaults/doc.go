// Package defaults centralizes timeout and retry constants used across
// kubedeploy components. Keeping them in one place makes the worst-case
// blocking behavior of a deploy request auditable.
package defaults
