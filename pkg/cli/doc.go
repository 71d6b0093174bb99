// Package cli implements the command-line interface for the kubedeploy tool.
//
// # Commands
//
// deploy - Reconcile cluster resources:
//
//	kubedeploy deploy [--namespace NS] [--output FILE] [--format yaml|json|table]
//
// Checks the target namespace, the nginx deployment, and its ClusterIP
// service against live cluster state and applies only the resources that
// are absent. Output defaults to stdout in YAML format.
//
// serve - Run the HTTP API:
//
//	kubedeploy serve
//
// Runs the HTTP server exposing the same reconciliation on POST /k8s/deploy,
// guarded by the x-api-key header.
//
// # Global Flags
//
//	--config       Config file path (default: $HOME/.kubedeploy.yaml)
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--kubeconfig   Kubeconfig path (default: auto-discovery)
//
// Configuration values can also come from the config file or environment
// variables prefixed with KUBEDEPLOY_.
package cli
