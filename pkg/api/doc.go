// Package api provides the HTTP API layer for the deployment service.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with application-specific routes and handlers. It exposes
// the namespace/deployment/service reconciliation via REST API.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/kubedeploy/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - POST /k8s/deploy - Reconcile the namespace, deployment, and service
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Authentication
//
// POST /k8s/deploy requires the x-api-key header. The expected key comes
// from the API_KEY environment variable.
//
// Example curl command:
//
//	curl -X POST "http://localhost:8080/k8s/deploy?namespace=nginx" \
//	  -H "x-api-key: $API_KEY"
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - API_KEY: Deploy endpoint credential
//   - KUBECONFIG: Path to kubeconfig (in-cluster config when unset)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/kubedeploy/pkg/api.version=1.0.0'"
package api
