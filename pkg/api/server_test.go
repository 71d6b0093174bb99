package api

import (
	"net/http"
	"testing"

	"github.com/NVIDIA/kubedeploy/pkg/deploy"
)

// Serve() is a blocking function wiring logging, the cluster client, and the
// HTTP server together; it is exercised by end-to-end tests rather than unit
// tests. These tests cover the package's static configuration.

func TestConstants(t *testing.T) {
	if name != "kubedeployd" {
		t.Errorf("name = %q, want %q", name, "kubedeployd")
	}

	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}

	if DefaultAPIKey != "deploy-nginx" {
		t.Errorf("DefaultAPIKey = %q, want %q", DefaultAPIKey, "deploy-nginx")
	}

	// Verify buildtime variables exist (they may have default values)
	if version == "" {
		t.Error("version should not be empty")
	}
	if commit == "" {
		t.Error("commit should not be empty")
	}
	if date == "" {
		t.Error("date should not be empty")
	}
}

func TestRouteConfiguration(t *testing.T) {
	h := deploy.NewHandler(DefaultAPIKey, nil)

	routes := map[string]http.HandlerFunc{
		"/k8s/deploy": h.Handle,
	}

	if handler, exists := routes["/k8s/deploy"]; !exists {
		t.Error("expected /k8s/deploy route to exist")
	} else if handler == nil {
		t.Error("expected /k8s/deploy handler to be non-nil")
	}

	if len(routes) != 1 {
		t.Errorf("expected exactly 1 route, got %d", len(routes))
	}
}
