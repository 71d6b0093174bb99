package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/NVIDIA/kubedeploy/pkg/applier"
	"github.com/NVIDIA/kubedeploy/pkg/deploy"
	"github.com/NVIDIA/kubedeploy/pkg/k8s/client"
	"github.com/NVIDIA/kubedeploy/pkg/logging"
	"github.com/NVIDIA/kubedeploy/pkg/reconciler"
	"github.com/NVIDIA/kubedeploy/pkg/runner"
	"github.com/NVIDIA/kubedeploy/pkg/server"
)

const (
	name           = "kubedeployd"
	versionDefault = "dev"

	// DefaultAPIKey guards the deploy endpoint when API_KEY is not set.
	DefaultAPIKey = "deploy-nginx"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/kubedeploy/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, builds the cluster client and reconciler, sets up
// routes, and handles graceful shutdown. Returns an error if the server
// fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	kube, _, err := client.Build(os.Getenv("KUBECONFIG"))
	if err != nil {
		slog.Error("failed to build kubernetes client", "error", err)
		return err
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}

	rec := reconciler.New(kube, applier.New(runner.New()))
	h := deploy.NewHandler(apiKey, rec)

	r := map[string]http.HandlerFunc{
		"/k8s/deploy": h.Handle,
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(r),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
