/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"github.com/spf13/cobra"

	"github.com/NVIDIA/kubedeploy/pkg/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the deployment HTTP API server",
	Long: `Run the HTTP API server exposing the reconciliation on POST /k8s/deploy.

The server is configured via environment variables (PORT, LOG_LEVEL, API_KEY,
KUBECONFIG) and blocks until SIGINT or SIGTERM.`,
	RunE: func(*cobra.Command, []string) error {
		return api.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
