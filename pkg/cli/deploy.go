/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NVIDIA/kubedeploy/pkg/applier"
	"github.com/NVIDIA/kubedeploy/pkg/defaults"
	"github.com/NVIDIA/kubedeploy/pkg/k8s/client"
	"github.com/NVIDIA/kubedeploy/pkg/manifest"
	"github.com/NVIDIA/kubedeploy/pkg/reconciler"
	"github.com/NVIDIA/kubedeploy/pkg/runner"
	"github.com/NVIDIA/kubedeploy/pkg/serializer"
)

var (
	deployNamespace string
	deployImage     string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Reconcile the namespace, nginx deployment, and service",
	Long: `Reconcile the target namespace, the nginx deployment, and its ClusterIP
service against the cluster. Each resource is checked first and applied only
when absent, so repeating the command is safe.

The result can be output in JSON, YAML, or table format.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outFormat := serializer.Format(format)
		if outFormat.IsUnknown() {
			return fmt.Errorf("unknown output format %q (supported: %s)",
				format, strings.Join(serializer.SupportedFormats(), ", "))
		}

		kube, _, err := client.Build(kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to build kubernetes client: %w", err)
		}

		rec := reconciler.New(kube, applier.New(runner.New()),
			reconciler.WithImage(deployImage))

		ctx, cancel := context.WithTimeout(cmd.Context(), defaults.CLIDeployTimeout)
		defer cancel()

		res, err := rec.Reconcile(ctx, deployNamespace)
		if err != nil {
			return fmt.Errorf("reconciliation failed: %w", err)
		}

		w := serializer.NewFileWriterOrStdout(outFormat, output)
		defer func() { _ = w.Close() }()

		if serr := w.Serialize(ctx, res); serr != nil {
			return fmt.Errorf("failed to write result: %w", serr)
		}

		return res.Err()
	},
}

func init() {
	deployCmd.Flags().StringVarP(&deployNamespace, "namespace", "n",
		manifest.DefaultNamespace, "target namespace")
	deployCmd.Flags().StringVar(&deployImage, "image",
		manifest.DefaultImage, "nginx container image reference")
	deployCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file path (default: stdout)")
	deployCmd.Flags().StringVarP(&format, "format", "t", string(serializer.FormatYAML),
		fmt.Sprintf("output format (supported: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")))

	rootCmd.AddCommand(deployCmd)
}
