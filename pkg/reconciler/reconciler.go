// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reconciler drives the namespace, deployment, and service toward
// their desired state with check-then-apply steps.
package reconciler

import (
	"context"
	"fmt"
	"log/slog"

	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/kubedeploy/pkg/manifest"
)

// Applier applies a manifest descriptor to the cluster.
type Applier interface {
	Apply(ctx context.Context, d *manifest.Descriptor) (string, error)
}

// Reconciler runs the three-step reconciliation: namespace, deployment,
// service. Each step checks live state first and applies only when the
// resource is absent. The existence check and the apply are not atomic; a
// resource created between them is handled by kubectl apply being
// declarative.
type Reconciler struct {
	oracle  *oracle
	applier Applier
	image   string
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithImage overrides the deployment's container image.
func WithImage(image string) Option {
	return func(r *Reconciler) {
		r.image = image
	}
}

// New creates a Reconciler backed by the given cluster client and applier.
func New(client kubernetes.Interface, applier Applier, opts ...Option) *Reconciler {
	r := &Reconciler{
		oracle:  &oracle{client: client},
		applier: applier,
		image:   manifest.DefaultImage,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile runs every step in order. An apply failure is recorded in that
// step's result and the remaining steps still run; a query failure aborts
// immediately because existence can no longer be decided. Use Result.Err to
// find out whether the pass as a whole succeeded.
func (r *Reconciler) Reconcile(ctx context.Context, namespace string) (*Result, error) {
	if namespace == "" {
		namespace = manifest.DefaultNamespace
	}

	res := &Result{}
	var err error

	if res.Namespace, err = r.reconcileNamespace(ctx, namespace); err != nil {
		return nil, err
	}
	if res.Deployment, err = r.reconcileDeployment(ctx, namespace); err != nil {
		return nil, err
	}
	if res.Service, err = r.reconcileService(ctx, namespace); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Reconciler) reconcileNamespace(ctx context.Context, namespace string) (*StepResult, error) {
	exists, err := r.oracle.namespaceExists(ctx, namespace)
	if err != nil {
		return nil, err
	}
	if exists {
		slog.Info("namespace already exists", "namespace", namespace)
		return &StepResult{
			Status:    StatusExists,
			Namespace: namespace,
			Message:   "Namespace already exists. No action taken.",
		}, nil
	}

	output, err := r.applier.Apply(ctx, manifest.Namespace(namespace))
	if err != nil {
		slog.Error("namespace apply failed", "namespace", namespace, "error", err)
		return FailedStep(namespace, err), nil
	}

	slog.Info("namespace created", "namespace", namespace)
	return &StepResult{
		Status:    StatusCreated,
		Namespace: namespace,
		Output:    output,
		Message:   fmt.Sprintf("Namespace '%s' created via YAML", namespace),
	}, nil
}

func (r *Reconciler) reconcileDeployment(ctx context.Context, namespace string) (*StepResult, error) {
	exists, err := r.oracle.deploymentExists(ctx, namespace, manifest.DeploymentName)
	if err != nil {
		return nil, err
	}
	if exists {
		return &StepResult{
			Status:     StatusExists,
			Namespace:  namespace,
			Deployment: manifest.DeploymentName,
		}, nil
	}

	d, err := manifest.Deployment(namespace, r.image)
	if err != nil {
		return FailedStep(namespace, err), nil
	}

	output, err := r.applier.Apply(ctx, d)
	if err != nil {
		slog.Error("deployment apply failed", "namespace", namespace, "error", err)
		return FailedStep(namespace, err), nil
	}

	slog.Info("deployment applied",
		"namespace", namespace,
		"deployment", manifest.DeploymentName)
	return &StepResult{
		Status:    StatusSuccess,
		Namespace: namespace,
		Output:    output,
		Message:   "NGINX deployment applied successfully.",
	}, nil
}

func (r *Reconciler) reconcileService(ctx context.Context, namespace string) (*StepResult, error) {
	exists, err := r.oracle.serviceExists(ctx, namespace, manifest.ServiceName)
	if err != nil {
		return nil, err
	}
	if exists {
		return &StepResult{
			Status:    StatusExists,
			Namespace: namespace,
			Service:   manifest.ServiceName,
		}, nil
	}

	output, err := r.applier.Apply(ctx, manifest.Service(namespace))
	if err != nil {
		slog.Error("service apply failed", "namespace", namespace, "error", err)
		return FailedStep(namespace, err), nil
	}

	slog.Info("service applied", "namespace", namespace, "service", manifest.ServiceName)
	return &StepResult{
		Status:    StatusServiceCreated,
		Namespace: namespace,
		Output:    output,
	}, nil
}
