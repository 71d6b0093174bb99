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

// Package deploy exposes the HTTP surface of the reconciler.
package deploy

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/kubedeploy/pkg/manifest"
	"github.com/NVIDIA/kubedeploy/pkg/reconciler"
	"github.com/NVIDIA/kubedeploy/pkg/serializer"
)

const (
	// HeaderAPIKey is the request header carrying the caller's credential.
	HeaderAPIKey = "x-api-key"

	queryNamespace = "namespace"
)

// Reconciler is the subset of reconciliation behavior the handler needs.
type Reconciler interface {
	Reconcile(ctx context.Context, namespace string) (*reconciler.Result, error)
}

// Response is the success payload of a deploy request.
type Response struct {
	NamespaceResult  *reconciler.StepResult `json:"namespace_result"`
	DeploymentResult *reconciler.StepResult `json:"deployment_result"`
	ServiceResult    *reconciler.StepResult `json:"service_result"`
	Message          string                 `json:"message"`
}

// DetailResponse is the error payload: a single detail string.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Handler authenticates deploy requests and runs the reconciler.
type Handler struct {
	apiKey     string
	reconciler Reconciler
}

// NewHandler creates a deploy handler guarding the reconciler with the
// given API key.
func NewHandler(apiKey string, rec Reconciler) *Handler {
	return &Handler{apiKey: apiKey, reconciler: rec}
}

// Handle serves POST /k8s/deploy. Authentication is checked before any
// cluster interaction; an invalid key never triggers reconciliation. A
// failed pass is reported as a single 500 detail string, with any partial
// cluster changes already made left in place.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		serializer.RespondJSON(w, http.StatusMethodNotAllowed,
			DetailResponse{Detail: "Method Not Allowed"})
		return
	}

	if r.Header.Get(HeaderAPIKey) != h.apiKey {
		slog.Warn("unauthorized deploy request", "remote", r.RemoteAddr)
		unauthorizedTotal.Inc()
		serializer.RespondJSON(w, http.StatusUnauthorized,
			DetailResponse{Detail: "Invalid API key"})
		return
	}

	namespace := r.URL.Query().Get(queryNamespace)
	if namespace == "" {
		namespace = manifest.DefaultNamespace
	}

	res, err := h.reconciler.Reconcile(r.Context(), namespace)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		slog.Error("deploy request failed", "namespace", namespace, "error", err)
		requestsTotal.WithLabelValues(outcomeError).Inc()
		serializer.RespondJSON(w, http.StatusInternalServerError,
			DetailResponse{Detail: err.Error()})
		return
	}

	requestsTotal.WithLabelValues(outcomeSuccess).Inc()
	serializer.RespondJSON(w, http.StatusOK, Response{
		NamespaceResult:  res.Namespace,
		DeploymentResult: res.Deployment,
		ServiceResult:    res.Service,
		Message:          "Namespace, NGINX Deployment, and Service executed successfully.",
	})
}
