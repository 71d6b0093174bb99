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

// Package client builds Kubernetes API clients for in-cluster and
// out-of-cluster use.
//
// The client automatically handles both authentication modes:
//
// In-cluster (running as Kubernetes Pod):
//   - Uses service account credentials from /var/run/secrets/kubernetes.io/serviceaccount/
//   - No additional configuration required
//
// Out-of-cluster (running locally or on non-K8s host):
//   - Checks KUBECONFIG environment variable first
//   - Falls back to ~/.kube/config if KUBECONFIG not set
//   - Falls back to in-cluster configuration last
//
// For testing, use kubernetes client-go fake clients:
//
//	fakeClient := fake.NewClientset()
package client
