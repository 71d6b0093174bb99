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

package reconciler

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/kubedeploy/pkg/errors"
)

// oracle answers existence questions against live cluster state. A NotFound
// response means absent; any other API error is a query failure and must
// propagate rather than being treated as absence.
type oracle struct {
	client kubernetes.Interface
}

func (o *oracle) namespaceExists(ctx context.Context, name string) (bool, error) {
	_, err := o.client.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	return existence("namespace", name, err)
}

func (o *oracle) deploymentExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := o.client.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	return existence("deployment", name, err)
}

func (o *oracle) serviceExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := o.client.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	return existence("service", name, err)
}

func existence(kind, name string, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if apierrors.IsNotFound(err) {
		return false, nil
	}
	return false, errors.Wrap(errors.ErrCodeQueryFailed,
		fmt.Sprintf("failed to check %s %q", kind, name), err)
}
