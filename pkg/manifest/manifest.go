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

package manifest

import (
	"fmt"

	"github.com/distribution/reference"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/NVIDIA/kubedeploy/pkg/errors"
)

const (
	// DefaultNamespace is the namespace used when a request does not name one.
	DefaultNamespace = "nginx"

	// DeploymentName is the fixed name of the managed nginx deployment.
	DeploymentName = "nginx-deployment"
	// ServiceName is the fixed name of the managed nginx service.
	ServiceName = "nginx-service"
	// DefaultImage is the container image applied when none is configured.
	DefaultImage = "nginx:latest"

	// ContainerPort is the port the nginx container listens on.
	ContainerPort = 80
	// ServicePort is the cluster-internal port the service exposes.
	ServicePort = 81

	appLabelKey   = "app"
	appLabelValue = "nginx"
)

// Kind identifies the cluster resource type a descriptor renders to.
type Kind string

const (
	KindNamespace  Kind = "Namespace"
	KindDeployment Kind = "Deployment"
	KindService    Kind = "Service"
)

// Descriptor pairs a typed cluster object with the identity the reconciler
// needs to check for it and report on it.
type Descriptor struct {
	Kind      Kind
	Name      string
	Namespace string

	object any
}

// Serialize renders the descriptor's object as a YAML document suitable
// for kubectl apply.
func (d *Descriptor) Serialize() ([]byte, error) {
	data, err := yaml.Marshal(d.object)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to serialize %s/%s", d.Kind, d.Name), err)
	}
	return data, nil
}

func appLabels() map[string]string {
	return map[string]string{appLabelKey: appLabelValue}
}

// Namespace builds the descriptor for the target namespace.
func Namespace(name string) *Descriptor {
	if name == "" {
		name = DefaultNamespace
	}
	return &Descriptor{
		Kind: KindNamespace,
		Name: name,
		object: &corev1.Namespace{
			TypeMeta: metav1.TypeMeta{
				APIVersion: "v1",
				Kind:       string(KindNamespace),
			},
			ObjectMeta: metav1.ObjectMeta{
				Name: name,
			},
		},
	}
}

// Deployment builds the descriptor for the nginx deployment in the given
// namespace. The image reference is validated before the object is built so
// a malformed image fails fast rather than at apply time.
func Deployment(namespace, image string) (*Descriptor, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if image == "" {
		image = DefaultImage
	}
	if _, err := reference.ParseNormalizedNamed(image); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid container image reference %q", image), err)
	}

	return &Descriptor{
		Kind:      KindDeployment,
		Name:      DeploymentName,
		Namespace: namespace,
		object: &appsv1.Deployment{
			TypeMeta: metav1.TypeMeta{
				APIVersion: "apps/v1",
				Kind:       string(KindDeployment),
			},
			ObjectMeta: metav1.ObjectMeta{
				Name:      DeploymentName,
				Namespace: namespace,
				Labels:    appLabels(),
			},
			Spec: appsv1.DeploymentSpec{
				Replicas: ptr.To(int32(1)),
				Selector: &metav1.LabelSelector{
					MatchLabels: appLabels(),
				},
				Template: corev1.PodTemplateSpec{
					ObjectMeta: metav1.ObjectMeta{
						Labels: appLabels(),
					},
					Spec: corev1.PodSpec{
						Containers: []corev1.Container{
							{
								Name:  "nginx",
								Image: image,
								Ports: []corev1.ContainerPort{
									{ContainerPort: ContainerPort},
								},
							},
						},
					},
				},
			},
		},
	}, nil
}

// Service builds the descriptor for the nginx ClusterIP service in the
// given namespace.
func Service(namespace string) *Descriptor {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Descriptor{
		Kind:      KindService,
		Name:      ServiceName,
		Namespace: namespace,
		object: &corev1.Service{
			TypeMeta: metav1.TypeMeta{
				APIVersion: "v1",
				Kind:       string(KindService),
			},
			ObjectMeta: metav1.ObjectMeta{
				Name:      ServiceName,
				Namespace: namespace,
			},
			Spec: corev1.ServiceSpec{
				Type:     corev1.ServiceTypeClusterIP,
				Selector: appLabels(),
				Ports: []corev1.ServicePort{
					{
						Protocol:   corev1.ProtocolTCP,
						Port:       ServicePort,
						TargetPort: intstr.FromInt32(ContainerPort),
					},
				},
			},
		},
	}
}
