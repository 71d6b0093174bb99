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

// StepStatus reports the outcome of a single reconciliation step.
type StepStatus string

const (
	// StatusExists means the resource was already present and no action was taken.
	StatusExists StepStatus = "exists"
	// StatusCreated means the namespace was created.
	StatusCreated StepStatus = "created"
	// StatusSuccess means the deployment was applied.
	StatusSuccess StepStatus = "success"
	// StatusServiceCreated means the service was applied.
	StatusServiceCreated StepStatus = "service-created"
	// StatusFailed means the step's apply did not succeed. Failed steps are
	// reported through Result.Err, not in the response payload.
	StatusFailed StepStatus = "failed"
)

// StepResult is the per-resource outcome returned to callers. Field presence
// varies by step and status, so everything but status is optional.
type StepResult struct {
	Status     StepStatus `json:"status"`
	Namespace  string     `json:"namespace,omitempty"`
	Deployment string     `json:"deployment,omitempty"`
	Service    string     `json:"service,omitempty"`
	Output     string     `json:"output,omitempty"`
	Message    string     `json:"message,omitempty"`

	err error
}

// FailedStep builds the result for a step whose apply did not succeed.
func FailedStep(namespace string, err error) *StepResult {
	return &StepResult{Status: StatusFailed, Namespace: namespace, err: err}
}

// Err returns the failure behind a StatusFailed step, nil otherwise.
func (r *StepResult) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

// Result aggregates the three step outcomes of one reconciliation pass.
type Result struct {
	Namespace  *StepResult
	Deployment *StepResult
	Service    *StepResult
}

// Err returns the first step failure in execution order, nil when every
// step succeeded.
func (r *Result) Err() error {
	for _, step := range []*StepResult{r.Namespace, r.Deployment, r.Service} {
		if err := step.Err(); err != nil {
			return err
		}
	}
	return nil
}
