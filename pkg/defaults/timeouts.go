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

package defaults

import "time"

// Command runner policy for external CLI invocations.
const (
	// CommandTimeout bounds a single attempt of an external command.
	CommandTimeout = 15 * time.Second

	// CommandRetryAttempts is the total number of attempts for a failing
	// external command, including the first.
	CommandRetryAttempts = 3

	// CommandRetryDelay is the fixed pause between attempts.
	// No backoff, no jitter.
	CommandRetryDelay = 5 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// A deploy request can block for CommandRetryAttempts full command
	// timeouts per resource (three resources), so this must cover the
	// worst-case reconciliation, not a typical request.
	ServerWriteTimeout = 4 * time.Minute

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes timeouts for control-plane reads.
const (
	// K8sQueryTimeout bounds a single existence check against the API server.
	K8sQueryTimeout = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIDeployTimeout is the default timeout for a CLI-driven reconciliation.
	CLIDeployTimeout = 5 * time.Minute
)
