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

// Package server provides the HTTP serving layer for the deployment API.
//
// The server is a stateless HTTP front with the following components:
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking for distributed tracing
//   - Panic recovery for resilience
//   - Prometheus metrics on /metrics
//   - Graceful shutdown handling
//   - Health and readiness probes for Kubernetes
//
// # Usage
//
// Basic server startup:
//
//	s := server.New(
//	    server.WithName("kubedeployd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/k8s/deploy": handler.Handle,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    // handle error
//	}
//
// # Endpoints
//
// Registered handlers are wrapped with the full middleware chain. The server
// additionally serves:
//
//	GET /        - service identity and route listing
//	GET /health  - liveness probe, always 200 when the process is up
//	GET /ready   - readiness probe, 503 until the server is started
//	GET /metrics - Prometheus metrics
//
// # Observability
//
// All requests accept an optional X-Request-Id header (UUID format).
// If not provided, the server generates one automatically. The request ID is
// returned in the X-Request-Id response header and included in framework
// error responses for tracing.
//
// Rate limit status is reported via response headers:
//
//	X-RateLimit-Limit: Total requests allowed per window
//	X-RateLimit-Remaining: Requests remaining in current window
//	X-RateLimit-Reset: Unix timestamp when window resets
//
// When rate limited, returns 429 with Retry-After header.
//
// # Error Handling
//
// Framework-level errors return a consistent JSON structure:
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": true
//	}
//
// Application handlers remain free to serve their own response shapes.
package server
