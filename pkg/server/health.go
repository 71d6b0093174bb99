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

package server

import (
	"net/http"
	"time"

	"github.com/NVIDIA/kubedeploy/pkg/serializer"
)

// HealthResponse is the payload of the /health and /ready probes.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// handleHealth serves the liveness probe. It answers as long as the process
// can handle a request at all; readiness is a separate question.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeProbe(w, http.StatusOK, "healthy", "")
}

// handleReady serves the readiness probe, flipping to 503 while the server
// is starting up or draining.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		writeProbe(w, http.StatusServiceUnavailable, "not_ready", "service is initializing")
		return
	}
	writeProbe(w, http.StatusOK, "ready", "")
}

func writeProbe(w http.ResponseWriter, statusCode int, status, reason string) {
	serializer.RespondJSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Reason:    reason,
	})
}
