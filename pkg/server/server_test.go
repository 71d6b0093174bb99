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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/kubedeploy/pkg/serializer"
)

const deployPath = "/k8s/deploy"

// deployStub mimics the deploy route's surface: POST only, guarded by an
// x-api-key header, answering with a detail payload on rejection.
func deployStub(apiKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			serializer.RespondJSON(w, http.StatusMethodNotAllowed,
				map[string]string{"detail": "Method Not Allowed"})
			return
		}
		if r.Header.Get("x-api-key") != apiKey {
			serializer.RespondJSON(w, http.StatusUnauthorized,
				map[string]string{"detail": "Invalid API key"})
			return
		}
		serializer.RespondJSON(w, http.StatusOK,
			map[string]string{"message": "Namespace, NGINX Deployment, and Service executed successfully."})
	}
}

func deployRoutes(apiKey string) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{deployPath: deployStub(apiKey)}
}

func TestNew(t *testing.T) {
	s := New(WithHandler(deployRoutes("k")))
	if s == nil {
		t.Fatal("expected server instance, got nil")
		return
	}
	if s.config == nil {
		t.Error("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode probe body: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", resp.Status)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
		expectedBody   string
	}{
		{"ready", true, http.StatusOK, "ready"},
		{"not ready", false, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			s.handleReady(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode probe body: %v", err)
			}
			if resp.Status != tt.expectedBody {
				t.Errorf("expected status %q, got %q", tt.expectedBody, resp.Status)
			}
		})
	}
}

func TestRateLimitingOnDeployRoute(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	cfg.Handlers = deployRoutes("k")

	s := New(WithConfig(cfg))
	handler := s.withMiddleware(s.config.Handlers[deployPath])

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, deployPath, nil)
		req.Header.Set("x-api-key", "k")
		w := httptest.NewRecorder()
		handler(w, req)
		return w
	}

	if w := post(); w.Code != http.StatusOK {
		t.Errorf("expected first deploy to succeed with 200, got %d", w.Code)
	}

	// Bucket is empty now
	w := post()
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on the second deploy, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on the rejected deploy")
	}
	if !strings.Contains(w.Body.String(), "RATE_LIMIT_EXCEEDED") {
		t.Errorf("expected structured rate limit error, got %s", w.Body.String())
	}
}

func TestUnauthorizedDeployPassesThroughChain(t *testing.T) {
	s := New(WithHandler(deployRoutes("secret")))
	handler := s.withMiddleware(s.config.Handlers[deployPath])

	req := httptest.NewRequest(http.MethodPost, deployPath, nil)
	req.Header.Set("x-api-key", "wrong")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid API key") {
		t.Errorf("expected detail payload, got %s", w.Body.String())
	}
	// The middleware still decorates rejected requests
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header on a 401 response")
	}
}

func TestPanicInHandlerReturns500(t *testing.T) {
	s := New()
	handler := s.withMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("reconciler blew up")
	})

	req := httptest.NewRequest(http.MethodPost, deployPath, nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d after panic recovery, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 18080 // avoid clashing with a locally running server
	cfg.ShutdownTimeout = 100 * time.Millisecond
	cfg.Handlers = deployRoutes("k")

	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("shutdown timed out")
	}
}

func TestDefaultRootHandlerListsDeployRoute(t *testing.T) {
	s := New(
		WithName("kubedeployd"),
		WithVersion("test"),
		WithHandler(deployRoutes("k")),
	)

	handler := s.config.Handlers["/"]
	if handler == nil {
		t.Fatal("expected default root handler to be created")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode root response: %v", err)
	}
	if resp.Name != "kubedeployd" {
		t.Errorf("expected name kubedeployd, got %s", resp.Name)
	}

	found := false
	for _, route := range resp.Routes {
		if route == deployPath {
			found = true
		}
	}
	if !found {
		t.Errorf("expected routes to include %s, got %v", deployPath, resp.Routes)
	}
}

func TestDefaultRootHandlerMethodNotAllowed(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()

	s.config.Handlers["/"](w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	customCalled := false
	routes := map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			customCalled = true
			w.WriteHeader(http.StatusOK)
		},
	}

	s := New(WithHandler(routes))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.config.Handlers["/"](w, req)

	if !customCalled {
		t.Error("expected custom root handler to be called, not default")
	}
}

func TestOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := New(
		WithConfig(cfg),
		WithName("kubedeployd"),
		WithVersion("1.2.3"),
		WithHandler(deployRoutes("k")),
	)

	if s.config.Name != "kubedeployd" {
		t.Errorf("expected name kubedeployd, got %s", s.config.Name)
	}
	if s.config.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", s.config.Version)
	}
	if s.config.Port != 9090 {
		t.Errorf("expected port 9090, got %d", s.config.Port)
	}
	if s.config.RateLimit != 500 {
		t.Errorf("expected rate limit 500, got %v", s.config.RateLimit)
	}
	if _, ok := s.config.Handlers[deployPath]; !ok {
		t.Errorf("expected %s handler to be registered", deployPath)
	}
	// Root handler is added alongside the registered routes
	if _, ok := s.config.Handlers["/"]; !ok {
		t.Error("expected default root handler to be created")
	}
}

func TestDefaultServerName(t *testing.T) {
	s := New()
	if s.config.Name != "server" {
		t.Errorf("expected default name 'server', got %s", s.config.Name)
	}
}
