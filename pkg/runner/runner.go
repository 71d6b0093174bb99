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

package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/NVIDIA/kubedeploy/pkg/defaults"
	"github.com/NVIDIA/kubedeploy/pkg/errors"
)

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-attempt command timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithAttempts sets the total attempt count (including the first attempt).
func WithAttempts(attempts int) Option {
	return func(r *Runner) {
		r.attempts = attempts
	}
}

// WithRetryDelay sets the fixed pause between attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(r *Runner) {
		r.delay = delay
	}
}

// Runner executes external commands with a bounded per-attempt timeout and a
// fixed-count, fixed-delay retry policy. The policy is deliberately simple:
// no backoff, no jitter. Callers must not assume the underlying command is
// only invoked once; re-running it across attempts has to be safe.
type Runner struct {
	timeout  time.Duration
	attempts int
	delay    time.Duration
}

// New creates a Runner with the default policy
// (15s per attempt, 3 attempts, 5s between attempts).
func New(opts ...Option) *Runner {
	r := &Runner{
		timeout:  defaults.CommandTimeout,
		attempts: defaults.CommandRetryAttempts,
		delay:    defaults.CommandRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.timeout <= 0 {
		r.timeout = defaults.CommandTimeout
	}
	if r.attempts < 1 {
		r.attempts = 1
	}
	return r
}

// Run executes the command, capturing both output streams.
// The command name is resolved once before the attempt loop; a resolution
// failure is permanent and not retried. Each attempt is bounded by the
// configured timeout; on expiry the process is killed and the attempt fails
// with a TIMEOUT error. Retryable failures (timeouts, start failures,
// non-zero exits) are retried up to the configured attempt count with the
// fixed delay in between.
func (r *Runner) Run(ctx context.Context, command string, args ...string) (string, string, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s not found in PATH", command), err)
	}

	var stdout, stderr string
	for attempt := 1; attempt <= r.attempts; attempt++ {
		stdout, stderr, err = r.runOnce(ctx, path, args)
		if err == nil {
			return stdout, stderr, nil
		}

		if !IsRetryable(err) {
			slog.Error("command failed with non-retryable error",
				"command", command,
				"attempt", attempt,
				"error", err)
			return stdout, stderr, err
		}

		slog.Warn("command attempt failed",
			"command", command,
			"attempt", attempt,
			"attempts", r.attempts,
			"error", err)

		if attempt < r.attempts {
			select {
			case <-ctx.Done():
				return stdout, stderr, errors.Wrap(errors.ErrCodeCommandFailed,
					"canceled while waiting to retry", ctx.Err())
			case <-time.After(r.delay):
			}
		}
	}

	// Keep the last attempt's code so a timeout still reads as TIMEOUT
	// after the attempts are spent.
	return stdout, stderr, errors.WrapWithContext(errors.CodeOf(err),
		fmt.Sprintf("command failed after %d attempts", r.attempts), err,
		map[string]any{"command": command})
}

// runOnce executes a single bounded attempt.
func (r *Runner) runOnce(ctx context.Context, path string, args []string) (string, string, error) {
	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(actx, path, args...)
	// Without a wait delay, Run blocks past the deadline kill for as long
	// as any grandchild holds the inherited output pipes open.
	cmd.WaitDelay = time.Second

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	stdout := strings.TrimSpace(outBuf.String())
	stderr := strings.TrimSpace(errBuf.String())

	if err != nil {
		if stderrors.Is(actx.Err(), context.DeadlineExceeded) {
			return stdout, stderr, errors.Wrap(errors.ErrCodeTimeout,
				fmt.Sprintf("command timed out after %s", r.timeout), err)
		}
		return stdout, stderr, errors.Wrap(errors.ErrCodeCommandFailed,
			"command failed", err)
	}

	return stdout, stderr, nil
}

// IsRetryable classifies a command failure. Timeouts and run failures
// (including non-zero exits) are transient from the runner's perspective;
// input validation and path resolution failures are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.HasCode(err, errors.ErrCodeTimeout) {
		return true
	}
	if errors.HasCode(err, errors.ErrCodeCommandFailed) {
		return true
	}
	return false
}
