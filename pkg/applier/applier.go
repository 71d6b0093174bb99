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

package applier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/kubedeploy/pkg/errors"
	"github.com/NVIDIA/kubedeploy/pkg/manifest"
)

// Commander runs an external command and returns its trimmed stdout and stderr.
type Commander interface {
	Run(ctx context.Context, command string, args ...string) (string, string, error)
}

// Applier writes manifests to disk and applies them to the cluster
// with kubectl. Applies are declarative and safe to repeat.
type Applier struct {
	commander Commander
}

// New creates an Applier that shells out through the given commander.
func New(commander Commander) *Applier {
	return &Applier{commander: commander}
}

// Apply serializes the descriptor to a temp file and runs kubectl apply
// against it. The temp file is removed on every path. The combined command
// output is returned so callers can surface it in responses.
func (a *Applier) Apply(ctx context.Context, d *manifest.Descriptor) (string, error) {
	data, err := d.Serialize()
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "manifest-*.yaml")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeApplyFailed,
			"failed to create manifest file", err)
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil {
			slog.Warn("failed to remove manifest file", "path", path, "error", rmErr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", errors.Wrap(errors.ErrCodeApplyFailed,
			"failed to write manifest file", err)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeApplyFailed,
			"failed to close manifest file", err)
	}

	stdout, stderr, err := a.commander.Run(ctx, "kubectl", "apply", "-f", path)
	if err != nil {
		return stdout, errors.WrapWithContext(errors.ErrCodeApplyFailed,
			fmt.Sprintf("failed to apply %s/%s", d.Kind, d.Name), err,
			map[string]any{"stderr": stderr})
	}

	// kubectl can exit zero while still reporting a problem. Keep the
	// legacy substring check on top of the exit code.
	if strings.Contains(stderr, "Error") || strings.Contains(strings.ToLower(stdout), "error") {
		return stdout, errors.New(errors.ErrCodeApplyFailed,
			fmt.Sprintf("apply of %s/%s reported an error: %s", d.Kind, d.Name,
				firstNonEmpty(stderr, stdout)))
	}

	slog.Debug("manifest applied",
		"kind", d.Kind,
		"name", d.Name,
		"namespace", d.Namespace,
		"output", stdout)

	return stdout, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
