package applier

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/NVIDIA/kubedeploy/pkg/errors"
	"github.com/NVIDIA/kubedeploy/pkg/manifest"
)

type fakeCommander struct {
	stdout string
	stderr string
	err    error

	calls    int
	lastArgs []string
	// path of the manifest file as seen during the run, plus whether it
	// existed at that moment
	seenPath    string
	pathExisted bool
}

func (f *fakeCommander) Run(_ context.Context, command string, args ...string) (string, string, error) {
	f.calls++
	f.lastArgs = append([]string{command}, args...)
	if len(args) > 0 {
		f.seenPath = args[len(args)-1]
		_, statErr := os.Stat(f.seenPath)
		f.pathExisted = statErr == nil
	}
	return f.stdout, f.stderr, f.err
}

func TestApplySuccess(t *testing.T) {
	fc := &fakeCommander{stdout: "namespace/nginx created"}
	a := New(fc)

	out, err := a.Apply(context.Background(), manifest.Namespace("nginx"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "namespace/nginx created" {
		t.Errorf("expected kubectl output passed through, got %q", out)
	}
	if fc.calls != 1 {
		t.Errorf("expected 1 command call, got %d", fc.calls)
	}
	if len(fc.lastArgs) != 4 || fc.lastArgs[0] != "kubectl" ||
		fc.lastArgs[1] != "apply" || fc.lastArgs[2] != "-f" {
		t.Errorf("unexpected command: %v", fc.lastArgs)
	}
}

func TestApplyTempFileLifecycle(t *testing.T) {
	fc := &fakeCommander{stdout: "ok"}
	a := New(fc)

	if _, err := a.Apply(context.Background(), manifest.Namespace("nginx")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fc.pathExisted {
		t.Error("manifest file did not exist while the command ran")
	}
	if !strings.HasSuffix(fc.seenPath, ".yaml") {
		t.Errorf("expected a .yaml manifest path, got %q", fc.seenPath)
	}
	if _, err := os.Stat(fc.seenPath); !os.IsNotExist(err) {
		t.Errorf("manifest file %q not removed after apply", fc.seenPath)
	}
}

func TestApplyTempFileRemovedOnFailure(t *testing.T) {
	fc := &fakeCommander{err: errors.New(errors.ErrCodeCommandFailed, "exit 1")}
	a := New(fc)

	if _, err := a.Apply(context.Background(), manifest.Namespace("nginx")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(fc.seenPath); !os.IsNotExist(err) {
		t.Errorf("manifest file %q not removed after failed apply", fc.seenPath)
	}
}

func TestApplyCommandError(t *testing.T) {
	fc := &fakeCommander{
		stderr: "The connection to the server was refused",
		err:    errors.New(errors.ErrCodeCommandFailed, "exit 1"),
	}
	a := New(fc)

	_, err := a.Apply(context.Background(), manifest.Service("nginx"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.HasCode(err, errors.ErrCodeApplyFailed) {
		t.Errorf("expected APPLY_FAILED code, got %v", err)
	}
}

func TestApplyOutputClassification(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		stderr  string
		wantErr bool
	}{
		{"clean apply", "deployment.apps/nginx-deployment created", "", false},
		{"unchanged apply", "service/nginx-service unchanged", "", false},
		{"error in stderr", "", "Error from server (Forbidden)", true},
		{"error in stdout lowercased", "error validating data", "", true},
		{"mixed-case error in stdout", "Error: unknown flag", "", true},
		{"warning only", "deployment.apps/nginx-deployment configured", "Warning: resource is managed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCommander{stdout: tt.stdout, stderr: tt.stderr}
			a := New(fc)
			_, err := a.Apply(context.Background(), manifest.Namespace("nginx"))
			if tt.wantErr && err == nil {
				t.Error("expected classification error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.HasCode(err, errors.ErrCodeApplyFailed) {
				t.Errorf("expected APPLY_FAILED code, got %v", err)
			}
		})
	}
}
