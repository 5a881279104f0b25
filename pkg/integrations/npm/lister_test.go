package npm

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	sderrors "github.com/matzehuels/sillydeps/pkg/errors"
)

// fakeNPM writes an executable shell script standing in for npm.
func fakeNPM(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-npm")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListSuccess(t *testing.T) {
	bin := fakeNPM(t, `echo '{"dependencies": {"chalk": {"version": "4.0.0"}}}'`)
	l := NewLister(Options{Binary: bin})

	out, err := l.List(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if string(out) != `{"dependencies": {"chalk": {"version": "4.0.0"}}}` {
		t.Errorf("List output = %q", out)
	}
}

func TestListNonZeroExitWithOutput(t *testing.T) {
	bin := fakeNPM(t, `echo '{"problems": ["missing: x"], "dependencies": {}}'; exit 1`)
	l := NewLister(Options{Binary: bin})

	out, err := l.List(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("output on stdout should be used despite exit status: %v", err)
	}
	if len(out) == 0 {
		t.Error("expected output")
	}
}

func TestListFailures(t *testing.T) {
	tests := []struct {
		name   string
		opts   func(t *testing.T) Options
		expect string
	}{
		{
			name: "missing binary",
			opts: func(t *testing.T) Options {
				return Options{Binary: filepath.Join(t.TempDir(), "no-such-npm")}
			},
		},
		{
			name: "exit without output",
			opts: func(t *testing.T) Options {
				return Options{Binary: fakeNPM(t, `echo "npm ERR! broken" >&2; exit 1`)}
			},
		},
		{
			name: "empty output",
			opts: func(t *testing.T) Options {
				return Options{Binary: fakeNPM(t, `exit 0`)}
			},
		},
		{
			name: "timeout",
			opts: func(t *testing.T) Options {
				return Options{Binary: fakeNPM(t, `sleep 5`), Timeout: 50 * time.Millisecond}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLister(tt.opts(t))
			_, err := l.List(context.Background(), t.TempDir())
			if !sderrors.Is(err, sderrors.ErrCodeTreeUnavailable) {
				t.Errorf("List error = %v, want TREE_UNAVAILABLE", err)
			}
		})
	}
}

func TestListCanceled(t *testing.T) {
	bin := fakeNPM(t, `sleep 5`)
	l := NewLister(Options{Binary: bin})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.List(ctx, t.TempDir()); err != context.Canceled {
		t.Errorf("List error = %v, want context.Canceled", err)
	}
}

func TestNewListerDefaults(t *testing.T) {
	l := NewLister(Options{})
	if l.binary != "npm" || l.timeout != DefaultTimeout {
		t.Errorf("defaults = %q, %v", l.binary, l.timeout)
	}
	if got := l.Name(); got != "npm ls --json --all --silent" {
		t.Errorf("Name() = %q", got)
	}
}
