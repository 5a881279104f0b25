package npm

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	sderrors "github.com/matzehuels/sillydeps/pkg/errors"
)

// DefaultTimeout bounds a single `npm ls` invocation.
const DefaultTimeout = 60 * time.Second

// Options configures a Lister.
type Options struct {
	// Binary is the npm executable. Defaults to "npm" looked up in PATH.
	Binary string
	// Timeout bounds each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Args replaces the default arguments (ls --json --all --silent).
	Args []string
}

// Lister runs `npm ls` to obtain resolved dependency trees.
type Lister struct {
	binary  string
	timeout time.Duration
	args    []string
}

// NewLister creates a Lister with defaults applied.
func NewLister(opts Options) *Lister {
	if opts.Binary == "" {
		opts.Binary = "npm"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if len(opts.Args) == 0 {
		opts.Args = []string{"ls", "--json", "--all", "--silent"}
	}
	return &Lister{binary: opts.Binary, timeout: opts.Timeout, args: opts.Args}
}

// Name identifies the tree source in logs.
func (l *Lister) Name() string {
	return l.binary + " " + strings.Join(l.args, " ")
}

// List returns the raw `npm ls` JSON for the project in dir. Every failure
// carries the TREE_UNAVAILABLE code.
func (l *Lister) List(ctx context.Context, dir string) ([]byte, error) {
	bin, err := exec.LookPath(l.binary)
	if err != nil {
		return nil, sderrors.Wrap(sderrors.ErrCodeTreeUnavailable, err, "%s not found in PATH", l.binary)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, l.args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, sderrors.Wrap(sderrors.ErrCodeTreeUnavailable, ctxErr, "%s timed out after %s", l.Name(), l.timeout)
		}
		return nil, ctxErr
	}
	if out := bytes.TrimSpace(stdout.Bytes()); len(out) > 0 {
		return out, nil
	}
	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = runErr.Error()
		}
		return nil, sderrors.Wrap(sderrors.ErrCodeTreeUnavailable, runErr, "%s failed: %s", l.Name(), firstLine(msg))
	}
	return nil, sderrors.New(sderrors.ErrCodeTreeUnavailable, "%s produced no output", l.Name())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
