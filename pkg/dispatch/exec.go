package dispatch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/computerscienceiscool/springboard/pkg/link"
)

// Environment variables exported to exec receivers
const (
	EnvAction = "SPRINGBOARD_ACTION"
	EnvQuery  = "SPRINGBOARD_QUERY"
	EnvFilter = "SPRINGBOARD_FILTER"
)

// ExecTransport starts the receiver's command and does not wait for it
type ExecTransport struct {
	lookPath func(string) (string, error)
	environ  func() []string
}

// NewExecTransport creates an exec transport that resolves commands on PATH
func NewExecTransport() *ExecTransport {
	return &ExecTransport{
		lookPath: exec.LookPath,
		environ:  os.Environ,
	}
}

// Available reports whether the receiver's executable can be found
func (t *ExecTransport) Available(m Manifest) bool {
	if len(m.Command) == 0 {
		return false
	}
	_, err := t.lookPath(m.Command[0])
	return err == nil
}

// Deliver starts the receiver command with the request placeholders expanded.
// The child is released immediately; its exit status is never collected.
func (t *ExecTransport) Deliver(ctx context.Context, m Manifest, req link.ForwardRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(m.Command) == 0 {
		return fmt.Errorf("%w: no command", ErrInvalidManifest)
	}

	path, err := t.lookPath(m.Command[0])
	if err != nil {
		return fmt.Errorf("cannot locate %s: %w", m.Command[0], err)
	}

	// exec.Command rather than CommandContext: the receiver must outlive us.
	cmd := exec.Command(path, ExpandArgs(m.Command[1:], req)...)
	cmd.Env = append(t.environ(),
		EnvAction+"="+req.Action,
		EnvQuery+"="+req.Query,
		EnvFilter+"="+req.Filter,
	)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cannot start %s: %w", path, err)
	}
	return cmd.Process.Release()
}

// ExpandArgs substitutes {action}, {query} and {filter} in args
func ExpandArgs(args []string, req link.ForwardRequest) []string {
	r := strings.NewReplacer(
		"{action}", req.Action,
		"{query}", req.Query,
		"{filter}", req.Filter,
	)

	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = r.Replace(arg)
	}
	return out
}
