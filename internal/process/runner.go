// Package process spawns transition tool binaries and captures their output.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/evmtools/t8nkit/pkg/domain"
)

// Result is the raw outcome of one child process run.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Run spawns argv synchronously, optionally feeding stdin, and captures both
// output streams in full. A nonzero exit code is not an error here — the
// caller owns the exit-code contract and may still want the dump of a failed
// run. A binary that cannot be spawned at all wraps domain.ErrBinaryNotFound.
//
// The command is bound to ctx: if the caller abandons the invocation the
// child is killed rather than orphaned.
func Run(ctx context.Context, argv []string, stdin []byte) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argument vector")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		if ctx.Err() != nil {
			// CommandContext kills the child on cancellation; report the
			// cancellation, not the synthetic exit status.
			return nil, fmt.Errorf("transition tool canceled: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBinaryNotFound, argv[0])
		}
		return nil, fmt.Errorf("failed to spawn %s: %w", argv[0], err)
	}

	return res, nil
}

// LookPath resolves a binary name against $PATH, mapping a miss onto the
// domain error.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrBinaryNotFound, name)
	}
	return path, nil
}
