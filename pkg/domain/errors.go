package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBinaryNotFound is returned when a transition tool binary cannot be
// located, either at an explicit path or on $PATH.
var ErrBinaryNotFound = errors.New("transition tool binary not found")

// ErrUnknownBackend is returned when a backend identifier does not match any
// registered transition tool implementation.
var ErrUnknownBackend = errors.New("unknown transition tool backend")

// ErrTraceUnsupported is returned when tracing is requested from a backend
// that cannot produce execution traces.
var ErrTraceUnsupported = errors.New("backend does not support tracing")

// ErrNotCached is returned by a result cache when no entry exists for a key.
var ErrNotCached = errors.New("transition not cached")

// ToolError reports a transition tool that exited with a nonzero code.
// Stderr carries the tool's diagnostic output verbatim.
type ToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("transition tool exited with code %d: %s", e.ExitCode, e.Stderr)
}

// MalformedOutputError reports a tool that exited successfully but produced
// an incomplete output envelope. Some tools return zero with partial output,
// so this is checked explicitly rather than trusted to the exit code.
type MalformedOutputError struct {
	Missing []string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed transition tool output: missing %s", strings.Join(e.Missing, ", "))
}
