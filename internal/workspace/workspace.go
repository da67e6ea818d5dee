// Package workspace manages the ephemeral directory one filesystem-transport
// invocation stages its files in. Each workspace is uniquely named, owned by
// exactly one invocation, and removed on every exit path.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is one invocation's staging directory, with input/ and output/
// subdirectories already created.
type Workspace struct {
	root string
}

// New allocates a fresh workspace under parent (the system temp directory
// when parent is empty). os.MkdirTemp guarantees collision-free names under
// concurrent invocations.
func New(parent string) (*Workspace, error) {
	root, err := os.MkdirTemp(parent, "t8n-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	for _, sub := range []string{"input", "output"} {
		if err := os.Mkdir(filepath.Join(root, sub), 0o755); err != nil {
			os.RemoveAll(root)
			return nil, fmt.Errorf("failed to create workspace %s dir: %w", sub, err)
		}
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string { return w.root }

// InputPath returns the absolute path of an input file.
func (w *Workspace) InputPath(name string) string {
	return filepath.Join(w.root, "input", name)
}

// OutputPath returns the absolute path of an output file.
func (w *Workspace) OutputPath(name string) string {
	return filepath.Join(w.root, "output", name)
}

// WriteInput stages one input document.
func (w *Workspace) WriteInput(name string, data []byte) error {
	if err := os.WriteFile(w.InputPath(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write input %s: %w", name, err)
	}
	return nil
}

// ReadOutput reads one output file back. Callers translate a missing file
// into their own error taxonomy.
func (w *Workspace) ReadOutput(name string) ([]byte, error) {
	return os.ReadFile(w.OutputPath(name))
}

// Close removes the workspace and everything under it. Safe to call more
// than once.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}
