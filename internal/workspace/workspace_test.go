package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evmtools/t8nkit/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	parent := t.TempDir()

	ws, err := workspace.New(parent)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(ws.Root(), "input"))
	assert.DirExists(t, filepath.Join(ws.Root(), "output"))

	require.NoError(t, ws.WriteInput("alloc.json", []byte(`{}`)))
	assert.FileExists(t, ws.InputPath("alloc.json"))

	require.NoError(t, os.WriteFile(ws.OutputPath("result.json"), []byte(`{"receipts":[]}`), 0o644))
	data, err := ws.ReadOutput("result.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"receipts":[]}`, string(data))

	require.NoError(t, ws.Close())
	assert.NoDirExists(t, ws.Root())
	require.NoError(t, ws.Close(), "Close is idempotent")
}

func TestWorkspaceNamesDoNotCollide(t *testing.T) {
	parent := t.TempDir()

	seen := map[string]bool{}
	for i := 0; i < 16; i++ {
		ws, err := workspace.New(parent)
		require.NoError(t, err)
		require.False(t, seen[ws.Root()], "workspace name reused: %s", ws.Root())
		seen[ws.Root()] = true
		defer ws.Close()
	}
}

func TestWorkspaceReadMissingOutput(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	_, err = ws.ReadOutput("alloc.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
