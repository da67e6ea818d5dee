package process_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/evmtools/t8nkit/internal/process"
	"github.com/evmtools/t8nkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRun_CapturesStdoutAndExitZero(t *testing.T) {
	bin := writeScript(t, `printf 'hello %s' "$1"`)

	res, err := process.Run(context.Background(), []string{bin, "world"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello world", string(res.Stdout))
	assert.Empty(t, res.Stderr)
}

func TestRun_NonzeroExitIsNotAnError(t *testing.T) {
	bin := writeScript(t, `echo "invalid chain id" >&2; exit 3`)

	res, err := process.Run(context.Background(), []string{bin}, nil)
	require.NoError(t, err, "exit code handling belongs to the caller")
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, string(res.Stderr), "invalid chain id")
}

func TestRun_StdinIsDelivered(t *testing.T) {
	bin := writeScript(t, `cat`)

	res, err := process.Run(context.Background(), []string{bin}, []byte(`{"alloc":{}}`))
	require.NoError(t, err)
	assert.Equal(t, `{"alloc":{}}`, string(res.Stdout))
}

func TestRun_MissingBinary(t *testing.T) {
	_, err := process.Run(context.Background(), []string{"/does/not/exist/t8n"}, nil)
	assert.ErrorIs(t, err, domain.ErrBinaryNotFound)
}

func TestRun_Canceled(t *testing.T) {
	bin := writeScript(t, `sleep 10`)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := process.Run(ctx, []string{bin}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second, "child must be reaped, not waited out")
}

func TestLookPath(t *testing.T) {
	path, err := process.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = process.LookPath("definitely-not-a-transition-tool")
	assert.ErrorIs(t, err, domain.ErrBinaryNotFound)
}
