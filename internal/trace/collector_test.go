package trace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evmtools/t8nkit/internal/logging"
	"github.com/evmtools/t8nkit/internal/trace"
	"github.com/evmtools/t8nkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_AssociatesByReceiptIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "trace-0-0xaaa.jsonl"),
		[]byte(`{"pc":0,"op":96}`), 0o644))

	receipts := []domain.Receipt{
		{TransactionHash: "0xaaa"},
		{TransactionHash: "0xbbb"},
	}

	set, err := trace.Collect(receipts, dir, "", logging.NewNop())
	require.NoError(t, err, "trace gaps must not fail the invocation")

	require.Len(t, set.Records, 1)
	assert.Equal(t, 0, set.Records[0].ReceiptIndex)
	assert.Equal(t, "0xaaa", set.Records[0].TxHash)
	assert.Contains(t, string(set.Records[0].Data), `"pc":0`)

	assert.Equal(t, []int{1}, set.Missing, "index 1 has no trace file")
}

func TestCollect_EmptyReceipts(t *testing.T) {
	set, err := trace.Collect(nil, t.TempDir(), "", logging.NewNop())
	require.NoError(t, err)
	assert.Empty(t, set.Records)
	assert.Empty(t, set.Missing)
}

func TestCollect_MirrorsIntoDump(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "trace-0-0xccc.jsonl"),
		[]byte(`{"pc":1}`), 0o644))

	dumpDir := t.TempDir()
	_, err := trace.Collect([]domain.Receipt{{TransactionHash: "0xccc"}}, dir, dumpDir, logging.NewNop())
	require.NoError(t, err)

	mirrored, err := os.ReadFile(filepath.Join(dumpDir, "traces", "trace-0-0xccc.jsonl"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"pc":1}`, string(mirrored))
}
