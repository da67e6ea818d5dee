// Package trace collects per-transaction execution traces written by a
// transition tool. Collection is best effort: a missing trace file is
// reported, never fatal.
package trace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evmtools/t8nkit/internal/dump"
	"github.com/evmtools/t8nkit/pkg/domain"
)

// Collect associates each receipt, by its position in the list, with the
// trace file the tool wrote under dir (trace-<index>-<txhash>.jsonl). When
// dumpDir is non-empty the raw trace files are also mirrored there under
// traces/, so traced runs stay reproducible after dir is removed.
func Collect(receipts []domain.Receipt, dir, dumpDir string, logger *slog.Logger) (*domain.TraceSet, error) {
	set := &domain.TraceSet{}

	for i, receipt := range receipts {
		matches, err := filepath.Glob(filepath.Join(dir, fmt.Sprintf("trace-%d-*.jsonl", i)))
		if err != nil {
			return nil, fmt.Errorf("failed to scan trace dir: %w", err)
		}
		if len(matches) == 0 {
			logger.Warn("no trace file for receipt", "index", i, "txHash", receipt.TransactionHash)
			set.Missing = append(set.Missing, i)
			continue
		}
		data, err := os.ReadFile(matches[0])
		if err != nil {
			logger.Warn("failed to read trace file", "index", i, "err", err)
			set.Missing = append(set.Missing, i)
			continue
		}
		set.Records = append(set.Records, domain.TraceRecord{
			ReceiptIndex: i,
			TxHash:       receipt.TransactionHash,
			File:         filepath.Base(matches[0]),
			Data:         data,
		})
	}

	if dumpDir != "" {
		if err := mirror(set, dumpDir); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func mirror(set *domain.TraceSet, dumpDir string) error {
	files := make(map[string]dump.File, len(set.Records))
	for _, rec := range set.Records {
		files[filepath.Join("traces", rec.File)] = dump.File{Data: rec.Data, Mode: 0o644}
	}
	if err := dump.Write(dumpDir, files); err != nil {
		return fmt.Errorf("failed to mirror traces into dump: %w", err)
	}
	return nil
}
