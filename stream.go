package t8nkit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/evmtools/t8nkit/internal/args"
	"github.com/evmtools/t8nkit/internal/dump"
	"github.com/evmtools/t8nkit/internal/process"
	"github.com/evmtools/t8nkit/internal/trace"
	"github.com/evmtools/t8nkit/pkg/domain"
)

// streamPayload is the single document piped to a stream-transport tool.
type streamPayload struct {
	Alloc json.RawMessage `json:"alloc"`
	Txs   json.RawMessage `json:"txs"`
	Env   domain.Env      `json:"env"`
}

func (t *Tool) evaluateStream(ctx context.Context, req domain.Request, forkName string, chainID, reward int64) (*domain.Transition, error) {
	// Tools need a base directory for trace files even though every other
	// output goes to stdout.
	traceDir := ""
	if req.Trace {
		dir, err := os.MkdirTemp(t.workdir, "t8n-traces-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create trace dir: %w", err)
		}
		defer os.RemoveAll(dir)
		traceDir = dir
	}

	argv := args.Stream(t.binary, t.backend.Subcommand, forkName, chainID, reward, req.Trace, traceDir)

	payload, err := json.Marshal(streamPayload{Alloc: req.Alloc, Txs: req.Txs, Env: req.Env})
	if err != nil {
		return nil, fmt.Errorf("failed to encode stdin payload: %w", err)
	}

	res, err := process.Run(ctx, argv, payload)
	if err != nil {
		return nil, err
	}

	// The dump happens before the exit-code check so failed runs stay
	// reproducible.
	if req.DebugDir != "" {
		if err := dumpStream(req, argv, payload, res, traceDir); err != nil {
			return nil, err
		}
	}

	if res.ExitCode != 0 {
		return nil, &domain.ToolError{ExitCode: res.ExitCode, Stderr: string(res.Stderr)}
	}

	envelope, err := domain.ParseEnvelope(res.Stdout)
	if err != nil {
		return nil, err
	}

	if req.DebugDir != "" {
		if err := dumpStreamOutputs(req.DebugDir, envelope); err != nil {
			return nil, err
		}
	}

	tr := &domain.Transition{Alloc: envelope.Alloc, Result: envelope.Result}
	if req.Trace {
		receipts, err := envelope.Receipts()
		if err != nil {
			return nil, err
		}
		set, err := trace.Collect(receipts, traceDir, req.DebugDir, t.logger)
		if err != nil {
			return nil, err
		}
		tr.Traces = set
	}
	return tr, nil
}

func dumpStream(req domain.Request, argv []string, payload []byte, res *process.Result, traceDir string) error {
	if err := dump.Clear(req.DebugDir); err != nil {
		return err
	}

	call := strings.Join(argv, " ")
	if traceDir != "" {
		// The trace dir dies with the invocation; the script writes into the
		// dump's own output directory instead.
		call = strings.ReplaceAll(call, traceDir, dump.OutBase(req.DebugDir))
	}

	return dump.Write(req.DebugDir, map[string]dump.File{
		"args.py":          dump.JSON(argv),
		"input/alloc.json": dump.RawJSON(req.Alloc),
		"input/env.json":   dump.JSON(req.Env),
		"input/txs.json":   dump.RawJSON(req.Txs),
		"returncode.txt":   dump.Text(strconv.Itoa(res.ExitCode)),
		"stdin.txt":        dump.File{Data: payload, Mode: 0o644},
		"stdout.txt":       dump.File{Data: res.Stdout, Mode: 0o644},
		"stderr.txt":       dump.File{Data: res.Stderr, Mode: 0o644},
		"t8n.sh":           dump.Script(dump.StreamScript(req.DebugDir, call)),
	})
}

func dumpStreamOutputs(dir string, envelope *domain.Envelope) error {
	// body is a JSON string holding the raw transaction encoding; dump the
	// encoding itself, not its JSON quoting.
	var body string
	bodyData := []byte(envelope.Body)
	if err := json.Unmarshal(envelope.Body, &body); err == nil {
		bodyData = []byte(body)
	}

	return dump.Write(dir, map[string]dump.File{
		"output/alloc.json":  dump.RawJSON(envelope.Alloc),
		"output/result.json": dump.RawJSON(envelope.Result),
		"output/txs.rlp":     dump.File{Data: bodyData, Mode: 0o644},
	})
}
