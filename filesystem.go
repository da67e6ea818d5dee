package t8nkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/evmtools/t8nkit/internal/args"
	"github.com/evmtools/t8nkit/internal/dump"
	"github.com/evmtools/t8nkit/internal/process"
	"github.com/evmtools/t8nkit/internal/trace"
	"github.com/evmtools/t8nkit/internal/workspace"
	"github.com/evmtools/t8nkit/pkg/domain"
)

func (t *Tool) evaluateFilesystem(ctx context.Context, req domain.Request, forkName string, chainID, reward int64) (*domain.Transition, error) {
	ws, err := workspace.New(t.workdir)
	if err != nil {
		return nil, err
	}
	// The workspace goes away on every exit path; the dump below captures
	// its contents first when one was requested.
	defer ws.Close()

	envJSON, err := json.Marshal(req.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode environment: %w", err)
	}
	inputs := map[string][]byte{
		"alloc.json": req.Alloc,
		"env.json":   envJSON,
		"txs.json":   req.Txs,
	}
	for name, data := range inputs {
		if err := ws.WriteInput(name, data); err != nil {
			return nil, err
		}
	}

	paths := args.FilesystemPaths{
		BaseDir:     ws.Root(),
		InputAlloc:  ws.InputPath("alloc.json"),
		InputEnv:    ws.InputPath("env.json"),
		InputTxs:    ws.InputPath("txs.json"),
		OutputAlloc: filepath.Join("output", "alloc.json"),
		OutputTxs:   filepath.Join("output", "txs.rlp"),
		Result:      filepath.Join("output", "result.json"),
	}
	argv := args.Filesystem(t.binary, forkName, chainID, reward, paths, req.Trace)

	res, err := process.Run(ctx, argv, nil)
	if err != nil {
		return nil, err
	}

	if req.DebugDir != "" {
		if err := dumpFilesystem(req.DebugDir, ws, argv, res); err != nil {
			return nil, err
		}
	}

	if res.ExitCode != 0 {
		return nil, &domain.ToolError{ExitCode: res.ExitCode, Stderr: string(res.Stderr)}
	}

	envelope, err := readOutputs(ws)
	if err != nil {
		return nil, err
	}

	tr := &domain.Transition{Alloc: envelope.Alloc, Result: envelope.Result}
	if req.Trace {
		receipts, err := envelope.Receipts()
		if err != nil {
			return nil, err
		}
		set, err := trace.Collect(receipts, ws.Root(), req.DebugDir, t.logger)
		if err != nil {
			return nil, err
		}
		tr.Traces = set
	}
	return tr, nil
}

// readOutputs gathers the result files back from the workspace. alloc and
// result are structured documents; txs.rlp is opaque payload and stays
// unparsed.
func readOutputs(ws *workspace.Workspace) (*domain.Envelope, error) {
	read := func(name string) ([]byte, error) {
		data, err := ws.ReadOutput(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return data, err
	}

	alloc, err := read("alloc.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read output alloc: %w", err)
	}
	result, err := read("result.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read output result: %w", err)
	}
	body, err := read("txs.rlp")
	if err != nil {
		return nil, fmt.Errorf("failed to read output body: %w", err)
	}

	return domain.CompleteEnvelope(alloc, result, body)
}

func dumpFilesystem(debugDir string, ws *workspace.Workspace, argv []string, res *process.Result) error {
	if err := dump.Clear(debugDir); err != nil {
		return err
	}
	if err := dump.CopyTree(ws.Root(), debugDir); err != nil {
		return fmt.Errorf("failed to mirror workspace into dump: %w", err)
	}

	// Rewrite the recorded command line so the script reads the dumped
	// inputs and writes under the dump's own output base. Inputs first,
	// remaining workspace references (the basedir) second.
	call := strings.Join(argv, " ")
	call = strings.ReplaceAll(call, filepath.Join(ws.Root(), "input"), filepath.Join(debugDir, "input"))
	call = strings.ReplaceAll(call, ws.Root(), dump.OutBase(debugDir))

	return dump.Write(debugDir, map[string]dump.File{
		"args.py":        dump.JSON(argv),
		"returncode.txt": dump.Text(strconv.Itoa(res.ExitCode)),
		"stdout.txt":     dump.File{Data: res.Stdout, Mode: 0o644},
		"stderr.txt":     dump.File{Data: res.Stderr, Mode: 0o644},
		"t8n.sh":         dump.Script(dump.FilesystemScript(debugDir, call)),
	})
}
