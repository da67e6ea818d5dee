// Package args builds transition tool command lines. Both builders are pure:
// identical inputs always yield an identical, order-stable argument vector,
// so they can be tested without spawning anything.
package args

import (
	"fmt"
	"strconv"
)

// Stream builds the argument vector for a tool that exchanges documents over
// stdin/stdout. traceDir must be non-empty when trace is set: tools need a
// base directory for trace files even when every other output goes to stdout.
func Stream(binary, subcommand, forkName string, chainID, reward int64, trace bool, traceDir string) []string {
	argv := []string{binary}
	if subcommand != "" {
		argv = append(argv, subcommand)
	}
	argv = append(argv,
		"--input.alloc=stdin",
		"--input.txs=stdin",
		"--input.env=stdin",
		"--output.result=stdout",
		"--output.alloc=stdout",
		"--output.body=stdout",
		fmt.Sprintf("--state.fork=%s", forkName),
		fmt.Sprintf("--state.chainid=%d", chainID),
		fmt.Sprintf("--state.reward=%d", reward),
	)
	if trace {
		argv = append(argv, "--trace", fmt.Sprintf("--output.basedir=%s", traceDir))
	}
	return argv
}

// FilesystemPaths carries the locations the filesystem builder wires into the
// vector. Input paths and the base directory are absolute; output paths are
// relative to the base directory, the tool resolves them itself.
type FilesystemPaths struct {
	BaseDir     string
	InputAlloc  string
	InputEnv    string
	InputTxs    string
	OutputAlloc string
	OutputTxs   string
	Result      string
}

// Filesystem builds the argument vector for a tool that reads and writes
// files. Trace files land under the base directory already passed, so the
// trace flag carries no extra path.
func Filesystem(binary, forkName string, chainID, reward int64, paths FilesystemPaths, trace bool) []string {
	argv := []string{
		binary,
		"--state.fork", forkName,
		"--input.alloc", paths.InputAlloc,
		"--input.env", paths.InputEnv,
		"--input.txs", paths.InputTxs,
		"--output.basedir", paths.BaseDir,
		"--output.result", paths.Result,
		"--output.alloc", paths.OutputAlloc,
		"--output.body", paths.OutputTxs,
		"--state.reward", strconv.FormatInt(reward, 10),
		"--state.chainid", strconv.FormatInt(chainID, 10),
	}
	if trace {
		argv = append(argv, "--trace")
	}
	return argv
}
