// Package dump writes debug artifact sets: a verbatim, independently
// replayable snapshot of one invocation's inputs, outputs and command line.
//
// The dump directory is cleared before writing so it always reflects exactly
// one invocation, and the reproduction script's paths are rewritten to point
// at the dumped copies, which outlive the ephemeral workspace.
package dump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is one artifact: content plus the mode it is written with.
type File struct {
	Data []byte
	Mode fs.FileMode
}

// Text wraps a plain string artifact.
func Text(s string) File {
	return File{Data: []byte(s), Mode: 0o644}
}

// Script wraps an executable artifact.
func Script(s string) File {
	return File{Data: []byte(s), Mode: 0o755}
}

// JSON marshals v with indentation. Marshal failures become an inline error
// artifact rather than aborting the dump: the dump must never fail the
// invocation it documents.
func JSON(v any) File {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("failed to marshal artifact: %v", err))
	}
	return File{Data: data, Mode: 0o644}
}

// RawJSON re-indents an already-encoded JSON document. Documents that fail
// to re-indent are dumped verbatim — the dump never alters the data it is
// given beyond formatting.
func RawJSON(raw []byte) File {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return File{Data: raw, Mode: 0o644}
	}
	return File{Data: buf.Bytes(), Mode: 0o644}
}

// Clear removes any previous contents of dir and recreates it, so the dump
// reflects a single run and never a mix.
func Clear(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear dump dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dump dir: %w", err)
	}
	return nil
}

// Write places each artifact under dir, creating intermediate directories for
// relative paths like "input/alloc.json".
func Write(dir string, files map[string]File) error {
	for rel, file := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create dump subdir for %s: %w", rel, err)
		}
		mode := file.Mode
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(path, file.Data, mode); err != nil {
			return fmt.Errorf("failed to write dump file %s: %w", rel, err)
		}
	}
	return nil
}

// CopyTree mirrors the whole workspace tree into dst. dst is created if
// needed; existing files are overwritten.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// scriptOutDir is the directory the reproduction script redirects tool
// outputs into, relative to the dump directory.
const scriptOutDir = "t8n.sh.out"

// StreamScript renders the reproduction script for a stream-transport run.
// call is the full command line with any ephemeral trace directory already
// substituted by the dump's own output directory.
func StreamScript(dumpDir, call string) string {
	var b strings.Builder
	fmt.Fprintln(&b, "#!/bin/bash")
	fmt.Fprintf(&b, "rm -rf %s/%s\n", dumpDir, scriptOutDir)
	fmt.Fprintf(&b, "mkdir %s/%s\n", dumpDir, scriptOutDir)
	fmt.Fprintf(&b, "%s < %s/stdin.txt\n", call, dumpDir)
	return b.String()
}

// FilesystemScript renders the reproduction script for a filesystem-transport
// run. call must already point its input paths at the dumped input/ copies
// and its base directory at the script output directory.
func FilesystemScript(dumpDir, call string) string {
	var b strings.Builder
	fmt.Fprintln(&b, "#!/bin/bash")
	fmt.Fprintf(&b, "rm -rf %s/%s\n", dumpDir, scriptOutDir)
	fmt.Fprintf(&b, "mkdir -p %s/%s/output\n", dumpDir, scriptOutDir)
	fmt.Fprintf(&b, "%s\n", call)
	return b.String()
}

// OutBase returns the script-output base directory for a dump, used when
// substituting the ephemeral workspace path in a recorded command line.
func OutBase(dumpDir string) string {
	return filepath.Join(dumpDir, scriptOutDir)
}
