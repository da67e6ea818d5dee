// Package backend enumerates the supported transition tool implementations.
//
// Each implementation is a capability-tagged variant: its transport kind, the
// binary it ships as, an optional subcommand, and whether it can produce
// execution traces. Dispatch happens on this enumeration — there is no
// per-tool subtype hierarchy.
package backend

import (
	"fmt"

	"github.com/evmtools/t8nkit/pkg/domain"
)

// ID identifies one transition tool implementation.
type ID string

const (
	// Geth drives go-ethereum's evm binary over stdin/stdout.
	Geth ID = "geth"
	// GethFilesystem drives go-ethereum's evm binary through input/output
	// files. This is the default backend.
	GethFilesystem ID = "geth-fs"
	// Besu drives Hyperledger Besu's evmtool.
	Besu ID = "besu"
	// EvmOne drives evmone's standalone t8n binary, which only accepts
	// filesystem paths.
	EvmOne ID = "evmone"
	// Nimbus drives the Nimbus EL t8n binary.
	Nimbus ID = "nimbus"
	// ExecutionSpecs drives the reference implementation's spec-evm binary.
	ExecutionSpecs ID = "execution-specs"
)

// Backend describes one implementation's invocation contract.
type Backend struct {
	ID         ID
	Transport  domain.Transport
	Binary     string // default binary name, resolved on $PATH when no explicit path is given
	Subcommand string // optional subcommand inserted after the binary (stream transport only)
	Traces     bool   // whether the tool can emit per-transaction traces
}

var registry = []Backend{
	{ID: Geth, Transport: domain.TransportStream, Binary: "evm", Subcommand: "t8n", Traces: true},
	{ID: GethFilesystem, Transport: domain.TransportFilesystem, Binary: "evm", Traces: true},
	{ID: Besu, Transport: domain.TransportStream, Binary: "evmtool", Subcommand: "t8n", Traces: false},
	{ID: EvmOne, Transport: domain.TransportFilesystem, Binary: "evmone-t8n", Traces: true},
	{ID: Nimbus, Transport: domain.TransportStream, Binary: "t8n", Traces: false},
	{ID: ExecutionSpecs, Transport: domain.TransportStream, Binary: "ethereum-spec-evm", Traces: true},
}

// Default returns the backend used when the caller does not pick one.
func Default() Backend {
	b, _ := Lookup(string(GethFilesystem))
	return b
}

// Lookup resolves a backend by id. Unknown ids return ErrUnknownBackend.
func Lookup(id string) (Backend, error) {
	for _, b := range registry {
		if string(b.ID) == id {
			return b, nil
		}
	}
	return Backend{}, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, id)
}

// All returns the registered backends in a stable order.
func All() []Backend {
	out := make([]Backend, len(registry))
	copy(out, registry)
	return out
}
