package domain

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
)

// GenesisReward is the sentinel reward passed to a transition tool when the
// block under execution is the genesis block. Tools interpret it as "do not
// apply a block reward". It has no other meaning and must not be generalized
// to nonzero block numbers.
const GenesisReward = -1

// Env is the block environment record handed to the transition tool. Values
// are typically numeric strings ("0x1", "1000") and are passed through to the
// tool untouched; the only field the invoker itself interprets is
// "currentNumber".
type Env map[string]any

// BlockNumber parses the environment's "currentNumber" field, accepting
// decimal or 0x-prefixed hexadecimal encodings.
func (e Env) BlockNumber() (uint64, error) {
	raw, ok := e["currentNumber"]
	if !ok {
		return 0, fmt.Errorf("environment is missing currentNumber")
	}
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("currentNumber must be a string, got %T", raw)
	}
	// ParseBig256 reads the empty string as zero; an absent value must not
	// masquerade as genesis.
	if s == "" {
		return 0, fmt.Errorf("currentNumber must not be empty")
	}
	n, ok := math.ParseBig256(s)
	if !ok {
		return 0, fmt.Errorf("cannot parse currentNumber %q", s)
	}
	return n.Uint64(), nil
}

// EffectiveReward applies the genesis special case: a transition at block
// zero always receives GenesisReward regardless of the requested reward.
func EffectiveReward(requested int64, env Env) (int64, error) {
	number, err := env.BlockNumber()
	if err != nil {
		return 0, err
	}
	if number == 0 {
		return GenesisReward, nil
	}
	return requested, nil
}

// Request is one immutable state-transition request. Alloc and Txs are
// opaque JSON documents produced by the caller; the invoker never inspects
// them, it only moves them across the process boundary.
type Request struct {
	Alloc json.RawMessage `json:"alloc"`
	Txs   json.RawMessage `json:"txs"`
	Env   Env             `json:"env"`

	Fork    string `json:"fork"`
	ChainID int64  `json:"chainId"`
	Reward  int64  `json:"reward"`
	EIPs    []int  `json:"eips,omitempty"`

	// Trace requests per-transaction execution traces alongside the result.
	Trace bool `json:"trace,omitempty"`

	// DebugDir, when non-empty, receives a verbatim dump of every input,
	// output and command line of the invocation, plus a reproduction script.
	DebugDir string `json:"-"`
}

// Validate checks the request invariants the invoker relies on.
func (r *Request) Validate() error {
	if r.Fork == "" {
		return fmt.Errorf("fork name must not be empty")
	}
	if r.Env == nil {
		return fmt.Errorf("environment must not be nil")
	}
	if _, ok := r.Env["currentNumber"]; !ok {
		return fmt.Errorf("environment is missing currentNumber")
	}
	return nil
}

// EffectiveChainID returns the chain id to pass to the tool, defaulting to 1.
func (r *Request) EffectiveChainID() int64 {
	if r.ChainID == 0 {
		return 1
	}
	return r.ChainID
}
