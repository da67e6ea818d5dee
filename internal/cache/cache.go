// Package cache provides result caches for transition invocations. Fixture
// generation reruns identical requests constantly; caching the validated
// (allocation, result) pair skips the child process entirely.
//
// Traced or debug-dumped invocations bypass the cache — their side effects
// are the point of the run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/evmtools/t8nkit/pkg/domain"
)

// Key derives a stable digest for a request against one backend. The digest
// covers everything that influences the tool's output.
func Key(backendID string, req domain.Request) (string, error) {
	payload := struct {
		Backend string          `json:"backend"`
		Alloc   json.RawMessage `json:"alloc"`
		Txs     json.RawMessage `json:"txs"`
		Env     domain.Env      `json:"env"`
		Fork    string          `json:"fork"`
		ChainID int64           `json:"chainId"`
		Reward  int64           `json:"reward"`
		EIPs    []int           `json:"eips"`
	}{
		Backend: backendID,
		Alloc:   req.Alloc,
		Txs:     req.Txs,
		Env:     req.Env,
		Fork:    req.Fork,
		ChainID: req.EffectiveChainID(),
		Reward:  req.Reward,
		EIPs:    req.EIPs,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
