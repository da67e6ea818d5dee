package t8nkit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/evmtools/t8nkit"
	"github.com/evmtools/t8nkit/pkg/backend"
	"github.com/evmtools/t8nkit/pkg/domain"
)

// ExampleTool_Evaluate shows a minimal invocation against the default
// backend (go-ethereum's evm binary, filesystem transport).
func ExampleTool_Evaluate() {
	tool, err := t8nkit.New(backend.Default())
	if err != nil {
		log.Fatal(err)
	}

	tr, err := tool.Evaluate(context.Background(), domain.Request{
		Alloc: []byte(`{"0x00000000000000000000000000000000deadbeef":{"balance":"0x100","nonce":"0x0"}}`),
		Txs:   []byte(`[]`),
		Env: domain.Env{
			"currentNumber":     "1",
			"currentTimestamp":  "1000",
			"currentGasLimit":   "100000000",
			"currentDifficulty": "0x20000",
		},
		Fork: "Berlin",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(tr.Result))
}
