/*
Package t8nkit invokes external EVM state-transition tools ("t8n" binaries)
and turns their raw output into validated, structured result data.

Every supported implementation is driven through the same contract: the
caller hands over a pre-state allocation, a transaction list, a block
environment and a target fork, and receives the post-state allocation and
result record back, regardless of whether the tool wants its documents piped
over stdin/stdout or staged as files in an ephemeral directory.

# Usage

	tool, err := t8nkit.New(backend.Default())
	if err != nil {
		log.Fatal(err)
	}

	tr, err := tool.Evaluate(ctx, domain.Request{
		Alloc: allocJSON,
		Txs:   txsJSON,
		Env:   domain.Env{"currentNumber": "1", "currentGasLimit": "100000000"},
		Fork:  "Berlin",
	})

Invocations are synchronous and independently reentrant: concurrent calls
each get their own workspace or payload and share nothing. Optional features
layer on top of the mandatory result: per-transaction execution traces
(Request.Trace) and a replayable debug dump of the whole invocation
(Request.DebugDir).
*/
package t8nkit
