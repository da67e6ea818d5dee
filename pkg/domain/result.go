package domain

import (
	"encoding/json"
	"fmt"
)

// envelopeKeys are the top-level fields every complete tool output carries.
var envelopeKeys = []string{"alloc", "result", "body"}

// Envelope is the complete output of one transition tool run: the post-state
// allocation, the result record, and the raw encoded transaction body.
type Envelope struct {
	Alloc  json.RawMessage `json:"alloc"`
	Result json.RawMessage `json:"result"`
	Body   json.RawMessage `json:"body"`
}

// ParseEnvelope decodes a raw output document and verifies that all required
// top-level keys are present. Extra keys are tolerated; a missing one is a
// *MalformedOutputError.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode tool output: %w", err)
	}
	var missing []string
	for _, key := range envelopeKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedOutputError{Missing: missing}
	}
	return &Envelope{
		Alloc:  fields["alloc"],
		Result: fields["result"],
		Body:   fields["body"],
	}, nil
}

// CompleteEnvelope assembles an envelope from documents gathered separately
// (the filesystem transport reads them back as individual files). A nil
// document counts as missing and yields a *MalformedOutputError, matching
// ParseEnvelope's contract; alloc and result must additionally decode as
// JSON, since a tool can exit zero and still write garbage. body is an
// opaque encoding and stays unparsed.
func CompleteEnvelope(alloc, result, body []byte) (*Envelope, error) {
	var missing []string
	if alloc == nil {
		missing = append(missing, "alloc")
	}
	if result == nil {
		missing = append(missing, "result")
	}
	if body == nil {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return nil, &MalformedOutputError{Missing: missing}
	}
	for _, doc := range []struct {
		name string
		data []byte
	}{{"alloc", alloc}, {"result", result}} {
		var raw json.RawMessage
		if err := json.Unmarshal(doc.data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode output %s: %w", doc.name, err)
		}
	}
	return &Envelope{Alloc: alloc, Result: result, Body: body}, nil
}

// Receipt is the subset of a per-transaction outcome record the invoker
// needs: enough to key traces by position and label them with the hash.
type Receipt struct {
	TransactionHash  string `json:"transactionHash"`
	TransactionIndex string `json:"transactionIndex"`
	GasUsed          string `json:"gasUsed"`
}

// Receipts extracts the receipt list from the result record. The result's
// other fields are not validated here; deeper consumers read what they need.
func (e *Envelope) Receipts() ([]Receipt, error) {
	var result struct {
		Receipts []Receipt `json:"receipts"`
	}
	if err := json.Unmarshal(e.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to decode receipts from result: %w", err)
	}
	return result.Receipts, nil
}

// TraceRecord associates one receipt with its captured execution trace.
type TraceRecord struct {
	ReceiptIndex int    `json:"receiptIndex"`
	TxHash       string `json:"txHash,omitempty"`
	File         string `json:"file"`
	Data         []byte `json:"-"`
}

// TraceSet is the best-effort outcome of trace collection. Missing lists the
// receipt indices for which no trace file was found; gaps are reportable but
// never fail the invocation.
type TraceSet struct {
	Records []TraceRecord `json:"records"`
	Missing []int         `json:"missing,omitempty"`
}

// Transition is the validated (allocation, result) pair returned to the
// caller, plus traces when they were requested.
type Transition struct {
	Alloc  json.RawMessage `json:"alloc"`
	Result json.RawMessage `json:"result"`
	Traces *TraceSet       `json:"-"`
}
