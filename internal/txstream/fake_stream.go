package txstream

import (
	"context"
	"io"
)

// FakeStream replays a fixed, scripted sequence of batches, returning
// io.EOF once exhausted. Used by orchestrator tests to exercise the
// pipeline deterministically without a real upstream connection.
type FakeStream struct {
	batches []fakeBatch
	pos     int
}

type fakeBatch struct {
	txns []Transaction
	meta BatchMetadata
}

// NewFakeStream builds a FakeStream that serves each txns slice as one
// batch, in order, deriving BatchMetadata from the first and last
// transaction versions in each slice.
func NewFakeStream(batches ...[]Transaction) *FakeStream {
	fs := &FakeStream{}
	for _, txns := range batches {
		meta := BatchMetadata{}
		if len(txns) > 0 {
			meta.StartVersion = txns[0].Version
			meta.EndVersion = txns[len(txns)-1].Version
		}
		fs.batches = append(fs.batches, fakeBatch{txns: txns, meta: meta})
	}
	return fs
}

// NextBatch returns the next scripted batch, or io.EOF once every
// batch has been served.
func (f *FakeStream) NextBatch(ctx context.Context) ([]Transaction, BatchMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, BatchMetadata{}, err
	}
	if f.pos >= len(f.batches) {
		return nil, BatchMetadata{}, io.EOF
	}
	b := f.batches[f.pos]
	f.pos++
	return b.txns, b.meta, nil
}
