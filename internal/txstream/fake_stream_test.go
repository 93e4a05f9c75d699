package txstream

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeStreamServesBatchesInOrderThenEOF(t *testing.T) {
	fs := NewFakeStream(
		[]Transaction{{Version: 1}, {Version: 2}},
		[]Transaction{{Version: 3}},
	)
	ctx := context.Background()

	txns, meta, err := fs.NextBatch(ctx)
	require.NoError(t, err, "first batch")
	assert.Len(t, txns, 2)
	assert.EqualValues(t, 1, meta.StartVersion)
	assert.EqualValues(t, 2, meta.EndVersion)

	txns, meta, err = fs.NextBatch(ctx)
	require.NoError(t, err, "second batch")
	assert.Len(t, txns, 1)
	assert.EqualValues(t, 3, meta.StartVersion)

	_, _, err = fs.NextBatch(ctx)
	assert.ErrorIs(t, err, io.EOF, "expected io.EOF after batches exhausted")
}
