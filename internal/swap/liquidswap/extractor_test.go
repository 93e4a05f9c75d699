package liquidswap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

const sampleEventType = ModuleAddress + "::liquidity_pool::SwapEvent<0x5e156f1207d0ebfa19a9eeff00d62a282278fb8719f4fab3a586a0a2c0fffbea::coin::T, 0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC>"

func TestExtractWrappedTokenPair(t *testing.T) {
	e := New()
	evt := swap.Event{
		TypeString:  sampleEventType,
		JSONPayload: `{"x_in":"1000000","x_out":"0","y_in":"0","y_out":"1000000"}`,
	}
	rec, ok := e.Extract(evt, swap.Transaction{})
	require.True(t, ok, "expected extraction to succeed")
	assert.Equal(t, "0x5e156f1207d0ebfa19a9eeff00d62a282278fb8719f4fab3a586a0a2c0fffbea::coin::T", rec.FromToken)
	assert.Equal(t, "0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC", rec.ToToken)
}
