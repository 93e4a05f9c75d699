package accumulator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

func TestAccumulateCellanaSwap(t *testing.T) {
	now := time.Now()
	records := []swap.Record{
		{
			Protocol:         "cellana",
			PoolID:           "0xP1",
			FromToken:        "0x1::aptos_coin::AptosCoin",
			ToToken:          "0xbae207659db88bea0cbead6da0ed00aac12edcdda169e591cd41c94180b46f3b",
			AmountInRaw:      decimal.NewFromInt(100_000_000),
			AmountOutRaw:     decimal.NewFromInt(500_000_000),
			FeeKind:          swap.FeeBps,
			FeeBps:           30,
			TimestampSeconds: now.Add(-time.Hour).Unix(),
		},
	}

	delta := NewBatch().Accumulate(records, now)

	require.Len(t, delta.Protocols, 1, "expected 1 protocol delta")
	p := delta.Protocols[0]
	require.Equal(t, "cellana", p.Protocol)
	apt := p.Coins[dexcoin.APT]
	assert.True(t, apt.Volume.Equal(decimal.NewFromFloat(0.997)), "apt volume = %s, want 0.997", apt.Volume)
	assert.True(t, apt.Fee.Equal(decimal.NewFromFloat(0.003)), "apt fee = %s, want 0.003", apt.Fee)
	usdc := p.Coins[dexcoin.USDC]
	assert.True(t, usdc.Volume.Equal(decimal.NewFromInt(500)), "usdc volume = %s, want 500", usdc.Volume)

	var coinAPT, coinUSDC CoinDelta
	for _, c := range delta.Coins {
		switch c.Coin {
		case dexcoin.APT:
			coinAPT = c
		case dexcoin.USDC:
			coinUSDC = c
		}
	}
	assert.True(t, coinAPT.SellVolume.Equal(decimal.NewFromFloat(0.997)), "APT sell volume = %s, want 0.997", coinAPT.SellVolume)
	assert.True(t, coinUSDC.BuyVolume.Equal(decimal.NewFromInt(500)), "USDC buy volume = %s, want 500", coinUSDC.BuyVolume)
	assert.Len(t, delta.Buckets, 2, "expected 2 bucket deltas (one per coin side)")
}

func TestAccumulateDropsUnrecognizedToken(t *testing.T) {
	now := time.Now()
	records := []swap.Record{
		{
			Protocol:     "cellana",
			PoolID:       "0xP1",
			FromToken:    "0xdeadbeef::unknown::Token",
			ToToken:      "0xbae207659db88bea0cbead6da0ed00aac12edcdda169e591cd41c94180b46f3b",
			AmountInRaw:  decimal.NewFromInt(1),
			AmountOutRaw: decimal.NewFromInt(1),
			FeeKind:      swap.FeeNone,
		},
	}
	delta := NewBatch().Accumulate(records, now)
	assert.Empty(t, delta.Protocols, "expected the unrecognized-token record to be dropped entirely")
	assert.Empty(t, delta.Coins)
	assert.Empty(t, delta.Buckets)
}

func TestAccumulateZeroActivityProtocolProducesNoRow(t *testing.T) {
	delta := NewBatch().Accumulate(nil, time.Now())
	assert.Empty(t, delta.Protocols, "expected no protocol rows for an empty batch")
}

func TestAccumulateWrappedTokensFoldIntoOneCoin(t *testing.T) {
	now := time.Now()
	records := []swap.Record{
		{
			Protocol:     "liquidswap",
			PoolID:       "whUSDC/izUSDC",
			FromToken:    "0x5e156f1207d0ebfa19a9eeff00d62a282278fb8719f4fab3a586a0a2c0fffbea::coin::T",
			ToToken:      "0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC",
			AmountInRaw:  decimal.NewFromInt(1_000_000),
			AmountOutRaw: decimal.NewFromInt(1_000_000),
			FeeKind:      swap.FeeNone,
		},
	}
	delta := NewBatch().Accumulate(records, now)
	require.Len(t, delta.Coins, 1, "expected every coin delta to fold into a single USDC row, got %+v", delta.Coins)
	assert.Equal(t, dexcoin.USDC, delta.Coins[0].Coin)
}
