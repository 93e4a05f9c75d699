package bucket

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
)

func TestBucketRangeMidBucket(t *testing.T) {
	// 2026-07-31 09:15:00 GMT+7 falls in the [08:00, 10:00) bucket.
	ts := time.Date(2026, 7, 31, 9, 15, 0, 0, gmt7).Unix()
	start, end := BucketRange(ts)
	wantStart := time.Date(2026, 7, 31, 8, 0, 0, 0, gmt7)
	wantEnd := time.Date(2026, 7, 31, 10, 0, 0, 0, gmt7)
	assert.True(t, start.Equal(wantStart), "start = %v, want %v", start, wantStart)
	assert.True(t, end.Equal(wantEnd), "end = %v, want %v", end, wantEnd)
}

func TestBucketRangeRollsIntoNextDay(t *testing.T) {
	ts := time.Date(2026, 7, 31, 23, 0, 0, 0, gmt7).Unix()
	start, end := BucketRange(ts)
	wantStart := time.Date(2026, 7, 31, 22, 0, 0, 0, gmt7)
	wantEnd := time.Date(2026, 8, 1, 0, 0, 0, 0, gmt7)
	assert.True(t, start.Equal(wantStart), "start = %v, want %v", start, wantStart)
	assert.True(t, end.Equal(wantEnd), "end = %v, want %v", end, wantEnd)
}

func TestGroupSwapsSortedAndSummed(t *testing.T) {
	base := time.Date(2026, 7, 31, 9, 0, 0, 0, gmt7).Unix()
	swaps := []SwapContribution{
		{Coin: dexcoin.USDC, UnixSeconds: base, Amount: decimal.NewFromInt(500)},
		{Coin: dexcoin.APT, UnixSeconds: base, Amount: decimal.NewFromFloat(0.997)},
		{Coin: dexcoin.APT, UnixSeconds: base + 60, Amount: decimal.NewFromFloat(0.003)},
	}
	grouped := GroupSwaps(swaps)
	require.Len(t, grouped, 2, "expected 2 grouped buckets")
	assert.Equal(t, dexcoin.APT, grouped[0].Coin)
	assert.Equal(t, dexcoin.USDC, grouped[1].Coin)
	assert.True(t, grouped[0].Volume.Equal(decimal.NewFromInt(1)), "expected APT bucket volume 1, got %s", grouped[0].Volume)
}
