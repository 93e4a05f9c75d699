package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
)

func TestNormalizeAPT(t *testing.T) {
	got := Normalize(decimal.NewFromInt(100_000_000), dexcoin.APT)
	want := decimal.NewFromInt(1)
	assert.Truef(t, got.Equal(want), "Normalize(1e8, APT) = %s, want %s", got, want)
}

func TestNormalizeUSDC(t *testing.T) {
	got := Normalize(decimal.NewFromInt(500_000_000), dexcoin.USDC)
	want := decimal.NewFromInt(500)
	assert.Truef(t, got.Equal(want), "Normalize(5e8, USDC) = %s, want %s", got, want)
}

func TestBpsFee(t *testing.T) {
	amountIn := Normalize(decimal.NewFromInt(100_000_000), dexcoin.APT) // 1 APT
	fee, net := BpsFee(amountIn, 30)
	assert.True(t, fee.Equal(decimal.NewFromFloat(0.003)), "fee = %s, want 0.003", fee)
	assert.True(t, net.Equal(decimal.NewFromFloat(0.997)), "net = %s, want 0.997", net)
}

func TestAbsoluteFee(t *testing.T) {
	amountIn := Normalize(decimal.NewFromInt(2_000_000), dexcoin.USDT) // 2 USDT
	fee, net := AbsoluteFee(amountIn, decimal.NewFromInt(300_000), dexcoin.USDT)
	assert.True(t, fee.Equal(decimal.NewFromFloat(0.3)), "fee = %s, want 0.3", fee)
	assert.True(t, net.Equal(decimal.NewFromFloat(1.7)), "net = %s, want 1.7", net)
}

func TestNoFee(t *testing.T) {
	amountIn := decimal.NewFromInt(2)
	fee, net := NoFee(amountIn)
	assert.True(t, fee.IsZero(), "fee = %s, want 0", fee)
	assert.True(t, net.Equal(amountIn), "net = %s, want %s", net, amountIn)
}
