// Package normalize converts raw on-chain integer amounts into
// fixed-precision decimals and computes the net (post-fee) volume of a
// swap under each of the three fee policies the tracked protocols use.
package normalize

import (
	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
)

// scale is large enough that dividing any on-chain integer amount by
// 10^8 (APT's decimal count, the largest in the registry) loses no
// precision; on-chain amounts are themselves integers, so this is an
// exact division, never a rounding one.
const scale = 18

// Normalize divides raw by 10^Decimals(coin), returning the
// human-scale decimal amount.
func Normalize(raw decimal.Decimal, coin dexcoin.Coin) decimal.Decimal {
	divisor := decimal.New(1, int32(dexcoin.Decimals(coin)))
	return raw.DivRound(divisor, scale)
}

// BpsFee computes the fee and net volume for a basis-points fee
// (Cellana): fee = amountInNormalized * bps / 10000.
func BpsFee(amountInNormalized decimal.Decimal, bps int64) (fee, net decimal.Decimal) {
	fee = amountInNormalized.Mul(decimal.NewFromInt(bps)).DivRound(decimal.NewFromInt(10000), scale)
	net = amountInNormalized.Sub(fee)
	return fee, net
}

// AbsoluteFee computes the fee and net volume for a fee already
// expressed in the input token's raw integer units (Thala, Hyperion):
// fee = feeRawAmount / 10^Decimals(fromCoin).
func AbsoluteFee(amountInNormalized, feeRawAmount decimal.Decimal, fromCoin dexcoin.Coin) (fee, net decimal.Decimal) {
	fee = Normalize(feeRawAmount, fromCoin)
	net = amountInNormalized.Sub(fee)
	return fee, net
}

// NoFee returns a zero fee and the input amount unchanged
// (SushiSwap, LiquidSwap).
func NoFee(amountInNormalized decimal.Decimal) (fee, net decimal.Decimal) {
	return decimal.Zero, amountInNormalized
}
