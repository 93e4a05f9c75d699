// Package accumulator collapses a batch of protocol-extracted swap
// records into the per-protocol, per-coin, and per-bucket volume
// deltas the Aggregate Writer persists.
package accumulator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/bucket"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/normalize"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

// CoinMetrics is one coin's volume and fee contribution within a
// single pool, for the lifetime of one batch.
type CoinMetrics struct {
	Volume decimal.Decimal
	Fee    decimal.Decimal
}

// ProtocolDelta is one protocol's collapsed per-coin volume/fee
// contribution for a batch, summed across every pool that protocol
// touched. Coins absent from the map received no activity this batch.
type ProtocolDelta struct {
	Protocol string
	Coins    map[dexcoin.Coin]CoinMetrics
}

// CoinDelta is the cross-protocol buy/sell contribution for one
// canonical coin.
type CoinDelta struct {
	Coin       dexcoin.Coin
	BuyVolume  decimal.Decimal
	SellVolume decimal.Decimal
}

// BucketDelta is the chart-bucket volume contribution for one coin in
// one 2-hour GMT+7 window.
type BucketDelta struct {
	Coin        dexcoin.Coin
	BucketStart time.Time
	BucketEnd   time.Time
	Volume      decimal.Decimal
}

// Delta is the full per-batch output consumed by the Aggregate Writer.
type Delta struct {
	Protocols []ProtocolDelta
	Coins     []CoinDelta
	Buckets   []BucketDelta
}

type coinAmounts struct {
	total, fee, buy, sell decimal.Decimal
}

// Batch owns the in-memory per-protocol pool-volume map, the
// cross-protocol coin buy/sell map, and the bucket contribution list
// for the lifetime of one Accumulate call.
type Batch struct {
	pools       map[string]map[string]map[dexcoin.Coin]*coinAmounts // protocol -> poolID -> coin -> amounts
	coinTotals  map[dexcoin.Coin]*coinAmounts
	bucketSwaps []bucket.SwapContribution
}

// NewBatch returns an empty Batch ready for one Accumulate call.
func NewBatch() *Batch {
	return &Batch{
		pools:      make(map[string]map[string]map[dexcoin.Coin]*coinAmounts),
		coinTotals: make(map[dexcoin.Coin]*coinAmounts),
	}
}

func (b *Batch) poolCoins(protocol, poolID string) map[dexcoin.Coin]*coinAmounts {
	byPool, ok := b.pools[protocol]
	if !ok {
		byPool = make(map[string]map[dexcoin.Coin]*coinAmounts)
		b.pools[protocol] = byPool
	}
	coins, ok := byPool[poolID]
	if !ok {
		coins = make(map[dexcoin.Coin]*coinAmounts)
		byPool[poolID] = coins
	}
	return coins
}

func coinEntry(coins map[dexcoin.Coin]*coinAmounts, coin dexcoin.Coin) *coinAmounts {
	e, ok := coins[coin]
	if !ok {
		e = &coinAmounts{}
		coins[coin] = e
	}
	return e
}

// Accumulate drives records through the Normalizer and Bucket
// Calculator and returns the resulting per-batch Delta. Records whose
// from/to token does not canonicalize to a tracked coin are dropped
// and logged at warn level.
func (b *Batch) Accumulate(records []swap.Record, now time.Time) Delta {
	for _, rec := range records {
		fromCoin, ok := dexcoin.Canonicalize(rec.FromToken)
		if !ok {
			logging.GetLogger().Warnw("accumulator: dropping record with unrecognized from-token", "protocol", rec.Protocol, "token", rec.FromToken)
			continue
		}
		toCoin, ok := dexcoin.Canonicalize(rec.ToToken)
		if !ok {
			logging.GetLogger().Warnw("accumulator: dropping record with unrecognized to-token", "protocol", rec.Protocol, "token", rec.ToToken)
			continue
		}

		amountInNorm := normalize.Normalize(rec.AmountInRaw, fromCoin)
		amountOutNorm := normalize.Normalize(rec.AmountOutRaw, toCoin)

		var fee, netIn decimal.Decimal
		switch rec.FeeKind {
		case swap.FeeBps:
			fee, netIn = normalize.BpsFee(amountInNorm, rec.FeeBps)
		case swap.FeeAmount:
			fee, netIn = normalize.AbsoluteFee(amountInNorm, rec.FeeAmountRaw, fromCoin)
		default:
			fee, netIn = normalize.NoFee(amountInNorm)
		}

		coins := b.poolCoins(rec.Protocol, rec.PoolID)

		// Input coin: total_volume_24h and sell_volume accumulate the
		// *net* (post-fee) amount; fee_24h accumulates the fee. This
		// asymmetry against the output coin's gross accumulation is a
		// known, intentionally preserved source property, not a bug.
		fromEntry := coinEntry(coins, fromCoin)
		fromEntry.total = fromEntry.total.Add(netIn)
		fromEntry.sell = fromEntry.sell.Add(netIn)
		fromEntry.fee = fromEntry.fee.Add(fee)

		// Output coin: total_volume_24h and buy_volume accumulate the
		// full gross output amount.
		toEntry := coinEntry(coins, toCoin)
		toEntry.total = toEntry.total.Add(amountOutNorm)
		toEntry.buy = toEntry.buy.Add(amountOutNorm)

		fromTotal := coinEntry(b.coinTotals, fromCoin)
		fromTotal.sell = fromTotal.sell.Add(netIn)
		toTotal := coinEntry(b.coinTotals, toCoin)
		toTotal.buy = toTotal.buy.Add(amountOutNorm)

		b.bucketSwaps = append(b.bucketSwaps,
			bucket.SwapContribution{Coin: fromCoin, UnixSeconds: rec.TimestampSeconds, Amount: netIn},
			bucket.SwapContribution{Coin: toCoin, UnixSeconds: rec.TimestampSeconds, Amount: amountOutNorm},
		)
	}

	return Delta{
		Protocols: b.collapseProtocols(),
		Coins:     b.collapseCoins(),
		Buckets:   collapseBuckets(b.bucketSwaps),
	}
}

func (b *Batch) collapseProtocols() []ProtocolDelta {
	var out []ProtocolDelta
	for protocol, byPool := range b.pools {
		totals := make(map[dexcoin.Coin]CoinMetrics)
		anyNonZero := false
		for _, coins := range byPool {
			for coin, amounts := range coins {
				existing := totals[coin]
				existing.Volume = existing.Volume.Add(amounts.total)
				existing.Fee = existing.Fee.Add(amounts.fee)
				totals[coin] = existing
				if !amounts.total.IsZero() || !amounts.fee.IsZero() {
					anyNonZero = true
				}
			}
		}
		// A protocol whose every column sums to zero produces no output row.
		if !anyNonZero {
			continue
		}
		out = append(out, ProtocolDelta{Protocol: protocol, Coins: totals})
	}
	return out
}

func (b *Batch) collapseCoins() []CoinDelta {
	out := make([]CoinDelta, 0, len(b.coinTotals))
	for coin, amounts := range b.coinTotals {
		out = append(out, CoinDelta{Coin: coin, BuyVolume: amounts.buy, SellVolume: amounts.sell})
	}
	return out
}

func collapseBuckets(swaps []bucket.SwapContribution) []BucketDelta {
	grouped := bucket.GroupSwaps(swaps)
	out := make([]BucketDelta, len(grouped))
	for i, g := range grouped {
		out[i] = BucketDelta{Coin: g.Coin, BucketStart: g.BucketStart, BucketEnd: g.BucketEnd, Volume: g.Volume}
	}
	return out
}
