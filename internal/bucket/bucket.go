// Package bucket computes the 2-hour GMT+7 chart bucket a timestamp
// falls into, and groups a batch's swap volumes by (coin, bucket).
package bucket

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
)

// gmt7 is a fixed, non-DST 7-hour offset east of UTC.
var gmt7 = time.FixedZone("GMT+7", 7*3600)

// BucketRange returns the [start, end) 2-hour GMT+7 bucket containing
// the instant unixSeconds. start is aligned on an even local hour
// (00, 02, ..., 22); end is exactly two hours later, rolling into the
// next local date when start's hour is 22.
func BucketRange(unixSeconds int64) (start, end time.Time) {
	t := time.Unix(unixSeconds, 0).In(gmt7)
	bucketStartHour := (t.Hour() / 2) * 2
	start = time.Date(t.Year(), t.Month(), t.Day(), bucketStartHour, 0, 0, 0, gmt7)
	end = start.Add(2 * time.Hour)
	return start, end
}

// SwapContribution is one coin-side's contribution to a batch's
// per-coin, per-bucket volume total. A single swap yields two of
// these: one for the input coin, one for the output coin.
type SwapContribution struct {
	Coin        dexcoin.Coin
	UnixSeconds int64
	Amount      decimal.Decimal
}

// CoinBucketVolume is the summed volume for one coin in one bucket.
type CoinBucketVolume struct {
	Coin        dexcoin.Coin
	BucketStart time.Time
	BucketEnd   time.Time
	Volume      decimal.Decimal
}

type bucketKey struct {
	coin        dexcoin.Coin
	bucketStart time.Time
}

// GroupSwaps sums swaps into (coin, bucket_start) totals and returns
// them sorted by (coin ascending, bucket_start ascending).
func GroupSwaps(swaps []SwapContribution) []CoinBucketVolume {
	totals := make(map[bucketKey]decimal.Decimal)
	ends := make(map[bucketKey]time.Time)
	for _, s := range swaps {
		start, end := BucketRange(s.UnixSeconds)
		key := bucketKey{coin: s.Coin, bucketStart: start}
		totals[key] = totals[key].Add(s.Amount)
		ends[key] = end
	}

	out := make([]CoinBucketVolume, 0, len(totals))
	for key, volume := range totals {
		out = append(out, CoinBucketVolume{
			Coin:        key.coin,
			BucketStart: key.bucketStart,
			BucketEnd:   ends[key],
			Volume:      volume,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coin != out[j].Coin {
			return out[i].Coin < out[j].Coin
		}
		return out[i].BucketStart.Before(out[j].BucketStart)
	})
	return out
}
