package window

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasmil-labs/tasmilindexer/internal/accumulator"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
	"github.com/tasmil-labs/tasmilindexer/internal/storage"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	w := storage.NewWriter(db)
	require.NoError(t, w.AutoMigrate(), "automigrate")
	return db
}

func TestBootstrapResetsExistingData(t *testing.T) {
	db := newTestDB(t)
	writer := storage.NewWriter(db)
	ctx := context.Background()

	require.NoError(t, writer.ApplyDelta(ctx, accumulator.Delta{
		Protocols: []accumulator.ProtocolDelta{{
			Protocol: "cellana",
			Coins:    map[dexcoin.Coin]accumulator.CoinMetrics{dexcoin.APT: {Volume: decimal.NewFromInt(5)}},
		}},
	}), "seed delta")

	require.NoError(t, NewManager(db).Bootstrap(ctx), "bootstrap")

	var row storage.ProtocolAggregate
	require.NoError(t, db.First(&row, "protocol_name = ?", "cellana").Error, "query cellana row")
	assert.True(t, row.AptVolume24h.Valid && row.AptVolume24h.Decimal.IsZero(), "expected apt volume zeroed but still present after bootstrap, got %+v", row.AptVolume24h)
	assert.False(t, row.WethVolume24h.Valid, "expected weth volume to remain NULL after bootstrap, cellana never supports it")
}

func TestMaintainResetsWhenStale(t *testing.T) {
	db := newTestDB(t)
	writer := storage.NewWriter(db)
	ctx := context.Background()

	require.NoError(t, writer.ApplyDelta(ctx, accumulator.Delta{
		Protocols: []accumulator.ProtocolDelta{{
			Protocol: "thala",
			Coins:    map[dexcoin.Coin]accumulator.CoinMetrics{dexcoin.APT: {Volume: decimal.NewFromInt(7)}},
		}},
	}), "seed delta")

	future := time.Now().Add(Retention + time.Hour)
	require.NoError(t, NewManager(db).Maintain(ctx, future), "maintain")

	var row storage.ProtocolAggregate
	require.NoError(t, db.First(&row, "protocol_name = ?", "thala").Error, "query thala row")
	assert.True(t, row.AptVolume24h.Decimal.IsZero(), "expected stale window reset to zero volume, got %s", row.AptVolume24h.Decimal)
}

func TestMaintainEvictsAgedBucketsAndEnforcesCap(t *testing.T) {
	db := newTestDB(t)
	writer := storage.NewWriter(db)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < MaxBucketsPerCoin+2; i++ {
		start := now.Add(-time.Duration(i) * 2 * time.Hour)
		require.NoError(t, writer.ApplyDelta(ctx, accumulator.Delta{
			Buckets: []accumulator.BucketDelta{
				{Coin: dexcoin.APT, BucketStart: start, BucketEnd: start.Add(2 * time.Hour), Volume: decimal.NewFromInt(1)},
			},
		}), "seed bucket %d", i)
	}

	require.NoError(t, NewManager(db).Maintain(ctx, now), "maintain")

	var count int64
	require.NoError(t, db.Model(&storage.CoinVolumeBucket{}).Where("coin = ?", string(dexcoin.APT)).Count(&count).Error, "count buckets")
	assert.LessOrEqual(t, count, int64(MaxBucketsPerCoin), "expected at most %d buckets retained, got %d", MaxBucketsPerCoin, count)
}
