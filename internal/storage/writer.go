// Package storage persists accumulator deltas into the three
// relational tables the rest of the system reads from: protocol
// aggregates, cross-protocol coin 24h volume, and chart buckets.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/accumulator"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Writer applies accumulator.Delta batches to the database inside a
// single transaction per batch.
type Writer struct {
	db *gorm.DB
}

// NewWriter wraps an already-connected *gorm.DB.
func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

// AutoMigrate creates or updates the three persisted tables.
func (w *Writer) AutoMigrate() error {
	return w.db.AutoMigrate(&ProtocolAggregate{}, &CoinVolume24h{}, &CoinVolumeBucket{})
}

// DB exposes the underlying handle, shared with internal/window so
// both packages operate on the same connection and transaction scope.
func (w *Writer) DB() *gorm.DB {
	return w.db
}

// ApplyDelta persists one batch's protocol, coin and bucket deltas,
// then recomputes the synthetic "aptos" aggregate row as the
// column-wise sum of the five concrete protocol rows. The whole
// sequence runs in one transaction so a batch is visible to readers
// atomically or not at all.
func (w *Writer) ApplyDelta(ctx context.Context, delta accumulator.Delta) error {
	if len(delta.Protocols) == 0 && len(delta.Coins) == 0 && len(delta.Buckets) == 0 {
		return nil
	}
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, p := range delta.Protocols {
			if err := upsertProtocol(tx, p, now); err != nil {
				return fmt.Errorf("storage: upsert protocol_aggregate %s: %w", p.Protocol, err)
			}
		}
		for _, c := range delta.Coins {
			if err := upsertCoinVolume(tx, c, now); err != nil {
				return fmt.Errorf("storage: upsert coin_volume_24h %s: %w", c.Coin, err)
			}
		}
		for _, bkt := range delta.Buckets {
			if err := upsertBucket(tx, bkt, now); err != nil {
				return fmt.Errorf("storage: upsert coin_volume_bucket %s: %w", bkt.Coin, err)
			}
		}
		if len(delta.Protocols) > 0 {
			if err := recomputeAptosRow(tx, now); err != nil {
				return fmt.Errorf("storage: recompute aptos row: %w", err)
			}
		}
		return nil
	})
}

// upsertProtocol only touches the columns protocolSupportedCoins says
// this protocol can ever populate; every other column stays
// permanently NULL. Existing values are summed with the delta, never
// replaced.
func upsertProtocol(tx *gorm.DB, delta accumulator.ProtocolDelta, now time.Time) error {
	row := ProtocolAggregate{ProtocolName: delta.Protocol, InsertedAt: now}
	supported := protocolSupportedCoins[delta.Protocol]
	for _, coin := range supported {
		metrics := delta.Coins[coin]
		if vf := volumeField(&row, coin); vf != nil {
			*vf = decimal.NullDecimal{Decimal: metrics.Volume, Valid: true}
		}
		if ff := feeField(&row, coin); ff != nil {
			*ff = decimal.NullDecimal{Decimal: metrics.Fee, Valid: true}
		}
	}

	assignments := map[string]interface{}{"inserted_at": now}
	for _, coin := range supported {
		metrics := delta.Coins[coin]
		if vc := volumeColumn(coin); vc != "" {
			assignments[vc] = gorm.Expr(fmt.Sprintf("COALESCE(%s, 0) + ?", vc), metrics.Volume)
		}
		if fc := feeColumn(coin); fc != "" {
			assignments[fc] = gorm.Expr(fmt.Sprintf("COALESCE(%s, 0) + ?", fc), metrics.Fee)
		}
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "protocol_name"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error
}

func upsertCoinVolume(tx *gorm.DB, delta accumulator.CoinDelta, now time.Time) error {
	row := CoinVolume24h{
		Coin:       string(delta.Coin),
		BuyVolume:  decimal.NullDecimal{Decimal: delta.BuyVolume, Valid: true},
		SellVolume: decimal.NullDecimal{Decimal: delta.SellVolume, Valid: true},
		InsertedAt: now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "coin"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"buy_volume":  gorm.Expr("COALESCE(buy_volume, 0) + ?", delta.BuyVolume),
			"sell_volume": gorm.Expr("COALESCE(sell_volume, 0) + ?", delta.SellVolume),
			"inserted_at": now,
		}),
	}).Create(&row).Error
}

func upsertBucket(tx *gorm.DB, delta accumulator.BucketDelta, now time.Time) error {
	row := CoinVolumeBucket{
		Coin:        string(delta.Coin),
		BucketStart: delta.BucketStart,
		BucketEnd:   delta.BucketEnd,
		Volume:      decimal.NullDecimal{Decimal: delta.Volume, Valid: true},
		InsertedAt:  now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "coin"}, {Name: "bucket_start"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"volume":      gorm.Expr("COALESCE(volume, 0) + ?", delta.Volume),
			"bucket_end":  delta.BucketEnd,
			"inserted_at": now,
		}),
	}).Create(&row).Error
}

// recomputeAptosRow reads the five concrete protocol rows back inside
// the same transaction and overwrites the synthetic "aptos" row with
// their column-wise sum. This row is never accumulated independently:
// every batch recomputes it from scratch from current state, so a
// late-arriving correction to any one protocol row is reflected here
// without drift.
func recomputeAptosRow(tx *gorm.DB, now time.Time) error {
	var rows []ProtocolAggregate
	if err := tx.Where("protocol_name IN ?", ConcreteProtocols).Find(&rows).Error; err != nil {
		return err
	}

	aggregate := ProtocolAggregate{ProtocolName: AptosRow, InsertedAt: now}
	for _, coin := range []dexcoin.Coin{dexcoin.APT, dexcoin.USDC, dexcoin.USDT, dexcoin.WETH} {
		var volumes, fees []decimal.NullDecimal
		for i := range rows {
			volumes = append(volumes, *volumeField(&rows[i], coin))
			fees = append(fees, *feeField(&rows[i], coin))
		}
		*volumeField(&aggregate, coin) = nullableSum(volumes...)
		*feeField(&aggregate, coin) = nullableSum(fees...)
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "protocol_name"}},
		UpdateAll: true,
	}).Create(&aggregate).Error
}
