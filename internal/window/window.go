// Package window maintains the 24-hour rolling window over the
// persisted aggregate tables: it resets stale data back to a clean
// slate and evicts expired chart buckets so the 12-bucket-per-coin
// retention cap holds.
package window

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tasmil-labs/tasmilindexer/internal/storage"
	"gorm.io/gorm"
)

// Retention is how long a protocol/coin aggregate row stays live
// before the whole window is considered stale and reset.
const Retention = 24 * time.Hour

// MaxBucketsPerCoin is the chart-bucket retention cap: the 12 most
// recent 2-hour buckets per coin (24 hours of history at 2-hour
// resolution), older buckets are evicted.
const MaxBucketsPerCoin = 12

// Manager owns the rolling-window maintenance operations. It shares
// its *gorm.DB with storage.Writer so a reset and a batch's upserts
// never interleave inconsistently.
type Manager struct {
	db *gorm.DB
}

// NewManager wraps an already-connected *gorm.DB, the same handle a
// storage.Writer uses.
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Bootstrap performs the one-time startup reset described for process
// start: every previously-active aggregate column is zeroed and every
// chart bucket is dropped, so a restarted process never serves stale
// pre-restart totals before its first batch lands.
func (m *Manager) Bootstrap(ctx context.Context) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return resetAll(tx)
	})
}

// Maintain checks whether the window has gone stale (no row has been
// touched within Retention) and, if so, performs the same full reset
// as Bootstrap. Otherwise it evicts buckets that have aged out of the
// 24-hour history and trims each coin down to MaxBucketsPerCoin.
func (m *Manager) Maintain(ctx context.Context, now time.Time) error {
	stale, err := m.isStale(ctx, now)
	if err != nil {
		return fmt.Errorf("window: staleness check: %w", err)
	}
	if stale {
		if err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return resetAll(tx)
		}); err != nil {
			return fmt.Errorf("window: reset: %w", err)
		}
		return nil
	}
	if err := m.evict(ctx, now); err != nil {
		return fmt.Errorf("window: evict: %w", err)
	}
	return nil
}

// isStale reports whether the most recent write across the two
// continuously-accumulated tables is older than Retention. An empty
// database (no rows yet) is not stale — there is nothing to reset.
func (m *Manager) isStale(ctx context.Context, now time.Time) (bool, error) {
	var lastWrite sql.NullTime
	row := m.db.WithContext(ctx).Raw(`
		SELECT MAX(t) FROM (
			SELECT MAX(inserted_at) AS t FROM protocol_aggregate
			UNION ALL
			SELECT MAX(inserted_at) AS t FROM coin_volume_24h
		) combined
	`).Row()
	if err := row.Scan(&lastWrite); err != nil {
		return false, err
	}
	if !lastWrite.Valid {
		return false, nil
	}
	return now.Sub(lastWrite.Time) > Retention, nil
}

// resetAll zeroes every previously-active nullable column on
// protocol_aggregate and coin_volume_24h — a column that was already
// NULL (a protocol that never supports a coin) stays NULL — and
// deletes every chart bucket outright, since a stale window carries no
// valid history to evict incrementally.
func resetAll(tx *gorm.DB) error {
	now := time.Now().UTC()
	volumeCols := []string{"apt_volume_24h", "usdc_volume_24h", "usdt_volume_24h", "weth_volume_24h"}
	feeCols := []string{"apt_fee_24h", "usdc_fee_24h", "usdt_fee_24h", "weth_fee_24h"}

	assignments := map[string]interface{}{"inserted_at": now}
	for _, col := range append(append([]string{}, volumeCols...), feeCols...) {
		assignments[col] = gorm.Expr(fmt.Sprintf("CASE WHEN %s IS NOT NULL THEN 0 ELSE NULL END", col))
	}
	if err := tx.Table("protocol_aggregate").Where("1 = 1").Updates(assignments).Error; err != nil {
		return err
	}

	if err := tx.Table("coin_volume_24h").Where("1 = 1").Updates(map[string]interface{}{
		"buy_volume":  gorm.Expr("CASE WHEN buy_volume IS NOT NULL THEN 0 ELSE NULL END"),
		"sell_volume": gorm.Expr("CASE WHEN sell_volume IS NOT NULL THEN 0 ELSE NULL END"),
		"inserted_at": now,
	}).Error; err != nil {
		return err
	}

	return tx.Exec("DELETE FROM coin_volume_bucket").Error
}

// evict deletes buckets whose end time has fully aged out of the
// 24-hour window, then enforces the 12-bucket-per-coin cap by
// dropping the oldest rows beyond the cap for each coin.
func (m *Manager) evict(ctx context.Context, now time.Time) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cutoff := now.Add(-Retention)
		if err := tx.Where("bucket_end < ?", cutoff).Delete(&storage.CoinVolumeBucket{}).Error; err != nil {
			return err
		}

		var coins []string
		if err := tx.Model(&storage.CoinVolumeBucket{}).Distinct().Pluck("coin", &coins).Error; err != nil {
			return err
		}

		for _, coin := range coins {
			var starts []time.Time
			if err := tx.Model(&storage.CoinVolumeBucket{}).
				Where("coin = ?", coin).
				Order("bucket_start DESC").
				Offset(MaxBucketsPerCoin).
				Pluck("bucket_start", &starts).Error; err != nil {
				return err
			}
			if len(starts) == 0 {
				continue
			}
			if err := tx.Where("coin = ? AND bucket_start IN ?", coin, starts).Delete(&storage.CoinVolumeBucket{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
