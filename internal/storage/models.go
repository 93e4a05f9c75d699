package storage

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/dexcoin"
)

// ConcreteProtocols is the five tracked DEX protocols whose column-wise
// sum defines the synthetic "aptos" aggregate row.
var ConcreteProtocols = []string{"cellana", "thala", "sushiswap", "liquidswap", "hyperion"}

// AptosRow is the protocol_name of the synthetic aggregate row.
const AptosRow = "aptos"

// protocolSupportedCoins records which coins each protocol can ever
// report. A coin absent from a protocol's list stays NULL in that
// protocol's persisted row forever, matching spec.md §3's "nullable
// columns represent not supported by this protocol".
var protocolSupportedCoins = map[string][]dexcoin.Coin{
	"cellana":    {dexcoin.APT, dexcoin.USDC, dexcoin.USDT},
	"thala":      {dexcoin.APT, dexcoin.USDC, dexcoin.USDT},
	"sushiswap":  {dexcoin.APT, dexcoin.USDC, dexcoin.USDT, dexcoin.WETH},
	"liquidswap": {dexcoin.APT, dexcoin.USDC, dexcoin.USDT, dexcoin.WETH},
	"hyperion":   {dexcoin.APT, dexcoin.USDC, dexcoin.USDT},
}

// ProtocolAggregate is the persisted row for protocol_aggregate,
// keyed by protocol_name. Nullable volume/fee columns mean the
// protocol never reports that coin.
type ProtocolAggregate struct {
	ProtocolName  string              `gorm:"primaryKey;column:protocol_name"`
	AptVolume24h  decimal.NullDecimal `gorm:"column:apt_volume_24h;type:numeric"`
	UsdcVolume24h decimal.NullDecimal `gorm:"column:usdc_volume_24h;type:numeric"`
	UsdtVolume24h decimal.NullDecimal `gorm:"column:usdt_volume_24h;type:numeric"`
	WethVolume24h decimal.NullDecimal `gorm:"column:weth_volume_24h;type:numeric"`
	AptFee24h     decimal.NullDecimal `gorm:"column:apt_fee_24h;type:numeric"`
	UsdcFee24h    decimal.NullDecimal `gorm:"column:usdc_fee_24h;type:numeric"`
	UsdtFee24h    decimal.NullDecimal `gorm:"column:usdt_fee_24h;type:numeric"`
	WethFee24h    decimal.NullDecimal `gorm:"column:weth_fee_24h;type:numeric"`
	InsertedAt    time.Time           `gorm:"column:inserted_at"`
}

func (ProtocolAggregate) TableName() string { return "protocol_aggregate" }

// CoinVolume24h is the persisted row for coin_volume_24h, keyed by coin.
type CoinVolume24h struct {
	Coin       string              `gorm:"primaryKey;column:coin"`
	BuyVolume  decimal.NullDecimal `gorm:"column:buy_volume;type:numeric"`
	SellVolume decimal.NullDecimal `gorm:"column:sell_volume;type:numeric"`
	InsertedAt time.Time           `gorm:"column:inserted_at"`
}

func (CoinVolume24h) TableName() string { return "coin_volume_24h" }

// CoinVolumeBucket is the persisted row for coin_volume_bucket, keyed
// by the composite (coin, bucket_start).
type CoinVolumeBucket struct {
	Coin        string              `gorm:"primaryKey;column:coin"`
	BucketStart time.Time           `gorm:"primaryKey;column:bucket_start"`
	BucketEnd   time.Time           `gorm:"column:bucket_end"`
	Volume      decimal.NullDecimal `gorm:"column:volume;type:numeric"`
	InsertedAt  time.Time           `gorm:"column:inserted_at"`
}

func (CoinVolumeBucket) TableName() string { return "coin_volume_bucket" }

func volumeColumn(coin dexcoin.Coin) string {
	switch coin {
	case dexcoin.APT:
		return "apt_volume_24h"
	case dexcoin.USDC:
		return "usdc_volume_24h"
	case dexcoin.USDT:
		return "usdt_volume_24h"
	case dexcoin.WETH:
		return "weth_volume_24h"
	default:
		return ""
	}
}

func feeColumn(coin dexcoin.Coin) string {
	switch coin {
	case dexcoin.APT:
		return "apt_fee_24h"
	case dexcoin.USDC:
		return "usdc_fee_24h"
	case dexcoin.USDT:
		return "usdt_fee_24h"
	case dexcoin.WETH:
		return "weth_fee_24h"
	default:
		return ""
	}
}

func nullableSum(values ...decimal.NullDecimal) decimal.NullDecimal {
	var sum decimal.Decimal
	valid := false
	for _, v := range values {
		if !v.Valid {
			continue
		}
		sum = sum.Add(v.Decimal)
		valid = true
	}
	return decimal.NullDecimal{Decimal: sum, Valid: valid}
}

func volumeField(p *ProtocolAggregate, coin dexcoin.Coin) *decimal.NullDecimal {
	switch coin {
	case dexcoin.APT:
		return &p.AptVolume24h
	case dexcoin.USDC:
		return &p.UsdcVolume24h
	case dexcoin.USDT:
		return &p.UsdtVolume24h
	case dexcoin.WETH:
		return &p.WethVolume24h
	default:
		return nil
	}
}

func feeField(p *ProtocolAggregate, coin dexcoin.Coin) *decimal.NullDecimal {
	switch coin {
	case dexcoin.APT:
		return &p.AptFee24h
	case dexcoin.USDC:
		return &p.UsdcFee24h
	case dexcoin.USDT:
		return &p.UsdtFee24h
	case dexcoin.WETH:
		return &p.WethFee24h
	default:
		return nil
	}
}
