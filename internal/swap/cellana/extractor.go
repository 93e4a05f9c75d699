package cellana

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

// Extractor implements swap.Extractor for Cellana.
type Extractor struct{}

// New returns a Cellana Extractor.
func New() Extractor {
	return Extractor{}
}

func (Extractor) Matches(eventType string) bool {
	return strings.HasSuffix(eventType, "liquidity_pool::SwapEvent")
}

type payload struct {
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
	FromToken string `json:"from_token"`
	ToToken   string `json:"to_token"`
	Pool      string `json:"pool"`
}

type liquidityPoolResource struct {
	SwapFeeBps *int64 `json:"swap_fee_bps"`
	FeeRate    *int64 `json:"fee_rate"`
}

func (Extractor) Extract(evt swap.Event, txn swap.Transaction) (*swap.Record, bool) {
	var p payload
	if err := json.Unmarshal([]byte(evt.JSONPayload), &p); err != nil {
		logging.GetLogger().Warnw("cellana: malformed swap event payload", "error", err)
		return nil, false
	}
	if p.FromToken == "" || p.ToToken == "" || p.Pool == "" {
		logging.GetLogger().Warnw("cellana: swap event missing mandatory field", "payload", evt.JSONPayload)
		return nil, false
	}
	amountIn, err := decimal.NewFromString(p.AmountIn)
	if err != nil {
		logging.GetLogger().Warnw("cellana: unparsable amount_in", "error", err)
		return nil, false
	}
	amountOut, err := decimal.NewFromString(p.AmountOut)
	if err != nil {
		logging.GetLogger().Warnw("cellana: unparsable amount_out", "error", err)
		return nil, false
	}

	feeBps := int64(DefaultSwapFeeBps)
	for _, wc := range txn.WriteChanges {
		if wc.Address != p.Pool || !strings.Contains(wc.TypeString, LiquidityPoolType) {
			continue
		}
		var pool liquidityPoolResource
		if err := json.Unmarshal([]byte(wc.JSONData), &pool); err != nil {
			continue
		}
		switch {
		case pool.SwapFeeBps != nil:
			feeBps = *pool.SwapFeeBps
		case pool.FeeRate != nil:
			feeBps = *pool.FeeRate
		}
		break
	}

	return &swap.Record{
		Protocol:         "cellana",
		PoolID:           p.Pool,
		FromToken:        p.FromToken,
		ToToken:          p.ToToken,
		AmountInRaw:      amountIn,
		AmountOutRaw:     amountOut,
		FeeKind:          swap.FeeBps,
		FeeBps:           feeBps,
		TimestampSeconds: txn.TimestampSeconds,
	}, true
}
