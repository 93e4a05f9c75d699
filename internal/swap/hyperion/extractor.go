package hyperion

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

// Extractor implements swap.Extractor for Hyperion.
type Extractor struct{}

// New returns a Hyperion Extractor.
func New() Extractor {
	return Extractor{}
}

func (Extractor) Matches(eventType string) bool {
	return eventType == SwapEventType
}

type tokenRef struct {
	Inner string `json:"inner"`
}

type payload struct {
	AmountIn          string   `json:"amount_in"`
	AmountOut         string   `json:"amount_out"`
	FromToken         tokenRef `json:"from_token"`
	ToToken           tokenRef `json:"to_token"`
	PoolID            string   `json:"pool_id"`
	ProtocolFeeAmount string   `json:"protocol_fee_amount"`
}

func (Extractor) Extract(evt swap.Event, txn swap.Transaction) (*swap.Record, bool) {
	var p payload
	if err := json.Unmarshal([]byte(evt.JSONPayload), &p); err != nil {
		logging.GetLogger().Warnw("hyperion: malformed swap event payload", "error", err)
		return nil, false
	}
	if p.FromToken.Inner == "" || p.ToToken.Inner == "" || p.PoolID == "" {
		logging.GetLogger().Warnw("hyperion: swap event missing mandatory field", "payload", evt.JSONPayload)
		return nil, false
	}
	amountIn, err := decimal.NewFromString(p.AmountIn)
	if err != nil {
		logging.GetLogger().Warnw("hyperion: unparsable amount_in", "error", err)
		return nil, false
	}
	amountOut, err := decimal.NewFromString(p.AmountOut)
	if err != nil {
		logging.GetLogger().Warnw("hyperion: unparsable amount_out", "error", err)
		return nil, false
	}
	feeAmount, err := decimal.NewFromString(p.ProtocolFeeAmount)
	if err != nil {
		logging.GetLogger().Warnw("hyperion: unparsable protocol_fee_amount", "error", err)
		return nil, false
	}

	return &swap.Record{
		Protocol:         "hyperion",
		PoolID:           p.PoolID,
		FromToken:        p.FromToken.Inner,
		ToToken:          p.ToToken.Inner,
		AmountInRaw:      amountIn,
		AmountOutRaw:     amountOut,
		FeeKind:          swap.FeeAmount,
		FeeAmountRaw:     feeAmount,
		TimestampSeconds: txn.TimestampSeconds,
	}, true
}
