package thala

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

// Extractor implements swap.Extractor for Thala.
type Extractor struct{}

// New returns a Thala Extractor.
func New() Extractor {
	return Extractor{}
}

func (Extractor) Matches(eventType string) bool {
	return strings.Contains(eventType, "::pool::SwapEvent")
}

type metadataRef struct {
	Inner string `json:"inner"`
}

type objectRef struct {
	Inner string `json:"inner"`
}

type payload struct {
	IdxIn             string        `json:"idx_in"`
	IdxOut            string        `json:"idx_out"`
	AmountIn          string        `json:"amount_in"`
	AmountOut         string        `json:"amount_out"`
	Metadata          []metadataRef `json:"metadata"`
	PoolObj           objectRef     `json:"pool_obj"`
	ProtocolFeeAmount string        `json:"protocol_fee_amount"`
}

func (Extractor) Extract(evt swap.Event, txn swap.Transaction) (*swap.Record, bool) {
	var p payload
	if err := json.Unmarshal([]byte(evt.JSONPayload), &p); err != nil {
		logging.GetLogger().Warnw("thala: malformed swap event payload", "error", err)
		return nil, false
	}
	idxIn, errIn := strconv.Atoi(p.IdxIn)
	idxOut, errOut := strconv.Atoi(p.IdxOut)
	if errIn != nil || errOut != nil {
		logging.GetLogger().Warnw("thala: unparsable idx_in/idx_out", "idx_in", p.IdxIn, "idx_out", p.IdxOut)
		return nil, false
	}
	validDirection := (idxIn == 0 && idxOut == 1) || (idxIn == 1 && idxOut == 0)
	if !validDirection {
		logging.GetLogger().Warnw("thala: unrecognized idx_in/idx_out pair", "idx_in", idxIn, "idx_out", idxOut)
		return nil, false
	}
	if len(p.Metadata) <= idxIn || len(p.Metadata) <= idxOut {
		logging.GetLogger().Warnw("thala: metadata shorter than idx_in/idx_out require")
		return nil, false
	}
	if p.PoolObj.Inner == "" {
		logging.GetLogger().Warnw("thala: swap event missing pool_obj.inner")
		return nil, false
	}

	amountIn, err := decimal.NewFromString(p.AmountIn)
	if err != nil {
		logging.GetLogger().Warnw("thala: unparsable amount_in", "error", err)
		return nil, false
	}
	amountOut, err := decimal.NewFromString(p.AmountOut)
	if err != nil {
		logging.GetLogger().Warnw("thala: unparsable amount_out", "error", err)
		return nil, false
	}
	feeAmount, err := decimal.NewFromString(p.ProtocolFeeAmount)
	if err != nil {
		logging.GetLogger().Warnw("thala: unparsable protocol_fee_amount", "error", err)
		return nil, false
	}

	return &swap.Record{
		Protocol:         "thala",
		PoolID:           p.PoolObj.Inner,
		FromToken:        p.Metadata[idxIn].Inner,
		ToToken:          p.Metadata[idxOut].Inner,
		AmountInRaw:      amountIn,
		AmountOutRaw:     amountOut,
		FeeKind:          swap.FeeAmount,
		FeeAmountRaw:     feeAmount,
		TimestampSeconds: txn.TimestampSeconds,
	}, true
}
