package sushiswap

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

// Extractor implements swap.Extractor for SushiSwap.
type Extractor struct{}

// New returns a SushiSwap Extractor.
func New() Extractor {
	return Extractor{}
}

func (Extractor) Matches(eventType string) bool {
	return strings.Contains(eventType, ModuleAddress) && strings.Contains(eventType, "swap::SwapEvent")
}

type payload struct {
	AmountXIn  string `json:"amount_x_in"`
	AmountXOut string `json:"amount_x_out"`
	AmountYIn  string `json:"amount_y_in"`
	AmountYOut string `json:"amount_y_out"`
}

func (Extractor) Extract(evt swap.Event, txn swap.Transaction) (*swap.Record, bool) {
	var p payload
	if err := json.Unmarshal([]byte(evt.JSONPayload), &p); err != nil {
		logging.GetLogger().Warnw("sushiswap: malformed swap event payload", "error", err)
		return nil, false
	}
	tokenX, tokenY, ok := swap.ParseGenericTokenPair(evt.TypeString)
	if !ok {
		logging.GetLogger().Warnw("sushiswap: could not parse token pair from event type", "type", evt.TypeString)
		return nil, false
	}

	xIn, err1 := decimal.NewFromString(p.AmountXIn)
	xOut, err2 := decimal.NewFromString(p.AmountXOut)
	yIn, err3 := decimal.NewFromString(p.AmountYIn)
	yOut, err4 := decimal.NewFromString(p.AmountYOut)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		logging.GetLogger().Warnw("sushiswap: unparsable swap amount")
		return nil, false
	}

	inIsX := !xIn.IsZero()
	inIsY := !yIn.IsZero()
	if inIsX == inIsY {
		logging.GetLogger().Warnw("sushiswap: ambiguous swap direction", "x_in", p.AmountXIn, "y_in", p.AmountYIn)
		return nil, false
	}
	outIsX := !xOut.IsZero()
	outIsY := !yOut.IsZero()
	if outIsX == outIsY {
		logging.GetLogger().Warnw("sushiswap: ambiguous swap direction", "x_out", p.AmountXOut, "y_out", p.AmountYOut)
		return nil, false
	}

	var fromToken, toToken string
	var amountIn, amountOut decimal.Decimal
	if inIsX {
		fromToken, amountIn = tokenX, xIn
	} else {
		fromToken, amountIn = tokenY, yIn
	}
	if outIsX {
		toToken, amountOut = tokenX, xOut
	} else {
		toToken, amountOut = tokenY, yOut
	}

	return &swap.Record{
		Protocol:         "sushiswap",
		PoolID:           tokenX + "/" + tokenY,
		FromToken:        fromToken,
		ToToken:          toToken,
		AmountInRaw:      amountIn,
		AmountOutRaw:     amountOut,
		FeeKind:          swap.FeeNone,
		TimestampSeconds: txn.TimestampSeconds,
	}, true
}
