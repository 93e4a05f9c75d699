package liquidswap

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/swap"
)

// Extractor implements swap.Extractor for LiquidSwap.
type Extractor struct{}

// New returns a LiquidSwap Extractor.
func New() Extractor {
	return Extractor{}
}

func (Extractor) Matches(eventType string) bool {
	return strings.Contains(eventType, ModuleAddress)
}

type payload struct {
	XIn  string `json:"x_in"`
	XOut string `json:"x_out"`
	YIn  string `json:"y_in"`
	YOut string `json:"y_out"`
}

func (Extractor) Extract(evt swap.Event, txn swap.Transaction) (*swap.Record, bool) {
	var p payload
	if err := json.Unmarshal([]byte(evt.JSONPayload), &p); err != nil {
		logging.GetLogger().Warnw("liquidswap: malformed swap event payload", "error", err)
		return nil, false
	}
	tokenX, tokenY, ok := swap.ParseGenericTokenPair(evt.TypeString)
	if !ok {
		logging.GetLogger().Warnw("liquidswap: could not parse token pair from event type", "type", evt.TypeString)
		return nil, false
	}

	xIn, err1 := decimal.NewFromString(p.XIn)
	xOut, err2 := decimal.NewFromString(p.XOut)
	yIn, err3 := decimal.NewFromString(p.YIn)
	yOut, err4 := decimal.NewFromString(p.YOut)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		logging.GetLogger().Warnw("liquidswap: unparsable swap amount")
		return nil, false
	}

	inIsX := !xIn.IsZero()
	inIsY := !yIn.IsZero()
	if inIsX == inIsY {
		logging.GetLogger().Warnw("liquidswap: ambiguous swap direction", "x_in", p.XIn, "y_in", p.YIn)
		return nil, false
	}
	outIsX := !xOut.IsZero()
	outIsY := !yOut.IsZero()
	if outIsX == outIsY {
		logging.GetLogger().Warnw("liquidswap: ambiguous swap direction", "x_out", p.XOut, "y_out", p.YOut)
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
		Protocol:         "liquidswap",
		PoolID:           tokenX + "/" + tokenY,
		FromToken:        fromToken,
		ToToken:          toToken,
		AmountInRaw:      amountIn,
		AmountOutRaw:     amountOut,
		FeeKind:          swap.FeeNone,
		TimestampSeconds: txn.TimestampSeconds,
	}, true
}
