// Package liquidswap implements the swap.Extractor for LiquidSwap's
// liquidity_pool::SwapEvent.
package liquidswap

const (
	// ModuleAddress is the fixed LiquidSwap module address; event-type
	// dispatch matches on this substring.
	ModuleAddress = "0x190d44266241744264b964a37b8f09863167a12d3e70cda39376cfb4e3561e12"
)
