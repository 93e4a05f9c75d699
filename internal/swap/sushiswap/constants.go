// Package sushiswap implements the swap.Extractor for SushiSwap's
// swap::SwapEvent.
package sushiswap

const (
	// ModuleAddress is the fixed SushiSwap module address; event-type
	// dispatch matches on this prefix (a substring match, not equality —
	// see dexcoin.ContainsFold for the same looseness applied elsewhere).
	ModuleAddress = "0x31a6675cbe84365bf2b0cbce617ece6c47023ef70826533bde5203d32171dc3c"
)
