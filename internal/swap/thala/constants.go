// Package thala implements the swap.Extractor for Thala Labs' pool::SwapEvent.
package thala

const (
	// SwapEventType is Thala's fully-qualified swap event type.
	SwapEventType = "0x7730cd28ee1cdc9e999336cbc430f99e7c44397c0aa77516f6f23a78559bb5::pool::SwapEvent"
)
