// Package hyperion implements the swap.Extractor for Hyperion's
// pool_v3::SwapEventV3.
package hyperion

const (
	// SwapEventType is Hyperion's fully-qualified swap event type.
	SwapEventType = "0x8b4a2c4bb53857c718a04c020b98f8c2e1f99a68b0f57389a8bf5434cd22e05c::pool_v3::SwapEventV3"
)
