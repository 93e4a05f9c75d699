// Package cellana implements the swap.Extractor for Cellana Finance's
// liquidity_pool::SwapEvent.
package cellana

const (
	// SwapEventType is Cellana's fully-qualified swap event type.
	SwapEventType = "0x4bf51972879e3b95c4781a5cdcb9e1ee24ef483e7d22f2d903626f126df62bd1::liquidity_pool::SwapEvent"
	// LiquidityPoolType is the resource type an extractor cross-references
	// to find the pool's swap fee in basis points.
	LiquidityPoolType = "0x4bf51972879e3b95c4781a5cdcb9e1ee24ef483e7d22f2d903626f126df62bd1::liquidity_pool::LiquidityPool"

	// DefaultSwapFeeBps is used when a transaction's write-changes don't
	// include a matching LiquidityPool resource.
	DefaultSwapFeeBps = 30
)
