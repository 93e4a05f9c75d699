// Package dexcoin implements the canonical coin registry: mapping the
// raw on-chain token identifiers used by each tracked DEX protocol to
// one of a fixed set of canonical coins, and giving each coin its
// decimal count.
package dexcoin

import "strings"

// Coin is one of the closed set of canonical coins this indexer tracks.
type Coin string

const (
	APT  Coin = "APT"
	USDC Coin = "USDC"
	USDT Coin = "USDT"
	WETH Coin = "WETH"
)

var decimals = map[Coin]uint8{
	APT:  8,
	USDC: 6,
	USDT: 6,
	WETH: 6,
}

// Decimals returns the fixed decimal count for a canonical coin. Coins
// outside the closed set return 0.
func Decimals(coin Coin) uint8 {
	return decimals[coin]
}

// identifiers maps every known raw on-chain token identifier, across
// all five tracked protocols, to its canonical coin. Built once at
// package init and never mutated afterward, so lookups need no
// synchronization.
var identifiers = map[string]Coin{
	// APT, native, identical across protocols.
	"0x1::aptos_coin::AptosCoin": APT,
	// Thala's APT coin type is the native "0xa" resource address.
	"0xa": APT,

	// USDC, Cellana/Thala/Hyperion native.
	"0xbae207659db88bea0cbead6da0ed00aac12edcdda169e591cd41c94180b46f3b": USDC,
	// USDT, Cellana/Thala/Hyperion native.
	"0x357b0b74bc833e95a115ad22604854d6b0fca151cecd94111770e5d6ffc9dc2b": USDT,

	// izUSDC (LayerZero-bridged USDC), used by SushiSwap and LiquidSwap.
	"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC": USDC,
	// whUSDC (Wormhole-bridged USDC), used by SushiSwap and LiquidSwap.
	"0x5e156f1207d0ebfa19a9eeff00d62a282278fb8719f4fab3a586a0a2c0fffbea::coin::T": USDC,
	// izUSDT (LayerZero-bridged USDT), used by SushiSwap and LiquidSwap.
	"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDT": USDT,
	// whUSDT (Wormhole-bridged USDT), used by LiquidSwap.
	"0x1f9e145308ba2fbd4737c6a08204087f29f5d6bb7d76969cdd79d5fc95e0ae3::coin::T": USDT,
	// izWETH (LayerZero-bridged WETH), used by SushiSwap and LiquidSwap.
	"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::WETH": WETH,
	// whWETH (Wormhole-bridged WETH), used by LiquidSwap.
	"0xcc8a89c8dce9693d354449f1f73e60e14e347417854f029db5bc8e7454008abb::coin::T": WETH,
}

// Canonicalize maps a raw on-chain token identifier to its canonical
// coin. It first checks the exact-match identifier table, then falls
// back to a case-insensitive substring match against the names USDC,
// USDT and WETH, in that order (so an identifier this registry has
// never seen, but whose module or struct name still mentions one of
// them, still resolves). APT has no substring fallback.
func Canonicalize(rawTokenID string) (Coin, bool) {
	if coin, ok := identifiers[rawTokenID]; ok {
		return coin, true
	}
	switch {
	case ContainsFold(rawTokenID, string(USDC)):
		return USDC, true
	case ContainsFold(rawTokenID, string(USDT)):
		return USDT, true
	case ContainsFold(rawTokenID, string(WETH)):
		return WETH, true
	}
	return "", false
}

// ContainsFold reports whether rawTokenID contains needle, ignoring
// case. It backs the substring-match fallback in Canonicalize.
func ContainsFold(rawTokenID, needle string) bool {
	return strings.Contains(strings.ToUpper(rawTokenID), strings.ToUpper(needle))
}
