package dexcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeNative(t *testing.T) {
	tests := []struct {
		raw  string
		want Coin
	}{
		{"0x1::aptos_coin::AptosCoin", APT},
		{"0xa", APT},
		{"0xbae207659db88bea0cbead6da0ed00aac12edcdda169e591cd41c94180b46f3b", USDC},
		{"0x357b0b74bc833e95a115ad22604854d6b0fca151cecd94111770e5d6ffc9dc2b", USDT},
	}
	for _, tt := range tests {
		got, ok := Canonicalize(tt.raw)
		if !assert.Truef(t, ok, "Canonicalize(%q): expected a match", tt.raw) {
			continue
		}
		assert.Equalf(t, tt.want, got, "Canonicalize(%q)", tt.raw)
	}
}

func TestCanonicalizeWrappedVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want Coin
	}{
		{"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC", USDC},
		{"0x5e156f1207d0ebfa19a9eeff00d62a282278fb8719f4fab3a586a0a2c0fffbea::coin::T", USDC},
		{"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDT", USDT},
		{"0x1f9e145308ba2fbd4737c6a08204087f29f5d6bb7d76969cdd79d5fc95e0ae3::coin::T", USDT},
		{"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::WETH", WETH},
		{"0xcc8a89c8dce9693d354449f1f73e60e14e347417854f029db5bc8e7454008abb::coin::T", WETH},
	}
	for _, tt := range tests {
		got, ok := Canonicalize(tt.raw)
		assert.Truef(t, ok, "Canonicalize(%q): expected a match", tt.raw)
		assert.Equalf(t, tt.want, got, "Canonicalize(%q)", tt.raw)
	}
}

func TestCanonicalizeSubstringFallback(t *testing.T) {
	got, ok := Canonicalize("0xdeadbeef::unknown_bridge::usdc_coin")
	assert.True(t, ok)
	assert.Equal(t, USDC, got)
}

func TestCanonicalizeUnknown(t *testing.T) {
	_, ok := Canonicalize("0xdeadbeef::unknown::Token")
	assert.False(t, ok, "expected no match for an unrelated identifier")
}

func TestDecimals(t *testing.T) {
	tests := map[Coin]uint8{
		APT:  8,
		USDC: 6,
		USDT: 6,
		WETH: 6,
	}
	for coin, want := range tests {
		assert.Equalf(t, want, Decimals(coin), "Decimals(%s)", coin)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("0xabc::asset::USDC", "usdc"), "expected case-insensitive match")
	assert.False(t, ContainsFold("0xabc::asset::APT", "usdc"), "expected no match")
}
