// Package swap defines the shared record type and extractor interface
// that every protocol-specific swap-event parser implements, plus the
// dispatcher that routes an event to its matching extractor.
package swap

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FeeKind identifies how a Record's fee was sourced, per the three fee
// policies the tracked protocols use.
type FeeKind int

const (
	// FeeNone means the protocol charges no fee SwapRecord can observe
	// (SushiSwap, LiquidSwap).
	FeeNone FeeKind = iota
	// FeeBps means FeeBps is a basis-points rate applied to the
	// normalized input amount (Cellana).
	FeeBps
	// FeeAmount means FeeAmountRaw is an absolute fee already expressed
	// in the input token's raw integer units (Thala, Hyperion).
	FeeAmount
)

// Record is the normalized output of a Protocol Extractor for one
// observed swap event.
type Record struct {
	Protocol         string
	PoolID           string
	FromToken        string
	ToToken          string
	AmountInRaw      decimal.Decimal
	AmountOutRaw     decimal.Decimal
	FeeKind          FeeKind
	FeeBps           int64
	FeeAmountRaw     decimal.Decimal
	TimestampSeconds int64
}

// Event is the minimal read view an Extractor needs of a single
// on-chain event: its fully-qualified type string and its JSON payload.
type Event struct {
	TypeString  string
	JSONPayload string
}

// WriteChange is the minimal read view of a single resource write
// produced by a transaction, used by extractors (Cellana) that must
// cross-reference a sibling resource to resolve a fee.
type WriteChange struct {
	Kind       string
	Address    string
	TypeString string
	JSONData   string
}

// Transaction is the minimal read view an Extractor needs of the
// transaction an event occurred in.
type Transaction struct {
	Version          uint64
	TimestampSeconds int64
	WriteChanges     []WriteChange
}

// Extractor recognizes one protocol's swap-event type and parses its
// payload into a Record.
type Extractor interface {
	// Matches reports whether eventType is this extractor's protocol.
	Matches(eventType string) bool
	// Extract parses evt into a Record. It returns (nil, false) when a
	// mandatory field is missing or unparsable; callers should log and
	// drop the event rather than treat this as fatal.
	Extract(evt Event, txn Transaction) (*Record, bool)
}

// Dispatch scans registry for the first Extractor whose Matches
// reports true for evt's type string, and returns its Extract result.
// Extractor matchers are disjoint by event-type prefix/substring, so
// registry order does not affect the outcome.
func Dispatch(registry []Extractor, evt Event, txn Transaction) (*Record, bool) {
	for _, extractor := range registry {
		if extractor.Matches(evt.TypeString) {
			return extractor.Extract(evt, txn)
		}
	}
	return nil, false
}

// ParseGenericTokenPair extracts the two generic type parameters from
// an event-type string of the form "module::Event<TokenX, TokenY>".
// SushiSwap and LiquidSwap both encode their traded token pair this
// way instead of carrying explicit token fields in the JSON payload.
func ParseGenericTokenPair(typeStr string) (tokenX, tokenY string, ok bool) {
	start := strings.Index(typeStr, "<")
	end := strings.LastIndex(typeStr, ">")
	if start < 0 || end < 0 || end <= start {
		return "", "", false
	}
	parts := strings.Split(typeStr[start+1:end], ",")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
