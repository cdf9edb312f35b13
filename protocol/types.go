// Package protocol defines the command and event vocabulary exchanged
// between the parser, the matching core, and the report writer. Nothing in
// this package performs matching; it only names the wire-level shapes.
package protocol

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a non-negative amount with exactly two fractional digits,
// represented as a scaled int64 (cents) so equality and ordering are exact
// integer comparisons. Use ParsePrice to build one from decimal text.
type Price int64

// ParsePrice parses a decimal literal with at most two fractional digits
// and no sign into a Price. It rejects negative values and finer-grained
// fractions, both of which would lose information once scaled to cents.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("protocol: invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("protocol: negative price %q", s)
	}
	scaled := d.Shift(2)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("protocol: price %q has more than two fractional digits", s)
	}
	return Price(scaled.IntPart()), nil
}

// String renders the price with exactly two fractional digits, per §6.
func (p Price) String() string {
	return decimal.New(int64(p), -2).StringFixed(2)
}

// Quantity is a remaining order size; zero means fully filled.
type Quantity uint64

// Timestamp is monotonically non-decreasing across the command stream.
type Timestamp uint64

// OrderID uniquely identifies an order across the engine's lifetime.
type OrderID uint64

// Symbol is 1-4 uppercase ASCII letters.
type Symbol string

// Side is the order side.
type Side int8

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return "?"
	}
}

// OrderType is the order type tag. All three types cross the same way
// during a Match; afterwards any Market or IOC order still active is
// cancelled, so they never rest (see SymbolBook.Match).
type OrderType int8

const (
	Limit OrderType = iota + 1
	Market
	IOC
)

// String renders the single-letter wire tag used in events (§6).
func (t OrderType) String() string {
	switch t {
	case Market:
		return "M"
	case Limit:
		return "L"
	case IOC:
		return "I"
	default:
		return "?"
	}
}

// ExecutionStatus is the lifecycle state of an order, recorded in each
// AlterationRecord.
type ExecutionStatus int8

const (
	NotExecuted ExecutionStatus = iota + 1
	PartiallyExecuted
	Executed
	Cancelled
)

func (s ExecutionStatus) String() string {
	switch s {
	case NotExecuted:
		return "NotExecuted"
	case PartiallyExecuted:
		return "PartiallyExecuted"
	case Executed:
		return "Executed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Action identifies which sub-form of Command is carried.
type Action uint8

const (
	ActionNew Action = iota + 1
	ActionAmend
	ActionCancel
	ActionMatch
	ActionQuery
)

// Format disambiguates the sub-form of a Match or Query command, per §6's
// "format tag" field. For New/Amend/Cancel, FormatDefault is the only
// legal value.
type Format uint8

const (
	FormatDefault Format = iota
	FormatGlobal         // Match or Query with no symbol/timestamp qualifier
	FormatSymbol         // Query/Match qualified by symbol only
	FormatAsOf           // Query qualified by timestamp only
	FormatSymbolAsOf     // Query qualified by symbol and timestamp
)

// Error codes from §6/§7.
const (
	CodeInvalidAmendmentDetails = 101
	CodeInvalidOrderDetails     = 303
	CodeOrderDoesNotExist       = 404
)
