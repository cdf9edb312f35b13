package match

import "github.com/coredepth/matchcore/protocol"

// Re-exported protocol vocabulary, mirroring the teacher's alias-to-protocol
// pattern so callers of this package never import protocol directly for
// the primitive data model.
type (
	Price           = protocol.Price
	Quantity        = protocol.Quantity
	Timestamp       = protocol.Timestamp
	OrderID         = protocol.OrderID
	Symbol          = protocol.Symbol
	Side            = protocol.Side
	OrderType       = protocol.OrderType
	ExecutionStatus = protocol.ExecutionStatus
)

const (
	Buy  = protocol.Buy
	Sell = protocol.Sell
)

const (
	Limit  = protocol.Limit
	Market = protocol.Market
	IOC    = protocol.IOC
)

const (
	NotExecuted       = protocol.NotExecuted
	PartiallyExecuted = protocol.PartiallyExecuted
	Executed          = protocol.Executed
	Cancelled         = protocol.Cancelled
)

// AlterationRecord is one entry in an Order's history (§3).
type AlterationRecord struct {
	Status            ExecutionStatus
	Timestamp         Timestamp
	Price             Price
	QuantityRemaining Quantity
}

// Order is an append-only history of AlterationRecords (§4.1). The
// history is ordered by non-decreasing timestamp; the current state is
// always the last record.
type Order struct {
	ID      OrderID
	Type    OrderType
	arrival Timestamp // fixed at creation; never advances, including across amend (§4.1)
	history []AlterationRecord
}

// NewOrder initializes an order's history with a single NotExecuted
// record (create, §4.1).
func NewOrder(id OrderID, t OrderType, at Timestamp, price Price, qty Quantity) *Order {
	o := &Order{ID: id, Type: t, arrival: at}
	o.history = append(o.history, AlterationRecord{
		Status:            NotExecuted,
		Timestamp:         at,
		Price:             price,
		QuantityRemaining: qty,
	})
	return o
}

// ArrivalTimestamp returns the order's original admission time, used for
// price-time priority tie-breaking (§4.2's comparator). It never changes,
// including across Amend — that is the very definition of priority
// preservation the spec calls for.
func (o *Order) ArrivalTimestamp() Timestamp {
	return o.arrival
}

// AsOf returns the record in force at time t: the latest record with
// Timestamp <= t. Complexity O(h). If t predates the order's creation, the
// first record is returned; IsActiveAt reports false for such a t.
func (o *Order) AsOf(t Timestamp) AlterationRecord {
	best := o.history[0]
	for _, rec := range o.history {
		if rec.Timestamp > t {
			break
		}
		best = rec
	}
	return best
}

// Current returns the latest record ("as of now").
func (o *Order) Current() AlterationRecord {
	return o.history[len(o.history)-1]
}

// IsActiveAt reports whether the order's status at t is NotExecuted or
// PartiallyExecuted (§4.1). An order is never active before its arrival.
func (o *Order) IsActiveAt(t Timestamp) bool {
	if t < o.arrival {
		return false
	}
	switch o.AsOf(t).Status {
	case NotExecuted, PartiallyExecuted:
		return true
	default:
		return false
	}
}

// IsActive reports IsActiveAt(now): whether the order currently
// participates in matching.
func (o *Order) IsActive() bool {
	switch o.Current().Status {
	case NotExecuted, PartiallyExecuted:
		return true
	default:
		return false
	}
}

// Amend appends a record with the order's current status and timestamp
// preserved, and the new price/quantity applied. An amendment never
// advances the order's arrival timestamp, so price-time priority from the
// original arrival survives (§4.1, and the Open Question resolved in
// SPEC_FULL.md §11).
func (o *Order) Amend(newPrice Price, newQty Quantity) {
	cur := o.Current()
	o.appendHistory(AlterationRecord{
		Status:            cur.Status,
		Timestamp:         cur.Timestamp,
		Price:             newPrice,
		QuantityRemaining: newQty,
	})
}

// PartialFill appends a PartiallyExecuted or Executed record reflecting a
// fill that leaves newQty remaining (§4.1).
func (o *Order) PartialFill(t Timestamp, newQty Quantity) {
	status := PartiallyExecuted
	if newQty == 0 {
		status = Executed
	}
	o.appendHistory(AlterationRecord{
		Status:            status,
		Timestamp:         t,
		Price:             o.Current().Price,
		QuantityRemaining: newQty,
	})
}

// Cancel appends a terminal Cancelled record (§4.1).
func (o *Order) Cancel(t Timestamp) {
	cur := o.Current()
	o.appendHistory(AlterationRecord{
		Status:            Cancelled,
		Timestamp:         t,
		Price:             cur.Price,
		QuantityRemaining: cur.QuantityRemaining,
	})
}

// appendHistory appends rec, coalescing it into the previous record when
// both share a timestamp (AsOf only ever wants the latest record written
// at a given timestamp, so overwriting in place is lossless). §5 permits
// capping history at a fixed length and coalescing older entries, but that
// can only be done losslessly by dropping distinctions below the oldest
// timestamp any future query might still name — which this engine cannot
// bound in advance, so history grows with the number of distinct-timestamp
// alterations an order actually receives rather than with a fixed cap.
func (o *Order) appendHistory(rec AlterationRecord) {
	if n := len(o.history); n > 0 && o.history[n-1].Timestamp == rec.Timestamp {
		o.history[n-1] = rec
		return
	}
	o.history = append(o.history, rec)
}
