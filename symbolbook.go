package match

import "github.com/coredepth/matchcore/protocol"

// SymbolBook holds the buy and sell SideBooks for one symbol (§3, §4.3).
type SymbolBook struct {
	Symbol Symbol
	Buys   *SideBook
	Sells  *SideBook
}

// NewSymbolBook constructs an empty SymbolBook with the given per-side
// capacity.
func NewSymbolBook(symbol Symbol, capacity int) *SymbolBook {
	return &SymbolBook{
		Symbol: symbol,
		Buys:   NewSideBook(Buy, capacity),
		Sells:  NewSideBook(Sell, capacity),
	}
}

func (sb *SymbolBook) sideBook(side Side) *SideBook {
	if side == Buy {
		return sb.Buys
	}
	return sb.Sells
}

// Add routes order into the correct SideBook (§4.3).
func (sb *SymbolBook) Add(order *Order, side Side) error {
	return sb.sideBook(side).Insert(order)
}

// Amend routes an amendment to the correct SideBook (§4.3).
func (sb *SymbolBook) Amend(side Side, id OrderID, price Price, qty Quantity) error {
	return sb.sideBook(side).Amend(id, price, qty)
}

// Cancel routes a cancellation to the correct SideBook (§4.3).
func (sb *SymbolBook) Cancel(side Side, id OrderID, t Timestamp) error {
	return sb.sideBook(side).CancelByID(id, t)
}

// Match runs the matching loop at time t, appending each resulting Trade
// event to events, and returns the extended slice (§4.3). The loop
// terminates because every iteration strictly shrinks at least one
// SideBook's active region or reduces remaining quantity on both sides
// while the cross condition persists — in which case one side must
// eventually fully fill.
func (sb *SymbolBook) Match(t Timestamp, events []*protocol.Event) []*protocol.Event {
	events = sb.cross(t, events)
	// Market and IOC never rest (SPEC_FULL.md §11): once no further cross
	// is possible, any of them still active are removed from the book.
	// Limit orders are left resting, unchanged.
	nonResting := func(o *Order) bool { return o.Type != Limit }
	sb.Buys.CancelAllWhere(t, nonResting)
	sb.Sells.CancelAllWhere(t, nonResting)
	return events
}

// cross runs the price-time priority crossing loop until quiescent (§4.3).
func (sb *SymbolBook) cross(t Timestamp, events []*protocol.Event) []*protocol.Event {
	for {
		b := sb.Buys.Top()
		s := sb.Sells.Top()
		if b == nil || s == nil {
			return events
		}
		bCur, sCur := b.Current(), s.Current()
		if bCur.Price < sCur.Price {
			return events
		}

		tradeQty := bCur.QuantityRemaining
		if sCur.QuantityRemaining < tradeQty {
			tradeQty = sCur.QuantityRemaining
		}

		events = append(events, protocol.NewTrade(
			sb.Symbol,
			b.ID, b.Type, bCur.QuantityRemaining, bCur.Price,
			sCur.Price, sCur.QuantityRemaining, s.Type, s.ID,
		))

		// Errors are impossible here: b and s were just returned as the
		// active tops of their own SideBooks.
		_ = sb.Buys.ApplyFill(b.ID, tradeQty, t)
		_ = sb.Sells.ApplyFill(s.ID, tradeQty, t)
	}
}

// Snapshot emits up to SnapshotDepth ranked rows as of time t (§4.3). Each
// row pairs a buy sub-record (if any) at that rank with a sell sub-record
// (if any) at that rank; the row count is max(len(buyRows), len(sellRows)).
func (sb *SymbolBook) Snapshot(t Timestamp) []*protocol.Event {
	buys := sb.Buys.TopNAsOf(t, SnapshotDepth)
	sells := sb.Sells.TopNAsOf(t, SnapshotDepth)

	n := len(buys)
	if len(sells) > n {
		n = len(sells)
	}

	rows := make([]*protocol.Event, 0, n)
	for i := 0; i < n; i++ {
		var buySide, sellSide *protocol.SnapshotSide
		if i < len(buys) {
			rec := buys[i].AsOf(t)
			buySide = &protocol.SnapshotSide{
				OrderID: buys[i].ID, OrderType: buys[i].Type,
				Quantity: rec.QuantityRemaining, Price: rec.Price,
			}
		}
		if i < len(sells) {
			rec := sells[i].AsOf(t)
			sellSide = &protocol.SnapshotSide{
				OrderID: sells[i].ID, OrderType: sells[i].Type,
				Quantity: rec.QuantityRemaining, Price: rec.Price,
			}
		}
		rows = append(rows, protocol.NewSnapshotRow(sb.Symbol, buySide, sellSide))
	}
	return rows
}
