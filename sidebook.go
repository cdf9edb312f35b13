package match

import (
	"github.com/coredepth/matchcore/structure"
)

// SideBook is a bounded collection of Orders belonging to one symbol and
// one side (§3, §4.2). Active orders form a min-max heap (best order at
// index 0 of the active slice); inactive (terminal) orders are retained
// in a separate append-only slice so as-of queries can still see
// historical fills and cancellations. The spec's single-array
// active/inactive/free layout and this two-slice layout are explicitly
// declared equivalent ("the min-max layout is not observable") provided
// every operation below holds its contract — two slices avoid the
// in-place array-shifting an insert into a single shared array would
// otherwise require whenever inactive orders already occupy the slot
// being appended into.
type SideBook struct {
	side     Side
	capacity int

	active   []*Order
	inactive []*Order

	// slot indexes active orders only, per the Design Notes' suggestion
	// ("an index (id -> slot, maintained through swaps) reduces amend/
	// cancel to O(log N)"). Amend and cancel_by_id only ever address
	// active orders (§4.2 says "linear scan over active region"), so an
	// inactive order needs no map entry once it leaves the active slice.
	slot map[OrderID]int
}

// NewSideBook constructs an empty SideBook bounded at capacity orders
// (active + inactive combined).
func NewSideBook(side Side, capacity int) *SideBook {
	return &SideBook{
		side:     side,
		capacity: capacity,
		slot:     make(map[OrderID]int),
	}
}

// structure.Interface, over the active slice only.

func (sb *SideBook) Len() int { return len(sb.active) }

func (sb *SideBook) Less(i, j int) bool {
	return sb.better(sb.active[i], sb.active[j])
}

func (sb *SideBook) Swap(i, j int) {
	sb.active[i], sb.active[j] = sb.active[j], sb.active[i]
	sb.slot[sb.active[i].ID] = i
	sb.slot[sb.active[j].ID] = j
}

// better reports whether a has higher price-time priority than b under
// this side's comparator (§4.2).
func (sb *SideBook) better(a, b *Order) bool {
	pa, pb := a.Current().Price, b.Current().Price
	if pa != pb {
		if sb.side == Buy {
			return pa > pb
		}
		return pa < pb
	}
	return a.ArrivalTimestamp() < b.ArrivalTimestamp()
}

// Insert appends order at the end of the active region and sifts it up
// (§4.2). Returns ErrCapacityExceeded if the book is full.
func (sb *SideBook) Insert(order *Order) error {
	if len(sb.active)+len(sb.inactive) >= sb.capacity {
		return ErrCapacityExceeded
	}
	idx := len(sb.active)
	sb.active = append(sb.active, order)
	sb.slot[order.ID] = idx
	structure.PushUp(sb, idx)
	return nil
}

// Top returns the best active order, or nil if the book is empty.
func (sb *SideBook) Top() *Order {
	if len(sb.active) == 0 {
		return nil
	}
	return sb.active[0]
}

// deactivate moves the order at active index i out of the heap: swap with
// the last active slot, shrink the active slice, and retain the removed
// order in the inactive slice. Returns the removed order.
func (sb *SideBook) deactivate(i int) *Order {
	last := len(sb.active) - 1
	sb.Swap(i, last)
	removed := sb.active[last]
	sb.active = sb.active[:last]
	delete(sb.slot, removed.ID)
	sb.inactive = append(sb.inactive, removed)
	return removed
}

// RemoveTop removes and returns the best active order (§4.2): swap root
// with the last active slot, shrink, then sift-down from the root.
func (sb *SideBook) RemoveTop() *Order {
	if len(sb.active) == 0 {
		return nil
	}
	removed := sb.deactivate(0)
	if len(sb.active) > 0 {
		structure.PushDown(sb, 0)
	}
	return removed
}

// Amend rewrites the order's price/quantity in place and restores heap
// order by sifting down then up from its index (§4.2). Returns
// OrderDoesNotExist if id is not active in this SideBook.
func (sb *SideBook) Amend(id OrderID, newPrice Price, newQty Quantity) error {
	idx, ok := sb.slot[id]
	if !ok {
		return errOrderDoesNotExist()
	}
	sb.active[idx].Amend(newPrice, newQty)
	structure.Fix(sb, idx)
	return nil
}

// CancelByID cancels the active order id at time t and removes it from
// the heap by swap-with-last and sift-down (§4.2). Returns
// OrderDoesNotExist if id is not active in this SideBook.
func (sb *SideBook) CancelByID(id OrderID, t Timestamp) error {
	idx, ok := sb.slot[id]
	if !ok {
		return errOrderDoesNotExist()
	}
	order := sb.active[idx]
	order.Cancel(t)
	sb.deactivate(idx)
	if idx < len(sb.active) {
		structure.PushDown(sb, idx)
	}
	return nil
}

// ApplyFill records a fill of filledQty against the active order id at
// time t (§4.2). If the order becomes fully filled it is removed from the
// heap (a sift-down from the root if it was the root, a heapify-from-i
// otherwise); if it remains partially filled, a heapify-from-i restores
// order in case price priority changed via an intervening amend. Returns
// OrderDoesNotExist if id is not active in this SideBook.
func (sb *SideBook) ApplyFill(id OrderID, filledQty Quantity, t Timestamp) error {
	idx, ok := sb.slot[id]
	if !ok {
		return errOrderDoesNotExist()
	}
	order := sb.active[idx]
	remaining := order.Current().QuantityRemaining - filledQty
	order.PartialFill(t, remaining)

	if !order.IsActive() {
		sb.deactivate(idx)
		if idx < len(sb.active) {
			if idx == 0 {
				structure.PushDown(sb, idx)
			} else {
				structure.Fix(sb, idx)
			}
		}
		return nil
	}

	if idx == 0 {
		structure.PushDown(sb, idx)
	} else {
		structure.Fix(sb, idx)
	}
	return nil
}

// CancelAllWhere cancels every active order for which pred returns true,
// at time t. Used by SymbolBook.Match to sweep non-resting order types (Market,
// IOC) off the book once a Match command leaves them unable to cross any
// further (SPEC_FULL.md §11): collecting ids first, since CancelByID
// mutates the active slice via swap-with-last and would otherwise disturb
// an in-progress scan.
func (sb *SideBook) CancelAllWhere(t Timestamp, pred func(*Order) bool) {
	var victims []OrderID
	for _, o := range sb.active {
		if pred(o) {
			victims = append(victims, o.ID)
		}
	}
	for _, id := range victims {
		_ = sb.CancelByID(id, t)
	}
}

// TopNAsOf returns up to n orders active at time t, in priority order,
// scanning the full retained region (§4.2). Implemented as a bounded
// insertion sort of size n: O(m*n), m = retained size.
func (sb *SideBook) TopNAsOf(t Timestamp, n int) []*Order {
	result := make([]*Order, 0, n)
	consider := func(o *Order) {
		if !o.IsActiveAt(t) {
			return
		}
		pos := len(result)
		for pos > 0 && sb.betterAsOf(o, result[pos-1], t) {
			pos--
		}
		if pos >= n {
			return
		}
		result = append(result, nil)
		copy(result[pos+1:], result[pos:len(result)-1])
		result[pos] = o
		if len(result) > n {
			result = result[:n]
		}
	}
	for _, o := range sb.active {
		consider(o)
	}
	for _, o := range sb.inactive {
		consider(o)
	}
	return result
}

// betterAsOf is the same comparator as better, but evaluated against the
// AsOf(t) record rather than the current one, for historical ranking.
func (sb *SideBook) betterAsOf(a, b *Order, t Timestamp) bool {
	pa, pb := a.AsOf(t).Price, b.AsOf(t).Price
	if pa != pb {
		if sb.side == Buy {
			return pa > pb
		}
		return pa < pb
	}
	return a.ArrivalTimestamp() < b.ArrivalTimestamp()
}
