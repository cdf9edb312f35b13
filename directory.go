package match

import (
	treemap "github.com/igrmk/treemap/v2"
)

// SymbolDirectory maps symbols to SymbolBooks, keeps the key set in sorted
// order, and routes OrderID to the symbol it was admitted under (§3,
// §4.4). A treemap gives both O(log n) lookup and in-order iteration from
// one structure, so sorted_symbols needs no separate sorted container
// (grounded on the teacher's own use of igrmk/treemap for ordered price
// bookkeeping in aggregated_book.go).
type SymbolDirectory struct {
	books          *treemap.TreeMap[Symbol, *SymbolBook]
	orderToSymbol  map[OrderID]Symbol
	sideBookCapPer int
}

// NewSymbolDirectory constructs an empty directory whose SymbolBooks each
// get sideBookCapacity per side.
func NewSymbolDirectory(sideBookCapacity int) *SymbolDirectory {
	return &SymbolDirectory{
		books:          treemap.New[Symbol, *SymbolBook](),
		orderToSymbol:  make(map[OrderID]Symbol),
		sideBookCapPer: sideBookCapacity,
	}
}

// GetOrCreate returns the SymbolBook for symbol, creating it (and
// inserting symbol into the sorted key set) if absent (§4.4).
func (d *SymbolDirectory) GetOrCreate(symbol Symbol) *SymbolBook {
	if sb, ok := d.books.Get(symbol); ok {
		return sb
	}
	sb := NewSymbolBook(symbol, d.sideBookCapPer)
	d.books.Set(symbol, sb)
	return sb
}

// Lookup returns the SymbolBook for symbol, or nil if none exists (§4.4).
func (d *SymbolDirectory) Lookup(symbol Symbol) *SymbolBook {
	sb, ok := d.books.Get(symbol)
	if !ok {
		return nil
	}
	return sb
}

// SymbolOf returns the symbol where id was admitted, or "" with ok=false
// if it was never recorded (§4.4).
func (d *SymbolDirectory) SymbolOf(id OrderID) (Symbol, bool) {
	sym, ok := d.orderToSymbol[id]
	return sym, ok
}

// Record associates id with symbol, called when a New order is accepted
// (§4.4).
func (d *SymbolDirectory) Record(id OrderID, symbol Symbol) {
	d.orderToSymbol[id] = symbol
}

// IterSorted calls fn for every SymbolBook in ascending symbol order,
// stopping early if fn returns false (§4.4: "lazy sequence ... finite;
// restartable" — a callback iterator gives the same guarantees as a
// restartable generator without needing goroutine-backed iteration).
func (d *SymbolDirectory) IterSorted(fn func(*SymbolBook) bool) {
	for it := d.books.Iterator(); it.Valid(); it.Next() {
		if !fn(it.Value()) {
			return
		}
	}
}
