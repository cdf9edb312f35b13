package match

import (
	"testing"

	"github.com/coredepth/matchcore/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderCmd(t *testing.T, id OrderID, ts Timestamp, symbol Symbol, side Side, price string, qty Quantity) protocol.Command {
	t.Helper()
	return protocol.Command{
		Action: protocol.ActionNew, OrderID: id, Timestamp: ts, Symbol: symbol,
		Side: side, OrderType: Limit, Price: mustPrice(t, price), Quantity: qty,
	}
}

func amendCmd(t *testing.T, id OrderID, ts Timestamp, symbol Symbol, side Side, price string, qty Quantity) protocol.Command {
	t.Helper()
	return protocol.Command{
		Action: protocol.ActionAmend, OrderID: id, Timestamp: ts, Symbol: symbol,
		Side: side, OrderType: Limit, Price: mustPrice(t, price), Quantity: qty,
	}
}

func cancelCmd(id OrderID, ts Timestamp) protocol.Command {
	return protocol.Command{Action: protocol.ActionCancel, OrderID: id, Timestamp: ts}
}

func matchCmd(ts Timestamp) protocol.Command {
	return protocol.Command{Action: protocol.ActionMatch, Format: protocol.FormatGlobal, Timestamp: ts}
}

func render(events []*protocol.Event) []string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, e.Render())
	}
	return lines
}

// Scenario 1: simple non-cross.
func TestEngine_SimpleCrossScenario(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 1, "AB", Buy, "104.53", 100))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 2, 2, "AB", Sell, "105.53", 100))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 3, 3, "AB", Buy, "104.53", 90))
	require.NoError(t, err)

	events, err := e.Process(matchCmd(4))
	require.NoError(t, err)
	assert.Empty(t, events, "104.53 < 105.53, no cross")
}

// Scenario 2: cross after new sell and an amend.
func TestEngine_CrossAfterNewSellAndAmend(t *testing.T) {
	e := New()
	mustProcess := func(cmd protocol.Command) []*protocol.Event {
		events, err := e.Process(cmd)
		require.NoError(t, err)
		return events
	}
	mustProcess(newOrderCmd(t, 1, 1, "AB", Buy, "104.53", 100))
	mustProcess(newOrderCmd(t, 2, 2, "AB", Sell, "105.53", 100))
	mustProcess(newOrderCmd(t, 3, 3, "AB", Buy, "104.53", 90))
	mustProcess(matchCmd(4))
	mustProcess(newOrderCmd(t, 4, 5, "AB", Sell, "104.43", 80))
	mustProcess(amendCmd(t, 2, 6, "AB", Sell, "104.42", 100))

	events := mustProcess(matchCmd(8))
	lines := render(events)
	require.Len(t, lines, 2)
	assert.Equal(t, "AB|1,L,100,104.53|104.42,100,L,2", lines[0])
	assert.Equal(t, "AB|3,L,90,104.53|104.43,80,L,4", lines[1])
}

// Scenario 3: cancel unknown id.
func TestEngine_CancelUnknownID(t *testing.T) {
	e := New()
	events, err := e.Process(cancelCmd(999, 10))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "999 - CancelReject - 404 - Order does not exist", events[0].Render())
}

// Scenario 4: monotonic rejection.
func TestEngine_MonotonicRejection(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 5, "AB", Buy, "10.00", 1))
	require.NoError(t, err)

	events, err := e.Process(newOrderCmd(t, 2, 3, "AB", Sell, "9.00", 1))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2 - Reject - 303 - timestamp regressed", events[0].Render())
}

// Scenario 5: global query ordering.
func TestEngine_GlobalQueryOrdering(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 1, "ALN", Buy, "10.00", 1))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 2, 2, "ALB", Buy, "10.00", 1))
	require.NoError(t, err)

	events, err := e.Process(protocol.Command{Action: protocol.ActionQuery, Format: protocol.FormatGlobal})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Contains(t, events[0].Render(), "ALB")
	assert.Contains(t, events[1].Render(), "ALN")
}

// Scenario 6: as-of query.
func TestEngine_AsOfQuery(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 1, "SYM", Buy, "10.00", 5))
	require.NoError(t, err)
	_, err = e.Process(amendCmd(t, 1, 3, "SYM", Buy, "11.00", 5))
	require.NoError(t, err)

	before, err := e.Process(protocol.Command{Action: protocol.ActionQuery, Format: protocol.FormatSymbolAsOf, Symbol: "SYM", Timestamp: 2})
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Contains(t, before[0].Render(), "10.00")

	after, err := e.Process(protocol.Command{Action: protocol.ActionQuery, Format: protocol.FormatSymbolAsOf, Symbol: "SYM", Timestamp: 4})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Contains(t, after[0].Render(), "11.00")
}

// P4: round-trip fill conservation. Total quantity filled on the buy side
// must equal total quantity filled on the sell side once quiescent: for
// each order that participated, filled = its initial quantity (the first
// history record) minus its quantity remaining now.
func TestEngine_RoundTripFillConservation(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 1, "AB", Buy, "10.00", 100))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 2, 2, "AB", Sell, "10.00", 60))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 3, 3, "AB", Sell, "10.00", 40))
	require.NoError(t, err)

	events, err := e.Process(matchCmd(4))
	require.NoError(t, err)
	require.Len(t, events, 2)

	book := e.directory.Lookup("AB")
	require.NotNil(t, book)

	filled := func(sb *SideBook) uint64 {
		var total uint64
		for _, o := range append(append([]*Order{}, sb.active...), sb.inactive...) {
			initial := o.history[0].QuantityRemaining
			total += uint64(initial) - uint64(o.Current().QuantityRemaining)
		}
		return total
	}

	buyFilled := filled(book.Buys)
	sellFilled := filled(book.Sells)
	assert.Equal(t, buyFilled, sellFilled, "quantity filled on buys must equal quantity filled on sells")
	assert.Equal(t, uint64(100), buyFilled)
}

// P5: idempotence.
func TestEngine_IdempotentMatchAtQuiescence(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 1, "AB", Buy, "10.00", 10))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 2, 2, "AB", Sell, "10.00", 10))
	require.NoError(t, err)

	first, err := e.Process(matchCmd(3))
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := e.Process(matchCmd(3))
	require.NoError(t, err)
	assert.Empty(t, second)
}

// P6: cancel then match ignores the cancelled order.
func TestEngine_CancelThenMatchIgnoresCancelled(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 1, "AB", Buy, "10.00", 10))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 2, 2, "AB", Sell, "10.00", 10))
	require.NoError(t, err)
	_, err = e.Process(cancelCmd(2, 3))
	require.NoError(t, err)

	events, err := e.Process(matchCmd(4))
	require.NoError(t, err)
	assert.Empty(t, events)
}

// P7: amend preserves id and arrival priority.
func TestEngine_AmendPreservesArrivalPriority(t *testing.T) {
	e := New()
	_, err := e.Process(newOrderCmd(t, 1, 1, "AB", Sell, "10.00", 10))
	require.NoError(t, err)
	_, err = e.Process(newOrderCmd(t, 2, 2, "AB", Sell, "9.00", 10))
	require.NoError(t, err)
	_, err = e.Process(amendCmd(t, 1, 3, "AB", Sell, "9.00", 10))
	require.NoError(t, err)

	book := e.directory.Lookup("AB")
	require.NotNil(t, book)
	assert.Equal(t, OrderID(1), book.Sells.Top().ID, "#1 arrived first (t=1) and keeps that priority at the tied price")
}

func TestEngine_MarketAndIOCNeverRest(t *testing.T) {
	e := New()
	_, err := e.Process(protocol.Command{
		Action: protocol.ActionNew, OrderID: 1, Timestamp: 1, Symbol: "AB",
		Side: Sell, OrderType: Limit, Price: mustPrice(t, "10.00"), Quantity: 5,
	})
	require.NoError(t, err)
	_, err = e.Process(protocol.Command{
		Action: protocol.ActionNew, OrderID: 2, Timestamp: 2, Symbol: "AB",
		Side: Buy, OrderType: IOC, Price: mustPrice(t, "9.00"), Quantity: 5,
	})
	require.NoError(t, err)

	events, err := e.Process(matchCmd(3))
	require.NoError(t, err)
	assert.Empty(t, events, "IOC at 9.00 cannot cross a 10.00 ask")

	book := e.directory.Lookup("AB")
	require.NotNil(t, book)
	assert.Nil(t, book.Buys.Top(), "unfilled IOC must not rest")
	assert.NotNil(t, book.Sells.Top(), "the resting limit sell is untouched")
}
