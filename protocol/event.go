package protocol

import (
	"fmt"
	"strings"
	"sync"
)

// EventKind discriminates the single flat Event struct below, mirroring
// the matching core's one-struct-per-log-line style: one pooled value,
// one Kind field, rather than one type per event.
type EventKind uint8

const (
	EventAccept EventKind = iota + 1
	EventReject
	EventAmendAccept
	EventAmendReject
	EventCancelAccept
	EventCancelReject
	EventTrade
	EventSnapshotRow
)

// Side is omitted from the sub-record types below on purpose: a
// SnapshotRow's buy/sell sub-records are positional (id,type,qty,price vs
// price,qty,type,id), so the field's meaning is carried by which side of
// the Event it lives on, not by a tag inside it.
type SnapshotSide struct {
	OrderID   OrderID
	OrderType OrderType
	Quantity  Quantity
	Price     Price
}

// Event is the single carrier for every line the report writer can emit.
// Only the fields relevant to Kind are populated; the rest are zero.
type Event struct {
	Kind EventKind

	OrderID int64 // set for Accept/Reject/Amend*/Cancel* events; left 0 for Trade and SnapshotRow, which carry their ids below
	Code    int
	Message string

	Symbol Symbol

	// Trade fields.
	BuyID         OrderID
	BuyType       OrderType
	BuyQtyBefore  Quantity
	BuyPrice      Price
	SellPrice     Price
	SellQtyBefore Quantity
	SellType      OrderType
	SellID        OrderID

	// SnapshotRow fields.
	Buy  *SnapshotSide
	Sell *SnapshotSide
}

var eventPool = sync.Pool{New: func() any { return new(Event) }}

// AcquireEvent returns a zeroed Event from the pool. Callers that hand an
// Event to something outside the current command's synchronous processing
// (e.g. buffering events across commands) must not call ReleaseEvent until
// they are done rendering it; the report writer renders synchronously, so
// the common path is acquire, populate, render, release.
func AcquireEvent() *Event {
	return eventPool.Get().(*Event)
}

// ReleaseEvent returns an Event to the pool. Do not use e after calling this.
func ReleaseEvent(e *Event) {
	*e = Event{}
	eventPool.Put(e)
}

func NewAccept(id OrderID) *Event {
	e := AcquireEvent()
	e.Kind = EventAccept
	e.OrderID = int64(id)
	return e
}

func NewReject(id OrderID, code int, msg string) *Event {
	e := AcquireEvent()
	e.Kind = EventReject
	e.OrderID = int64(id)
	e.Code = code
	e.Message = msg
	return e
}

func NewAmendAccept(id OrderID) *Event {
	e := AcquireEvent()
	e.Kind = EventAmendAccept
	e.OrderID = int64(id)
	return e
}

func NewAmendReject(id OrderID, code int, msg string) *Event {
	e := AcquireEvent()
	e.Kind = EventAmendReject
	e.OrderID = int64(id)
	e.Code = code
	e.Message = msg
	return e
}

func NewCancelAccept(id OrderID) *Event {
	e := AcquireEvent()
	e.Kind = EventCancelAccept
	e.OrderID = int64(id)
	return e
}

func NewCancelReject(id OrderID, code int, msg string) *Event {
	e := AcquireEvent()
	e.Kind = EventCancelReject
	e.OrderID = int64(id)
	e.Code = code
	e.Message = msg
	return e
}

func NewTrade(symbol Symbol, buyID OrderID, buyType OrderType, buyQtyBefore Quantity, buyPrice Price,
	sellPrice Price, sellQtyBefore Quantity, sellType OrderType, sellID OrderID) *Event {
	e := AcquireEvent()
	e.Kind = EventTrade
	e.Symbol = symbol
	e.BuyID = buyID
	e.BuyType = buyType
	e.BuyQtyBefore = buyQtyBefore
	e.BuyPrice = buyPrice
	e.SellPrice = sellPrice
	e.SellQtyBefore = sellQtyBefore
	e.SellType = sellType
	e.SellID = sellID
	return e
}

func NewSnapshotRow(symbol Symbol, buy, sell *SnapshotSide) *Event {
	e := AcquireEvent()
	e.Kind = EventSnapshotRow
	e.Symbol = symbol
	e.Buy = buy
	e.Sell = sell
	return e
}

// Render produces the exact wire line for e, per the formats in §6.
func (e *Event) Render() string {
	switch e.Kind {
	case EventAccept:
		return fmt.Sprintf("%d - Accept", e.OrderID)
	case EventReject:
		return fmt.Sprintf("%d - Reject - %d - %s", e.OrderID, e.Code, e.Message)
	case EventAmendAccept:
		return fmt.Sprintf("%d - AmmendAccept", e.OrderID)
	case EventAmendReject:
		return fmt.Sprintf("%d - AmmendReject - %d - %s", e.OrderID, e.Code, e.Message)
	case EventCancelAccept:
		return fmt.Sprintf("%d - CancelAccept", e.OrderID)
	case EventCancelReject:
		return fmt.Sprintf("%d - CancelReject - %d - %s", e.OrderID, e.Code, e.Message)
	case EventTrade:
		return fmt.Sprintf("%s|%d,%s,%d,%s|%s,%d,%s,%d",
			e.Symbol, e.BuyID, e.BuyType, e.BuyQtyBefore, e.BuyPrice,
			e.SellPrice, e.SellQtyBefore, e.SellType, e.SellID)
	case EventSnapshotRow:
		var buyField, sellField string
		if e.Buy != nil {
			buyField = fmt.Sprintf("%d,%s,%d,%s", e.Buy.OrderID, e.Buy.OrderType, e.Buy.Quantity, e.Buy.Price)
		}
		if e.Sell != nil {
			sellField = fmt.Sprintf("%s,%d,%s,%d", e.Sell.Price, e.Sell.Quantity, e.Sell.OrderType, e.Sell.OrderID)
		}
		return strings.Join([]string{string(e.Symbol), buyField, sellField}, "|")
	default:
		return ""
	}
}
