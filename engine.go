package match

import (
	"github.com/coredepth/matchcore/protocol"
)

// Engine is the single-threaded command dispatcher (§4.5). Process is a
// plain synchronous method: no goroutines, no channels, one command in,
// zero or more events out, per §5's scheduling model.
type Engine struct {
	directory     *SymbolDirectory
	lastTimestamp Timestamp
	opts          engineOptions
}

// New constructs an Engine. See Option for configurable behavior.
func New(options ...Option) *Engine {
	opts := defaultEngineOptions()
	for _, opt := range options {
		opt(&opts)
	}
	return &Engine{
		directory: NewSymbolDirectory(opts.sideBookCapacity),
		opts:      opts,
	}
}

// Process dispatches cmd and returns the events it produced. An error is
// returned only for the Fatal condition (§7): SideBook capacity exceeded
// (the symbol directory has no capacity bound). A New/Amend/Cancel failure
// is translated to the matching Reject/AmendReject/CancelReject event and
// returned with a nil error; a Match whose timestamp regressed produces no
// events and no state change.
func (e *Engine) Process(cmd protocol.Command) ([]*protocol.Event, error) {
	correlationID := newCorrelationID()

	switch cmd.Action {
	case protocol.ActionNew:
		return e.processNew(cmd, correlationID)
	case protocol.ActionAmend:
		return e.processAmend(cmd, correlationID)
	case protocol.ActionCancel:
		return e.processCancel(cmd, correlationID)
	case protocol.ActionMatch:
		return e.processMatch(cmd, correlationID)
	case protocol.ActionQuery:
		return e.processQuery(cmd), nil
	default:
		return nil, nil
	}
}

// enforceMonotonic implements I1 for commands that advance the stream
// (New/Amend/Cancel/Match). Query never advances or is subject to this
// check: its timestamp, when present, names a point to look back at, not
// a position in the stream.
func (e *Engine) enforceMonotonic(t Timestamp) bool {
	return t >= e.lastTimestamp
}

func (e *Engine) advance(t Timestamp) {
	e.lastTimestamp = t
}

func (e *Engine) processNew(cmd protocol.Command, correlationID string) ([]*protocol.Event, error) {
	if !e.enforceMonotonic(cmd.Timestamp) {
		logger.Warn("new order rejected: timestamp regressed", "correlation_id", correlationID, "order_id", cmd.OrderID)
		coded := errInvalidOrderDetails("timestamp regressed")
		return []*protocol.Event{protocol.NewReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}
	if _, exists := e.directory.SymbolOf(cmd.OrderID); exists {
		coded := errInvalidOrderDetails("duplicate order id")
		return []*protocol.Event{protocol.NewReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}

	book := e.directory.GetOrCreate(cmd.Symbol)
	order := NewOrder(cmd.OrderID, cmd.OrderType, cmd.Timestamp, cmd.Price, cmd.Quantity)
	if err := book.Add(order, cmd.Side); err != nil {
		return nil, err
	}
	e.directory.Record(cmd.OrderID, cmd.Symbol)
	e.advance(cmd.Timestamp)

	logger.Info("new order accepted", "correlation_id", correlationID, "order_id", cmd.OrderID, "symbol", cmd.Symbol)
	return []*protocol.Event{protocol.NewAccept(cmd.OrderID)}, nil
}

func (e *Engine) processAmend(cmd protocol.Command, correlationID string) ([]*protocol.Event, error) {
	if !e.enforceMonotonic(cmd.Timestamp) {
		coded := errInvalidOrderDetails("timestamp regressed")
		return []*protocol.Event{protocol.NewAmendReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}

	symbol, ok := e.directory.SymbolOf(cmd.OrderID)
	if !ok {
		coded := errOrderDoesNotExist()
		return []*protocol.Event{protocol.NewAmendReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}
	book := e.directory.Lookup(symbol)
	if book == nil {
		coded := errOrderDoesNotExist()
		return []*protocol.Event{protocol.NewAmendReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}

	if err := book.Amend(cmd.Side, cmd.OrderID, cmd.Price, cmd.Quantity); err != nil {
		if coded, ok := asCoded(err); ok {
			return []*protocol.Event{protocol.NewAmendReject(cmd.OrderID, coded.Code, coded.Message)}, nil
		}
		return nil, err
	}
	e.advance(cmd.Timestamp)

	logger.Info("amend accepted", "correlation_id", correlationID, "order_id", cmd.OrderID)
	return []*protocol.Event{protocol.NewAmendAccept(cmd.OrderID)}, nil
}

func (e *Engine) processCancel(cmd protocol.Command, correlationID string) ([]*protocol.Event, error) {
	if !e.enforceMonotonic(cmd.Timestamp) {
		coded := errInvalidOrderDetails("timestamp regressed")
		return []*protocol.Event{protocol.NewCancelReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}

	symbol, ok := e.directory.SymbolOf(cmd.OrderID)
	if !ok {
		coded := errOrderDoesNotExist()
		return []*protocol.Event{protocol.NewCancelReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}
	book := e.directory.Lookup(symbol)
	if book == nil {
		coded := errOrderDoesNotExist()
		return []*protocol.Event{protocol.NewCancelReject(cmd.OrderID, coded.Code, coded.Message)}, nil
	}

	// Cancel needs a side; the directory does not track it, so try both —
	// exactly one will ever succeed since an id belongs to one SideBook.
	err := book.Cancel(Buy, cmd.OrderID, cmd.Timestamp)
	if err != nil {
		err = book.Cancel(Sell, cmd.OrderID, cmd.Timestamp)
	}
	if err != nil {
		if coded, ok := asCoded(err); ok {
			return []*protocol.Event{protocol.NewCancelReject(cmd.OrderID, coded.Code, coded.Message)}, nil
		}
		return nil, err
	}
	e.advance(cmd.Timestamp)

	logger.Info("cancel accepted", "correlation_id", correlationID, "order_id", cmd.OrderID)
	return []*protocol.Event{protocol.NewCancelAccept(cmd.OrderID)}, nil
}

func (e *Engine) processMatch(cmd protocol.Command, correlationID string) ([]*protocol.Event, error) {
	if !e.enforceMonotonic(cmd.Timestamp) {
		return nil, nil
	}

	var events []*protocol.Event
	switch cmd.Format {
	case protocol.FormatSymbol:
		if book := e.directory.Lookup(cmd.Symbol); book != nil {
			events = book.Match(cmd.Timestamp, events)
		}
	default: // FormatGlobal
		e.directory.IterSorted(func(book *SymbolBook) bool {
			events = book.Match(cmd.Timestamp, events)
			return true
		})
	}
	e.advance(cmd.Timestamp)

	logger.Info("match run", "correlation_id", correlationID, "trades", len(events))
	return events, nil
}

func (e *Engine) processQuery(cmd protocol.Command) []*protocol.Event {
	at := e.lastTimestamp
	if cmd.Format == protocol.FormatAsOf || cmd.Format == protocol.FormatSymbolAsOf {
		at = cmd.Timestamp
	}

	var events []*protocol.Event
	switch cmd.Format {
	case protocol.FormatSymbol, protocol.FormatSymbolAsOf:
		if book := e.directory.Lookup(cmd.Symbol); book != nil {
			events = append(events, book.Snapshot(at)...)
		}
	default: // FormatGlobal, FormatAsOf
		e.directory.IterSorted(func(book *SymbolBook) bool {
			events = append(events, book.Snapshot(at)...)
			return true
		})
	}
	return events
}

func asCoded(err error) (*CodedError, bool) {
	coded, ok := err.(*CodedError)
	return coded, ok
}
