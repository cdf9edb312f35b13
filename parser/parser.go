// Package parser turns one line of the wire command grammar into a
// protocol.Command. The grammar is comma-separated fields keyed off a
// leading action letter, grounded in original_source/OrderInterpreter.h's
// match_command: N(ew), A(mend), X (cancel), M(atch), Q(uery).
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coredepth/matchcore/protocol"
)

// Parse parses one command line. The returned error is always a structural
// parse failure (malformed field count, bad integer, unknown letter); it is
// never a business-rule rejection, which is the Engine's job (§7).
func Parse(line string) (protocol.Command, error) {
	line = strings.TrimSpace(line)
	fields := strings.Split(line, ",")
	if len(fields) == 0 || fields[0] == "" {
		return protocol.Command{}, fmt.Errorf("parser: empty command line")
	}

	switch fields[0] {
	case "N":
		return parseNewOrAmend(protocol.ActionNew, fields)
	case "A":
		return parseNewOrAmend(protocol.ActionAmend, fields)
	case "X":
		return parseCancel(fields)
	case "M":
		return parseMatch(fields)
	case "Q":
		return parseQuery(fields)
	default:
		return protocol.Command{}, fmt.Errorf("parser: unknown action letter %q", fields[0])
	}
}

// parseNewOrAmend handles both N and A: action,order_id,timestamp,symbol,
// type,side,price,qty.
func parseNewOrAmend(action protocol.Action, fields []string) (protocol.Command, error) {
	if len(fields) != 8 {
		return protocol.Command{}, fmt.Errorf("parser: expected 8 fields for New/Amend, got %d", len(fields))
	}
	id, err := parseUint(fields[1], "order id")
	if err != nil {
		return protocol.Command{}, err
	}
	ts, err := parseUint(fields[2], "timestamp")
	if err != nil {
		return protocol.Command{}, err
	}
	symbol, err := parseSymbol(fields[3])
	if err != nil {
		return protocol.Command{}, err
	}
	orderType, err := parseOrderType(fields[4])
	if err != nil {
		return protocol.Command{}, err
	}
	side, err := parseSide(fields[5])
	if err != nil {
		return protocol.Command{}, err
	}
	price, err := protocol.ParsePrice(fields[6])
	if err != nil {
		return protocol.Command{}, fmt.Errorf("parser: %w", err)
	}
	qty, err := parseUint(fields[7], "quantity")
	if err != nil {
		return protocol.Command{}, err
	}
	return protocol.Command{
		Action:    action,
		OrderID:   protocol.OrderID(id),
		Timestamp: protocol.Timestamp(ts),
		Symbol:    symbol,
		Side:      side,
		OrderType: orderType,
		Price:     price,
		Quantity:  protocol.Quantity(qty),
	}, nil
}

// parseCancel handles X,order_id,timestamp.
func parseCancel(fields []string) (protocol.Command, error) {
	if len(fields) != 3 {
		return protocol.Command{}, fmt.Errorf("parser: expected 3 fields for Cancel, got %d", len(fields))
	}
	id, err := parseUint(fields[1], "order id")
	if err != nil {
		return protocol.Command{}, err
	}
	ts, err := parseUint(fields[2], "timestamp")
	if err != nil {
		return protocol.Command{}, err
	}
	return protocol.Command{
		Action:    protocol.ActionCancel,
		OrderID:   protocol.OrderID(id),
		Timestamp: protocol.Timestamp(ts),
	}, nil
}

// parseMatch handles M,timestamp or M,timestamp,symbol.
func parseMatch(fields []string) (protocol.Command, error) {
	switch len(fields) {
	case 2:
		ts, err := parseUint(fields[1], "timestamp")
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{
			Action:    protocol.ActionMatch,
			Format:    protocol.FormatGlobal,
			Timestamp: protocol.Timestamp(ts),
		}, nil
	case 3:
		ts, err := parseUint(fields[1], "timestamp")
		if err != nil {
			return protocol.Command{}, err
		}
		symbol, err := parseSymbol(fields[2])
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{
			Action:    protocol.ActionMatch,
			Format:    protocol.FormatSymbol,
			Timestamp: protocol.Timestamp(ts),
			Symbol:    symbol,
		}, nil
	default:
		return protocol.Command{}, fmt.Errorf("parser: expected 2 or 3 fields for Match, got %d", len(fields))
	}
}

// parseQuery handles the four sub-forms named in §4.5: global, by symbol,
// by timestamp, by symbol+timestamp (in either argument order, per
// original_source/OrderInterpreter.h's F_QUERY_SYMBOL_TIMESTAMP and
// F_QUERY_TIMESTAMP_SYMBOL).
func parseQuery(fields []string) (protocol.Command, error) {
	args := fields[1:]
	switch len(args) {
	case 0:
		return protocol.Command{Action: protocol.ActionQuery, Format: protocol.FormatGlobal}, nil
	case 1:
		if isDigits(args[0]) {
			ts, err := parseUint(args[0], "timestamp")
			if err != nil {
				return protocol.Command{}, err
			}
			return protocol.Command{Action: protocol.ActionQuery, Format: protocol.FormatAsOf, Timestamp: protocol.Timestamp(ts)}, nil
		}
		symbol, err := parseSymbol(args[0])
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{Action: protocol.ActionQuery, Format: protocol.FormatSymbol, Symbol: symbol}, nil
	case 2:
		var symbolField, timestampField string
		if isDigits(args[0]) {
			timestampField, symbolField = args[0], args[1]
		} else {
			symbolField, timestampField = args[0], args[1]
		}
		symbol, err := parseSymbol(symbolField)
		if err != nil {
			return protocol.Command{}, err
		}
		ts, err := parseUint(timestampField, "timestamp")
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Command{
			Action:    protocol.ActionQuery,
			Format:    protocol.FormatSymbolAsOf,
			Symbol:    symbol,
			Timestamp: protocol.Timestamp(ts),
		}, nil
	default:
		return protocol.Command{}, fmt.Errorf("parser: expected 0-2 fields for Query, got %d", len(args))
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseUint(s, field string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parser: invalid %s %q: %w", field, s, err)
	}
	return v, nil
}

func parseSymbol(s string) (protocol.Symbol, error) {
	if len(s) < 1 || len(s) > 4 {
		return "", fmt.Errorf("parser: symbol %q must be 1-4 letters", s)
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("parser: symbol %q must be uppercase ASCII letters", s)
		}
	}
	return protocol.Symbol(s), nil
}

func parseOrderType(s string) (protocol.OrderType, error) {
	switch s {
	case "M":
		return protocol.Market, nil
	case "L":
		return protocol.Limit, nil
	case "I":
		return protocol.IOC, nil
	default:
		return 0, fmt.Errorf("parser: unknown order type %q", s)
	}
}

func parseSide(s string) (protocol.Side, error) {
	switch s {
	case "B":
		return protocol.Buy, nil
	case "S":
		return protocol.Sell, nil
	default:
		return 0, fmt.Errorf("parser: unknown side %q", s)
	}
}
