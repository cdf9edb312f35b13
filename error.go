package match

import (
	"errors"
	"fmt"

	"github.com/coredepth/matchcore/protocol"
)

// ErrCapacityExceeded is the one Fatal condition in this engine: a
// SideBook ran out of room. The symbol directory has no capacity bound and
// never returns it. Per §7 it is not
// recoverable at command granularity, so it is returned as a plain error
// from Engine.Process rather than translated into a Reject event.
var ErrCapacityExceeded = errors.New("matchcore: capacity exceeded")

// CodedError is a recoverable, command-level failure: timestamp
// regression, a malformed amendment, or a reference to an unknown
// order/symbol. The Engine always translates one of these into the
// matching Reject/AmendReject/CancelReject event; it never escapes as a
// bare error across the Engine boundary.
type CodedError struct {
	Code    int
	Message string
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("matchcore: %d %s", e.Code, e.Message)
}

func errInvalidOrderDetails(msg string) *CodedError {
	return &CodedError{Code: protocol.CodeInvalidOrderDetails, Message: msg}
}

// errInvalidAmendmentDetails is reserved per §7: an amend whose new fields
// violate an invariant (e.g. negative quantity) is the parser/validator's
// responsibility, not the matching core's, so nothing in this package
// calls it yet. Kept so a future validator has the matching CodedError
// constructor ready rather than inventing a fourth code.
func errInvalidAmendmentDetails(msg string) *CodedError {
	return &CodedError{Code: protocol.CodeInvalidAmendmentDetails, Message: msg}
}

// errOrderDoesNotExist's message matches §8 scenario 3's literal wording
// ("Order does not exist") exactly, since that scenario pins the full
// rendered line.
func errOrderDoesNotExist() *CodedError {
	return &CodedError{Code: protocol.CodeOrderDoesNotExist, Message: "Order does not exist"}
}
