package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> InTransit ──> Delivered
//	   ▲            │            │
//	   └────────────┴────────────┘
//	       (cancellation reopens)
//
// Transitions are monotonic: a status may only advance along the chain.
// Cancellation is not a terminal state for the order; it resets the order to
// Pending so the linked delivery can be claimed again.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status; the linked delivery is waiting to be claimed.
	Pending

	// Accepted indicates a delivery agency has claimed the order's delivery.
	Accepted

	// InTransit indicates the delivery is en route to the buyer.
	InTransit

	// Delivered indicates the order reached the buyer. Final state.
	Delivered

	// Cancelled is accepted as transition input only; applying it reopens the
	// order to Pending rather than persisting a cancelled state.
	Cancelled
)

func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus converts the wire representation ("pending", "in_transit", ...)
// into a Status. Unrecognized values yield a validation error.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// Validate reports whether the status is one of the defined values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// rank orders the forward chain. Cancelled has no rank; it is handled by the
// reopen path, not by Advance.
func (s Status) rank() int {
	switch s {
	case Pending:
		return 1
	case Accepted:
		return 2
	case InTransit:
		return 3
	case Delivered:
		return 4
	default:
		return 0
	}
}

// Advance returns next if moving from s to next goes forward along the status
// chain. Skipping intermediate states is allowed; moving backwards or out of a
// final state is a conflict. Advancing to the current status is the caller's
// no-op case and is rejected here.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if next.rank() == 0 || s.rank() == 0 {
		return Unknown, errs.NewConflictError("order status",
			fmt.Sprintf("cannot advance from %s to %s", s, next))
	}

	if next.rank() <= s.rank() {
		return Unknown, errs.NewConflictError("order status",
			fmt.Sprintf("cannot move back from %s to %s", s, next))
	}

	return next, nil
}
