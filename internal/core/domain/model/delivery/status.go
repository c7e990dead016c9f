package delivery

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Available ──> Accepted ──> EnRoute ──> Delivered
//	    ▲             │           │
//	    └─────────────┴───────────┘
//	        (cancellation reopens)
//
// Transitions are monotonic along the chain; Cancelled is accepted as
// transition input only and reopens the delivery to Available.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available means the delivery is unclaimed and open to any agency.
	// A delivery is Available exactly when it has no agency.
	Available

	// Accepted means an agency has claimed the delivery.
	Accepted

	// EnRoute means the package was picked up and is on its way.
	EnRoute

	// Delivered means the package reached the buyer. Final state.
	Delivered

	// Cancelled is transition input only: applying it reopens the delivery
	// as Available and unclaimed rather than persisting a cancelled state.
	Cancelled
)

func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		Accepted:  "accepted",
		EnRoute:   "en_route",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus converts the wire representation ("available", "en_route", ...)
// into a Status. Unrecognized values yield a validation error.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid delivery status", s))
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
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s Status) rank() int {
	switch s {
	case Available:
		return 1
	case Accepted:
		return 2
	case EnRoute:
		return 3
	case Delivered:
		return 4
	default:
		return 0
	}
}

// Advance returns next if moving from s to next goes forward along the status
// chain. Moving backwards, out of Delivered, or to Cancelled is a conflict;
// cancellation goes through the reopen path instead.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if next.rank() == 0 || s.rank() == 0 {
		return Unknown, errs.NewConflictError("delivery status",
			fmt.Sprintf("cannot advance from %s to %s", s, next))
	}

	if next.rank() <= s.rank() {
		return Unknown, errs.NewConflictError("delivery status",
			fmt.Sprintf("cannot move back from %s to %s", s, next))
	}

	return next, nil
}
