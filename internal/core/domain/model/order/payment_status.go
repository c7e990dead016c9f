package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentStatus represents the outcome of the external payment call for an
// order. Payment settlement itself happens outside this service; only the
// reported result is stored.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means no payment outcome has been reported yet.
	PaymentPending

	// PaymentPaid means the payment provider reported a successful charge.
	PaymentPaid

	// PaymentFailed means the payment provider reported a failed charge.
	PaymentFailed
)

func paymentStatusNames() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentPending: "pending",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
	}
}

// ParsePaymentStatus converts the wire representation ("pending", "paid",
// "failed") into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames() {
		if status != PaymentUnknown && name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// Validate reports whether the payment status is one of the defined values.
func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
