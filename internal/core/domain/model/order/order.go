package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a buyer's purchase request.
//
// Invariants:
//   - At least one line item; totals are computed, never supplied
//   - total = subtotal + delivery fee, where subtotal = Σ quantity × unit price
//   - Status only advances along the chain, except the cancellation-reopen path
//   - An agency is assigned exactly when the linked delivery has been claimed;
//     reopening clears the assignment together with the status reset
//
// The struct uses private fields; all mutation goes through validated methods.
type Order struct {
	id      kernel.UUID
	buyerID kernel.UUID

	items       []Item
	subtotal    int64
	deliveryFee int64
	total       int64

	status        Status
	paymentStatus PaymentStatus

	// agencyID is the delivery agency fulfilling the order, nil until the
	// linked delivery is claimed.
	agencyID *kernel.UUID

	dropOffAddress  string
	dropOffLocation kernel.GeoPoint
	notes           string

	isConstructed bool
}

// NewOrder creates an Order in Pending status with PaymentPending, computing
// subtotal and total from the line items and delivery fee.
//
// Parameters:
//   - id: unique order identifier
//   - buyerID: the purchasing user
//   - items: at least one validated line item
//   - deliveryFee: non-negative fee in minor currency units
//   - dropOffAddress: free-form destination address, required
//   - dropOffLocation: validated destination coordinates
//   - notes: optional instructions for the courier
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	items []Item,
	deliveryFee int64,
	dropOffAddress string,
	dropOffLocation kernel.GeoPoint,
	notes string,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
		o.setDropOff(dropOffAddress, dropOffLocation),
	); err != nil {
		return nil, err
	}

	o.subtotal = 0
	for _, item := range o.items {
		o.subtotal += item.Subtotal()
	}
	o.total = o.subtotal + o.deliveryFee

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Totals are taken as
// stored; status and payment status are validated before use.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	items []Item,
	subtotal, deliveryFee, total int64,
	status Status,
	paymentStatus PaymentStatus,
	agencyID *kernel.UUID,
	dropOffAddress string,
	dropOffLocation kernel.GeoPoint,
	notes string,
) (*Order, error) {
	o := &Order{
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		total:         total,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setItems(items),
		o.setDropOff(dropOffAddress, dropOffLocation),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus

	if agencyID != nil {
		if err := agencyID.Validate(); err != nil {
			return nil, err
		}
		cloned := *agencyID
		o.agencyID = &cloned
	}

	return o, nil
}

// Validate ensures the Order was constructed via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the purchasing user's identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal returns the sum of line item subtotals in minor currency units.
func (o *Order) Subtotal() int64 {
	return o.subtotal
}

// DeliveryFee returns the delivery fee in minor currency units.
func (o *Order) DeliveryFee() int64 {
	return o.deliveryFee
}

// Total returns subtotal plus delivery fee.
func (o *Order) Total() int64 {
	return o.total
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the reported payment outcome.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Agency returns the assigned delivery agency's ID, nil if unassigned.
func (o *Order) Agency() *kernel.UUID {
	return o.agencyID
}

// DropOffAddress returns the destination address.
func (o *Order) DropOffAddress() string {
	return o.dropOffAddress
}

// DropOffLocation returns the destination coordinates.
func (o *Order) DropOffLocation() kernel.GeoPoint {
	return o.dropOffLocation
}

// Notes returns the optional courier instructions.
func (o *Order) Notes() string {
	return o.notes
}

// AdvanceTo moves the order forward to next. Re-applying the current status is
// a no-op success; moving backwards or to Cancelled is rejected (cancellation
// goes through ResetToPending).
func (o *Order) AdvanceTo(next Status) error {
	if next == o.status {
		return nil
	}

	newStatus, err := o.status.Advance(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignAgency records the delivery agency fulfilling the order.
func (o *Order) AssignAgency(agencyID kernel.UUID) error {
	if err := agencyID.Validate(); err != nil {
		return err
	}

	o.agencyID = &agencyID
	return nil
}

// ResetToPending is the cancellation-reopen path: the order returns to Pending
// and loses its agency so the delivery slot can be claimed again.
func (o *Order) ResetToPending() {
	o.status = Pending
	o.agencyID = nil
}

// RecordPayment stores the outcome reported by the external payment call.
// Re-reporting the same outcome is a no-op; changing an already settled
// outcome is a conflict.
func (o *Order) RecordPayment(next PaymentStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if next == o.paymentStatus {
		return nil
	}

	if o.paymentStatus != PaymentPending {
		return errs.NewConflictError("payment status",
			"payment outcome is already settled")
	}

	o.paymentStatus = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("delivery fee")
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setDropOff(address string, location kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("drop-off address")
	}
	if err := location.Validate(); err != nil {
		return err
	}

	o.dropOffAddress = address
	o.dropOffLocation = location
	return nil
}
