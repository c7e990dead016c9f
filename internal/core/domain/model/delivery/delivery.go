package delivery

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Delivery is the aggregate root for the transport of one order.
//
// Invariants:
//   - References exactly one order; the order references it back one-to-one
//   - agencyID is nil exactly when status is Available
//   - Status only advances along the chain, except the cancellation-reopen path
//   - The pickup timestamp is stamped once when the delivery goes en route,
//     the delivery timestamp once when it is delivered
type Delivery struct {
	id      kernel.UUID
	orderID kernel.UUID

	// agencyID is the claiming agency, nil while the delivery is unclaimed.
	agencyID *kernel.UUID
	status   Status

	pickupAddress   string
	pickupLocation  kernel.GeoPoint
	dropOffAddress  string
	dropOffLocation kernel.GeoPoint

	estimatedFee int64
	actualFee    int64

	acceptedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewDelivery creates an unclaimed delivery in Available status for the given
// order. The estimated fee is the order's delivery fee at creation time.
//
// TODO(pickup-address): callers currently pass the order's drop-off address as
// the pickup address because the seller's address is not modeled yet; revisit
// once seller locations exist.
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	pickupAddress string,
	pickupLocation kernel.GeoPoint,
	dropOffAddress string,
	dropOffLocation kernel.GeoPoint,
	estimatedFee int64,
) (*Delivery, error) {
	d := &Delivery{
		status:        Available,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setPickup(pickupAddress, pickupLocation),
		d.setDropOff(dropOffAddress, dropOffLocation),
		d.setEstimatedFee(estimatedFee),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence, validating the
// stored status and the agency/status consistency rule.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	agencyID *kernel.UUID,
	status Status,
	pickupAddress string,
	pickupLocation kernel.GeoPoint,
	dropOffAddress string,
	dropOffLocation kernel.GeoPoint,
	estimatedFee, actualFee int64,
	acceptedAt, pickedUpAt, deliveredAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		actualFee:     actualFee,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setPickup(pickupAddress, pickupLocation),
		d.setDropOff(dropOffAddress, dropOffLocation),
		d.setEstimatedFee(estimatedFee),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = status

	if agencyID != nil {
		if err := agencyID.Validate(); err != nil {
			return nil, err
		}
		cloned := *agencyID
		d.agencyID = &cloned
	}

	if (d.agencyID == nil) != (d.status == Available) {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery",
			errors.New("agency must be set exactly when status is not available"))
	}

	d.acceptedAt = cloneTime(acceptedAt)
	d.pickedUpAt = cloneTime(pickedUpAt)
	d.deliveredAt = cloneTime(deliveredAt)

	return d, nil
}

// Validate ensures the Delivery was constructed via NewDelivery or RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the linked order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Agency returns the claiming agency's ID, nil while unclaimed.
func (d *Delivery) Agency() *kernel.UUID {
	return d.agencyID
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// PickupAddress returns the pickup address.
func (d *Delivery) PickupAddress() string {
	return d.pickupAddress
}

// PickupLocation returns the pickup coordinates.
func (d *Delivery) PickupLocation() kernel.GeoPoint {
	return d.pickupLocation
}

// DropOffAddress returns the destination address.
func (d *Delivery) DropOffAddress() string {
	return d.dropOffAddress
}

// DropOffLocation returns the destination coordinates.
func (d *Delivery) DropOffLocation() kernel.GeoPoint {
	return d.dropOffLocation
}

// EstimatedFee returns the fee quoted at creation, in minor currency units.
func (d *Delivery) EstimatedFee() int64 {
	return d.estimatedFee
}

// ActualFee returns the settled fee, zero until the delivery completes.
func (d *Delivery) ActualFee() int64 {
	return d.actualFee
}

// AcceptedAt returns when the delivery was claimed, nil while unclaimed.
func (d *Delivery) AcceptedAt() *time.Time {
	return cloneTime(d.acceptedAt)
}

// PickedUpAt returns when the package was picked up, nil before EnRoute.
func (d *Delivery) PickedUpAt() *time.Time {
	return cloneTime(d.pickedUpAt)
}

// DeliveredAt returns when the package was delivered, nil before Delivered.
func (d *Delivery) DeliveredAt() *time.Time {
	return cloneTime(d.deliveredAt)
}

// Claim takes the delivery for an agency. Only an Available, unclaimed
// delivery can be claimed; anything else is a conflict. Persistence must
// enforce the same rule with a conditional update so that two concurrent
// claims cannot both succeed.
func (d *Delivery) Claim(agencyID kernel.UUID, at time.Time) error {
	if err := agencyID.Validate(); err != nil {
		return err
	}

	if d.status != Available || d.agencyID != nil {
		return errs.NewConflictError("delivery", "delivery is no longer available")
	}

	d.agencyID = &agencyID
	d.status = Accepted
	d.acceptedAt = &at
	return nil
}

// AdvanceTo moves the delivery forward to next, stamping the pickup time on
// EnRoute and the delivery time on Delivered (each at most once). Re-applying
// the current status is a no-op success. Cancelled is rejected here; use
// Reopen. Advancing a claimed status on an unclaimed delivery is a conflict
// because it would break the agency/status rule.
func (d *Delivery) AdvanceTo(next Status, now time.Time) error {
	if next == d.status {
		return nil
	}

	if next == Cancelled {
		return errs.NewConflictError("delivery status",
			"cancellation reopens the delivery, use Reopen")
	}

	if d.agencyID == nil {
		return errs.NewConflictError("delivery status",
			"delivery has not been claimed")
	}

	newStatus, err := d.status.Advance(next)
	if err != nil {
		return err
	}

	d.status = newStatus

	if d.status == EnRoute && d.pickedUpAt == nil {
		stamped := now
		d.pickedUpAt = &stamped
	}
	if d.status == Delivered {
		if d.deliveredAt == nil {
			stamped := now
			d.deliveredAt = &stamped
		}
		if d.actualFee == 0 {
			d.actualFee = d.estimatedFee
		}
	}

	return nil
}

// Reopen is the cancellation path: the delivery returns to Available with no
// agency and a cleared acceptance timestamp, so another agency can claim it.
// Reopening an Available delivery is a no-op.
func (d *Delivery) Reopen() {
	d.status = Available
	d.agencyID = nil
	d.acceptedAt = nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setPickup(address string, location kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	if err := location.Validate(); err != nil {
		return err
	}

	d.pickupAddress = address
	d.pickupLocation = location
	return nil
}

func (d *Delivery) setDropOff(address string, location kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("drop-off address")
	}
	if err := location.Validate(); err != nil {
		return err
	}

	d.dropOffAddress = address
	d.dropOffLocation = location
	return nil
}

func (d *Delivery) setEstimatedFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("estimated fee")
	}
	d.estimatedFee = fee
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cloned := *t
	return &cloned
}
