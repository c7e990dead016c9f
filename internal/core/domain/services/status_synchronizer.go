package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrMismatchedPair is returned when the delivery passed to the synchronizer
// does not belong to the order passed alongside it.
var ErrMismatchedPair = errors.New("delivery does not belong to order")

// StatusSynchronizer is the domain service that keeps an order and its
// delivery consistent under status changes from either side.
//
// Canonical mapping (delivery-driven):
//
//	delivery accepted  <=> order accepted
//	delivery en_route  <=> order in_transit
//	delivery delivered <=> order delivered
//	cancelled          =>  delivery reopened (available, unclaimed),
//	                       order reset to pending
//
// Both aggregates are mutated in memory; callers persist them within one
// transaction so the pair changes atomically. Re-applying the current status
// of either side is a no-op success.
type StatusSynchronizer struct{}

// NewStatusSynchronizer creates a StatusSynchronizer.
func NewStatusSynchronizer() StatusSynchronizer {
	return StatusSynchronizer{}
}

// OrderStatusFor maps a delivery status to the order status forced by it.
// Available maps to Pending (the unclaimed slot); Cancelled has no mapping
// because cancellation is the reopen path.
func (StatusSynchronizer) OrderStatusFor(s delivery.Status) (order.Status, error) {
	switch s {
	case delivery.Available:
		return order.Pending, nil
	case delivery.Accepted:
		return order.Accepted, nil
	case delivery.EnRoute:
		return order.InTransit, nil
	case delivery.Delivered:
		return order.Delivered, nil
	default:
		return order.Unknown, errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%s has no order status mapping", s))
	}
}

// DeliveryStatusFor maps an order status to the delivery status forced by it.
func (StatusSynchronizer) DeliveryStatusFor(s order.Status) (delivery.Status, error) {
	switch s {
	case order.Pending:
		return delivery.Available, nil
	case order.Accepted:
		return delivery.Accepted, nil
	case order.InTransit:
		return delivery.EnRoute, nil
	case order.Delivered:
		return delivery.Delivered, nil
	default:
		return delivery.Unknown, errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%s has no delivery status mapping", s))
	}
}

// ApplyDeliveryStatus transitions the delivery to next and forces the mapped
// status onto the order. Cancellation reopens the pair. Returns without
// changes when next equals the delivery's current status.
func (s StatusSynchronizer) ApplyDeliveryStatus(
	d *delivery.Delivery,
	o *order.Order,
	next delivery.Status,
	now time.Time,
) error {
	if err := s.validatePair(d, o); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if next == delivery.Cancelled {
		s.reopen(d, o)
		return nil
	}

	if next == d.Status() {
		return nil
	}

	if err := d.AdvanceTo(next, now); err != nil {
		return err
	}

	return s.alignOrder(d, o)
}

// ApplyOrderStatus is the symmetric direction: transitions the order to next
// and forces the mapped status onto the delivery.
func (s StatusSynchronizer) ApplyOrderStatus(
	o *order.Order,
	d *delivery.Delivery,
	next order.Status,
	now time.Time,
) error {
	if err := s.validatePair(d, o); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if next == order.Cancelled {
		s.reopen(d, o)
		return nil
	}

	if next == o.Status() {
		return nil
	}

	deliveryStatus, err := s.DeliveryStatusFor(next)
	if err != nil {
		return err
	}

	if err = d.AdvanceTo(deliveryStatus, now); err != nil {
		return err
	}

	return s.alignOrder(d, o)
}

// Claim records a successful delivery claim on the order side: the order
// advances to Accepted and gets the claiming agency assigned. Called after
// the persistence layer's conditional update won the claim race.
func (s StatusSynchronizer) Claim(d *delivery.Delivery, o *order.Order) error {
	if err := s.validatePair(d, o); err != nil {
		return err
	}

	if d.Status() != delivery.Accepted || d.Agency() == nil {
		return errs.NewConflictError("delivery", "delivery has not been claimed")
	}

	return s.alignOrder(d, o)
}

// alignOrder forces the order's status (and agency, when claimed) to match
// the delivery's current state.
func (s StatusSynchronizer) alignOrder(d *delivery.Delivery, o *order.Order) error {
	mapped, err := s.OrderStatusFor(d.Status())
	if err != nil {
		return err
	}

	if err = o.AdvanceTo(mapped); err != nil {
		return err
	}

	if agency := d.Agency(); agency != nil && o.Agency() == nil {
		if err = o.AssignAgency(*agency); err != nil {
			return err
		}
	}

	return nil
}

func (StatusSynchronizer) reopen(d *delivery.Delivery, o *order.Order) {
	d.Reopen()
	o.ResetToPending()
}

func (StatusSynchronizer) validatePair(d *delivery.Delivery, o *order.Order) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if !d.OrderID().IsEqual(o.ID()) {
		return ErrMismatchedPair
	}
	return nil
}
