package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler drives the canonical, delivery-side
// direction of the status state machine. The delivery transition and the
// forced order transition commit together or not at all; a failure while
// updating the order rolls the delivery change back too.
//
// Example:
//
//	handler := NewUpdateDeliveryStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateDeliveryStatusCommand(deliveryID, delivery.Delivered)
//
//	updated, err := handler.Handle(ctx, cmd)
//	// on success the linked order is now delivered as well
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer services.StatusSynchronizer
	now          func() time.Time
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery status updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewStatusSynchronizer(),
		now:          time.Now,
	}
}

// Handle loads the delivery and its order, applies the transition through the
// synchronizer, and persists both under one transaction.
func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	orderRepo := uow.OrderRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	linkedOrder, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.synchronizer.ApplyDeliveryStatus(aggregate, linkedOrder, cmd.Status(), h.now()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, linkedOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewTransactionFailedError("update delivery status", err)
	}

	return aggregate, nil
}
