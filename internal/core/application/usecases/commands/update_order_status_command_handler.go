package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler drives the order-side direction of the
// status state machine; the linked delivery is forced to the mapped status in
// the same transaction. Setting an order to cancelled reopens its delivery.
type UpdateOrderStatusCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer services.StatusSynchronizer
	now          func() time.Time
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewStatusSynchronizer(),
		now:          time.Now,
	}
}

// Handle loads the order and its delivery, applies the transition through the
// synchronizer, and persists both under one transaction.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	linkedDelivery, err := deliveryRepo.GetByOrderID(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	if err = h.synchronizer.ApplyOrderStatus(aggregate, linkedDelivery, cmd.Status(), h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, linkedDelivery); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewTransactionFailedError("update order status", err)
	}

	return aggregate, nil
}
