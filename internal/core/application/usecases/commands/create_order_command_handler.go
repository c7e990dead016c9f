package commands

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler creates an order and its linked delivery in one
// transaction. Either both rows exist afterwards, correctly linked, or the
// transaction rolls back and neither does.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, buyerID, items, 500, address, point, "")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.Total() == subtotal + delivery fee; the delivery is claimable
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command: builds the order with computed totals, then a
// delivery in available state referencing it, and persists both atomically.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := cmd.domainItems()
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.BuyerID(),
		items,
		cmd.DeliveryFee(),
		cmd.DropOffAddress(),
		cmd.DropOffLocation(),
		cmd.Notes(),
	)
	if err != nil {
		return nil, err
	}

	// TODO(pickup-address): the seller's address is not modeled yet, so the
	// pickup point defaults to the order's drop-off point.
	newDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(),
		newOrder.ID(),
		newOrder.DropOffAddress(),
		newOrder.DropOffLocation(),
		newOrder.DropOffAddress(),
		newOrder.DropOffLocation(),
		newOrder.DeliveryFee(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewTransactionFailedError("create order", err)
	}

	return newOrder, nil
}
