package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectOrderSideLoadAndUpdate(
	ctx any,
	uow *MockUoW,
	orderRepo *MockOrderRepository,
	deliveryRepo *MockDeliveryRepository,
	o *order.Order,
	d *delivery.Delivery,
) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		deliveryRepo.On("GetByOrderID", mock.Anything, o.ID()).Return(d, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		deliveryRepo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveredSyncsDelivery(t *testing.T) {
	ctx := t.Context()
	claimed, linkedOrder := claimedPair(t)
	require.NoError(t, claimed.AdvanceTo(delivery.EnRoute, time.Now()))
	require.NoError(t, linkedOrder.AdvanceTo(order.InTransit))

	cmd, err := commands.NewUpdateOrderStatusCommand(linkedOrder.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	expectOrderSideLoadAndUpdate(ctx, uow, orderRepo, deliveryRepo, linkedOrder, claimed)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.Delivered, got.Status())
	require.Equal(t, delivery.Delivered, claimed.Status())
	require.NotNil(t, claimed.DeliveredAt())

	orderRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelReopensPair(t *testing.T) {
	ctx := t.Context()
	claimed, linkedOrder := claimedPair(t)

	cmd, err := commands.NewUpdateOrderStatusCommand(linkedOrder.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	expectOrderSideLoadAndUpdate(ctx, uow, orderRepo, deliveryRepo, linkedOrder, claimed)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.Pending, got.Status())
	require.Nil(t, got.Agency())
	require.Equal(t, delivery.Available, claimed.Status())
	require.Nil(t, claimed.Agency())
	require.Nil(t, claimed.AcceptedAt())
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	missingID := kernel.NewUUID()

	cmd, err := commands.NewUpdateOrderStatusCommand(missingID, order.Accepted)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		orderRepo.On("Get", mock.Anything, missingID).
			Return(nil, errs.NewObjectNotFoundError("orderID", missingID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
