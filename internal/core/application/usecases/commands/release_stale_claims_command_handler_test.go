package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseStaleClaimsCommandHandler_Handle_ReleasesStalePairs(t *testing.T) {
	ctx := t.Context()

	firstDelivery, firstOrder := claimedPair(t)
	secondDelivery, secondOrder := claimedPair(t)
	stale := []*delivery.Delivery{firstDelivery, secondDelivery}

	cmd, err := commands.NewReleaseStaleClaimsCommand(30 * time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		deliveryRepo.On("GetAllAcceptedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(stale, nil).Once(),
		orderRepo.On("Get", mock.Anything, firstOrder.ID()).Return(firstOrder, nil).Once(),
		deliveryRepo.On("Update", mock.Anything, firstDelivery).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, firstOrder).Return(nil).Once(),
		orderRepo.On("Get", mock.Anything, secondOrder.ID()).Return(secondOrder, nil).Once(),
		deliveryRepo.On("Update", mock.Anything, secondDelivery).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, secondOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReleaseStaleClaimsCommandHandler(factory)
	released, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, released)

	for _, d := range stale {
		require.Equal(t, delivery.Available, d.Status())
		require.Nil(t, d.Agency())
		require.Nil(t, d.AcceptedAt())
	}
	require.Equal(t, order.Pending, firstOrder.Status())
	require.Equal(t, order.Pending, secondOrder.Status())

	deliveryRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReleaseStaleClaimsCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewReleaseStaleClaimsCommand(30 * time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		deliveryRepo.On("GetAllAcceptedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Delivery{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReleaseStaleClaimsCommandHandler(factory)
	released, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, released)
	uow.AssertExpectations(t)
}

func TestReleaseStaleClaimsCommand_RejectsNonPositiveAge(t *testing.T) {
	_, err := commands.NewReleaseStaleClaimsCommand(0)
	require.Error(t, err)

	_, err = commands.NewReleaseStaleClaimsCommand(-time.Minute)
	require.Error(t, err)
}
