package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ReleaseStaleClaimsCommandHandler sweeps stale claims back to available.
// Each reopened pair goes through the same cancellation-reopen path as an
// explicit cancel, within one transaction for the whole sweep.
type ReleaseStaleClaimsCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer services.StatusSynchronizer
	now          func() time.Time
}

// NewReleaseStaleClaimsCommandHandler creates a handler for the stale-claim sweep.
func NewReleaseStaleClaimsCommandHandler(uowFactory UoWFactory) ReleaseStaleClaimsCommandHandler {
	return ReleaseStaleClaimsCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewStatusSynchronizer(),
		now:          time.Now,
	}
}

// Handle reopens every delivery claimed before now minus the allowed age.
// Returns the number of deliveries released.
func (h ReleaseStaleClaimsCommandHandler) Handle(ctx context.Context, cmd ReleaseStaleClaimsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	orderRepo := uow.OrderRepository()

	cutoff := h.now().Add(-cmd.MaxClaimAge())
	stale, err := deliveryRepo.GetAllAcceptedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, staleDelivery := range stale {
		linkedOrder, getErr := orderRepo.Get(ctx, staleDelivery.OrderID())
		if getErr != nil {
			return 0, getErr
		}

		if err = h.synchronizer.ApplyDeliveryStatus(
			staleDelivery, linkedOrder, delivery.Cancelled, h.now(),
		); err != nil {
			return 0, err
		}

		if err = deliveryRepo.Update(ctx, staleDelivery); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, linkedOrder); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, errs.NewTransactionFailedError("release stale claims", err)
	}

	return len(stale), nil
}
