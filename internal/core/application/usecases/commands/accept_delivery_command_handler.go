package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// AcceptDeliveryCommandHandler processes delivery claims: first come first
// served, decided by the repository's conditional update. The winning claim
// also moves the linked order to accepted and assigns the agency, all within
// one transaction.
//
// Concurrency: the claim itself is a single compare-and-swap update in the
// store, never a read followed by a write, so two concurrent claims on the
// same delivery cannot both succeed. Losers receive a conflict error.
type AcceptDeliveryCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer services.StatusSynchronizer
	now          func() time.Time
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery claims.
func NewAcceptDeliveryCommandHandler(uowFactory UoWFactory) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewStatusSynchronizer(),
		now:          time.Now,
	}
}

// Handle claims the delivery for the commanding agency and synchronizes the
// linked order. Returns the claimed delivery on success.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) (*delivery.Delivery, error) {
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

	claimed, err := uow.DeliveryRepository().Claim(ctx, cmd.DeliveryID(), cmd.AgencyID(), h.now())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	linkedOrder, err := orderRepo.Get(ctx, claimed.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.synchronizer.Claim(claimed, linkedOrder); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, linkedOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewTransactionFailedError("accept delivery", err)
	}

	return claimed, nil
}
