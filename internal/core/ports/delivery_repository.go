package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// Returns a not-found error when no row matches the delivery's identifier.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery linked to the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// Claim atomically takes an available, unclaimed delivery for an agency.
	// The implementation must use a single conditional update guarded on
	// current status and a null agency so that of any number of concurrent
	// claims exactly one succeeds. Losing claims receive a conflict error;
	// unknown identifiers a not-found error. On success the updated
	// aggregate is returned.
	Claim(ctx context.Context, id kernel.UUID, agencyID kernel.UUID, at time.Time) (*delivery.Delivery, error)

	// GetAllAcceptedBefore retrieves deliveries still in accepted status whose
	// claim happened before the cutoff. Used by the stale-claim release job.
	GetAllAcceptedBefore(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error)

	// Delete removes a delivery. Used by the administrative delete flow only.
	Delete(ctx context.Context, id kernel.UUID) error
}
