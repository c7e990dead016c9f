package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrGetAgencyDeliveriesQueryIsNotConstructed is returned when the query was
// not created via NewGetAgencyDeliveriesQuery.
var ErrGetAgencyDeliveriesQueryIsNotConstructed = errors.New(
	"GetAgencyDeliveriesQuery must be created via NewGetAgencyDeliveriesQuery constructor",
)

// GetAgencyDeliveriesQuery retrieves the active workload of one agency: every
// delivery currently claimed by it, in any post-claim status.
type GetAgencyDeliveriesQuery struct {
	agencyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgencyDeliveriesQuery validates and builds a GetAgencyDeliveriesQuery.
func NewGetAgencyDeliveriesQuery(agencyID kernel.UUID) (GetAgencyDeliveriesQuery, error) {
	if err := agencyID.Validate(); err != nil {
		return GetAgencyDeliveriesQuery{}, err
	}

	return GetAgencyDeliveriesQuery{
		agencyID: agencyID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAgencyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAgencyDeliveriesQueryIsNotConstructed)
}

// AgencyID returns the agency whose deliveries are requested.
func (q GetAgencyDeliveriesQuery) AgencyID() kernel.UUID {
	return q.agencyID
}

// GetAgencyDeliveriesQueryResponse is one delivery in the agency's workload.
type GetAgencyDeliveriesQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Status         delivery.Status
	PickupAddress  string
	DropOffAddress string
	EstimatedFee   int64
	ActualFee      int64
	AcceptedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time
}
