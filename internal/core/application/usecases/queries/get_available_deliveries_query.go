package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrGetAvailableDeliveriesQueryIsNotConstructed is returned when the query
// was not created via NewGetAvailableDeliveriesQuery.
var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves the open delivery board: every
// delivery still in available status, claimable by any agency.
//
// Example:
//
//	query := NewGetAvailableDeliveriesQuery()
//	handler := NewGetAvailableDeliveriesQueryHandler(db)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available deliveries: %w", err)
//	}
//
//	fmt.Printf("%d deliveries open for claiming\n", len(deliveries))
type GetAvailableDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a query for the open delivery board.
func NewGetAvailableDeliveriesQuery() GetAvailableDeliveriesQuery {
	return GetAvailableDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

// GetAvailableDeliveriesQueryResponse is one claimable delivery on the board.
type GetAvailableDeliveriesQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	PickupAddress   string
	PickupLocation  kernel.GeoPoint
	DropOffAddress  string
	DropOffLocation kernel.GeoPoint
	EstimatedFee    int64
}
