package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

// ErrGetBuyerOrdersQueryIsNotConstructed is returned when the query was not
// created via NewGetBuyerOrdersQuery.
var ErrGetBuyerOrdersQueryIsNotConstructed = errors.New(
	"GetBuyerOrdersQuery must be created via NewGetBuyerOrdersQuery constructor",
)

// GetBuyerOrdersQuery retrieves the order history of one buyer.
//
// Example:
//
//	query, _ := NewGetBuyerOrdersQuery(buyerID)
//	handler := NewGetBuyerOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get buyer orders: %w", err)
//	}
type GetBuyerOrdersQuery struct {
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBuyerOrdersQuery validates and builds a GetBuyerOrdersQuery.
func NewGetBuyerOrdersQuery(buyerID kernel.UUID) (GetBuyerOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetBuyerOrdersQuery{}, err
	}

	return GetBuyerOrdersQuery{
		buyerID: buyerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBuyerOrdersQueryIsNotConstructed)
}

// BuyerID returns the buyer whose orders are requested.
func (q GetBuyerOrdersQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// GetBuyerOrdersQueryResponse is one order in the buyer's history.
type GetBuyerOrdersQueryResponse struct {
	ID             kernel.UUID
	Status         order.Status
	PaymentStatus  order.PaymentStatus
	Subtotal       int64
	DeliveryFee    int64
	Total          int64
	DropOffAddress string
	Notes          string
}
