package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned when the query was not created
// via NewGetOrderQuery.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates and builds a GetOrderQuery.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the detail view of one order.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	BuyerID        kernel.UUID
	AgencyID       *kernel.UUID
	Items          []GetOrderQueryItem
	Status         order.Status
	PaymentStatus  order.PaymentStatus
	Subtotal       int64
	DeliveryFee    int64
	Total          int64
	DropOffAddress string
	Notes          string
}

// GetOrderQueryItem is one line item in the detail view.
type GetOrderQueryItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice int64
}
