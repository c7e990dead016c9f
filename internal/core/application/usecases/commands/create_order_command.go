package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was not
// created via NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput is one requested order line as supplied by the caller.
type ItemInput struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice int64
}

// CreateOrderCommand requests creation of an order together with its linked
// delivery. Totals are computed by the handler; the caller supplies the raw
// line items and the quoted delivery fee.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	buyerID         kernel.UUID
	items           []ItemInput
	deliveryFee     int64
	dropOffAddress  string
	dropOffLocation kernel.GeoPoint
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates and builds a CreateOrderCommand.
// The item list must be non-empty; per-item validation happens when the
// handler constructs the domain items.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	items []ItemInput,
	deliveryFee int64,
	dropOffAddress string,
	dropOffLocation kernel.GeoPoint,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setItems(items),
		cmd.setDeliveryFee(deliveryFee),
		cmd.setDropOff(dropOffAddress, dropOffLocation),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the purchasing user's identifier.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []ItemInput {
	items := make([]ItemInput, len(c.items))
	copy(items, c.items)
	return items
}

// DeliveryFee returns the quoted delivery fee in minor currency units.
func (c CreateOrderCommand) DeliveryFee() int64 {
	return c.deliveryFee
}

// DropOffAddress returns the destination address.
func (c CreateOrderCommand) DropOffAddress() string {
	return c.dropOffAddress
}

// DropOffLocation returns the destination coordinates.
func (c CreateOrderCommand) DropOffLocation() kernel.GeoPoint {
	return c.dropOffLocation
}

// Notes returns the optional delivery instructions.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = make([]ItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("delivery fee")
	}
	c.deliveryFee = fee
	return nil
}

func (c *CreateOrderCommand) setDropOff(address string, location kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("drop-off address")
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.dropOffAddress = address
	c.dropOffLocation = location
	return nil
}

// domainItems converts the raw inputs into validated order line items.
func (c CreateOrderCommand) domainItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(c.items))
	for _, input := range c.items {
		item, err := order.NewItem(input.ProductID, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
