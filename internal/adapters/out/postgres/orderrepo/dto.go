// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by buyer and status for the history and board queries.
type OrderDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BuyerID        uuid.UUID      `gorm:"type:uuid;index"`
	AgencyID       *uuid.UUID     `gorm:"type:uuid;index"`
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal       int64
	DeliveryFee    int64
	Total          int64
	Status         int `gorm:"index"`
	PaymentStatus  int
	DropOffAddress string
	DropOff        GeoPointDTO `gorm:"embedded;embeddedPrefix:drop_off_"`
	Notes          string
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line. Lines are immutable after creation,
// so the (order, product) pair is the primary key.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	UnitPrice int64
}

// TableName overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// GeoPointDTO represents embedded coordinates within a table row.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agencyID *uuid.UUID
	if id := aggregate.Agency(); id != nil {
		raw := id.Bytes()
		agencyID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		BuyerID:        aggregate.BuyerID().Bytes(),
		AgencyID:       agencyID,
		Items:          items,
		Subtotal:       aggregate.Subtotal(),
		DeliveryFee:    aggregate.DeliveryFee(),
		Total:          aggregate.Total(),
		Status:         int(aggregate.Status()),
		PaymentStatus:  int(aggregate.PaymentStatus()),
		DropOffAddress: aggregate.DropOffAddress(),
		DropOff: GeoPointDTO{
			Latitude:  aggregate.DropOffLocation().Latitude(),
			Longitude: aggregate.DropOffLocation().Longitude(),
		},
		Notes: aggregate.Notes(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	var agencyID *kernel.UUID
	if dto.AgencyID != nil {
		aID, agencyErr := kernel.UUIDFromBytes((*dto.AgencyID)[:])
		if agencyErr != nil {
			return nil, agencyErr
		}
		agencyID = &aID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	dropOff, err := kernel.NewGeoPoint(dto.DropOff.Latitude, dto.DropOff.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		buyerID,
		items,
		dto.Subtotal, dto.DeliveryFee, dto.Total,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		agencyID,
		dto.DropOffAddress,
		dropOff,
		dto.Notes,
	)
}
