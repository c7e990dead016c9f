// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence, including the conditional claim update that
// decides contested claims in the database.
package deliveryrepo

import (
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The order link is unique: one delivery per order.
type DeliveryDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	AgencyID       *uuid.UUID `gorm:"type:uuid;index"`
	Status         int        `gorm:"index"`
	PickupAddress  string
	Pickup         GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	DropOffAddress string
	DropOff        GeoPointDTO `gorm:"embedded;embeddedPrefix:drop_off_"`
	EstimatedFee   int64
	ActualFee      int64
	AcceptedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time
}

// TableName overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// GeoPointDTO represents embedded coordinates within a table row.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var agencyID *uuid.UUID
	if id := aggregate.Agency(); id != nil {
		raw := id.Bytes()
		agencyID = &raw
	}

	return DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		AgencyID:      agencyID,
		Status:        int(aggregate.Status()),
		PickupAddress: aggregate.PickupAddress(),
		Pickup: GeoPointDTO{
			Latitude:  aggregate.PickupLocation().Latitude(),
			Longitude: aggregate.PickupLocation().Longitude(),
		},
		DropOffAddress: aggregate.DropOffAddress(),
		DropOff: GeoPointDTO{
			Latitude:  aggregate.DropOffLocation().Latitude(),
			Longitude: aggregate.DropOffLocation().Longitude(),
		},
		EstimatedFee: aggregate.EstimatedFee(),
		ActualFee:    aggregate.ActualFee(),
		AcceptedAt:   aggregate.AcceptedAt(),
		PickedUpAt:   aggregate.PickedUpAt(),
		DeliveredAt:  aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
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

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}

	dropOff, err := kernel.NewGeoPoint(dto.DropOff.Latitude, dto.DropOff.Longitude)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		agencyID,
		delivery.Status(dto.Status),
		dto.PickupAddress,
		pickup,
		dto.DropOffAddress,
		dropOff,
		dto.EstimatedFee, dto.ActualFee,
		dto.AcceptedAt, dto.PickedUpAt, dto.DeliveredAt,
	)
}
