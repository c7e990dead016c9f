package queries

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler reads the open delivery board straight
// from the database, bypassing the aggregate layer.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for delivery board queries.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle returns every delivery in available status, oldest claims first by ID
// for consistent output.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]GetAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetAvailableDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			pickup_address,
			pickup_latitude,
			pickup_longitude,
			drop_off_address,
			drop_off_latitude,
			drop_off_longitude,
			estimated_fee
		FROM deliveries
		WHERE status = ?
		ORDER BY id
	`, delivery.Available).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableDeliveriesQueryResponse
		var id, orderID uuid.UUID
		var pickupLat, pickupLon, dropOffLat, dropOffLon float64

		err = rows.Scan(
			&id,
			&orderID,
			&resp.PickupAddress,
			&pickupLat,
			&pickupLon,
			&resp.DropOffAddress,
			&dropOffLat,
			&dropOffLon,
			&resp.EstimatedFee,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		linkedOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = linkedOrderID

		pickup, locErr := kernel.NewGeoPoint(pickupLat, pickupLon)
		if locErr != nil {
			return nil, locErr
		}
		resp.PickupLocation = pickup

		dropOff, locErr := kernel.NewGeoPoint(dropOffLat, dropOffLon)
		if locErr != nil {
			return nil, locErr
		}
		resp.DropOffLocation = dropOff

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
