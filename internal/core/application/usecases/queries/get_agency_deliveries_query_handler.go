package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgencyDeliveriesQueryHandler reads an agency's claimed deliveries from
// the database.
type GetAgencyDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAgencyDeliveriesQueryHandler creates a handler for agency workload queries.
func NewGetAgencyDeliveriesQueryHandler(db *gorm.DB) GetAgencyDeliveriesQueryHandler {
	return GetAgencyDeliveriesQueryHandler{db: db}
}

// Handle returns every delivery claimed by the agency, sorted by ID for
// consistent output. Reopened deliveries drop out of the workload because
// their agency link is cleared.
func (h GetAgencyDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAgencyDeliveriesQuery,
) ([]GetAgencyDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetAgencyDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			pickup_address,
			drop_off_address,
			estimated_fee,
			actual_fee,
			accepted_at,
			picked_up_at,
			delivered_at
		FROM deliveries
		WHERE agency_id = ?
		ORDER BY id
	`, query.AgencyID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAgencyDeliveriesQueryResponse
		var id, orderID uuid.UUID
		var status int
		var acceptedAt, pickedUpAt, deliveredAt sql.NullTime

		err = rows.Scan(
			&id,
			&orderID,
			&status,
			&resp.PickupAddress,
			&resp.DropOffAddress,
			&resp.EstimatedFee,
			&resp.ActualFee,
			&acceptedAt,
			&pickedUpAt,
			&deliveredAt,
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
		resp.Status = delivery.Status(status)

		if acceptedAt.Valid {
			at := acceptedAt.Time
			resp.AcceptedAt = &at
		}
		if pickedUpAt.Valid {
			at := pickedUpAt.Time
			resp.PickedUpAt = &at
		}
		if deliveredAt.Valid {
			at := deliveredAt.Time
			resp.DeliveredAt = &at
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
