// Package http exposes the application's commands and queries over a REST
// API. Handlers are thin glue: parse, dispatch, map errors to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	acceptDeliveryHandler       commands.AcceptDeliveryCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	updatePaymentStatusHandler  commands.UpdatePaymentStatusCommandHandler
	deleteOrderHandler          commands.DeleteOrderCommandHandler

	// Query handlers
	getOrderHandler               queries.GetOrderQueryHandler
	getBuyerOrdersHandler         queries.GetBuyerOrdersQueryHandler
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
	getAgencyDeliveriesHandler    queries.GetAgencyDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	updatePaymentStatusHandler commands.UpdatePaymentStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getBuyerOrdersHandler queries.GetBuyerOrdersQueryHandler,
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
	getAgencyDeliveriesHandler queries.GetAgencyDeliveriesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		acceptDeliveryHandler:         acceptDeliveryHandler,
		updateDeliveryStatusHandler:   updateDeliveryStatusHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		updatePaymentStatusHandler:    updatePaymentStatusHandler,
		deleteOrderHandler:            deleteOrderHandler,
		getOrderHandler:               getOrderHandler,
		getBuyerOrdersHandler:         getBuyerOrdersHandler,
		getAvailableDeliveriesHandler: getAvailableDeliveriesHandler,
		getAgencyDeliveriesHandler:    getAgencyDeliveriesHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.PUT("/orders/:id/payment", s.UpdatePaymentStatus)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.GET("/buyers/:id/orders", s.GetBuyerOrders)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.PUT("/deliveries/:id/status", s.UpdateDeliveryStatus)
	api.GET("/deliveries/available", s.GetAvailableDeliveries)
	api.GET("/agencies/:id/deliveries", s.GetAgencyDeliveries)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one order line in a creation request.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	BuyerID          string        `json:"buyer_id"`
	Items            []ItemRequest `json:"items"`
	DeliveryFee      int64         `json:"delivery_fee"`
	DropOffAddress   string        `json:"drop_off_address"`
	DropOffLatitude  float64       `json:"drop_off_latitude"`
	DropOffLongitude float64       `json:"drop_off_longitude"`
	Notes            string        `json:"notes"`
}

// AcceptDeliveryRequest is the body of POST /api/v1/deliveries/:id/accept.
type AcceptDeliveryRequest struct {
	AgencyID string `json:"agency_id"`
}

// UpdateStatusRequest is the body of the two status update routes.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ItemResponse is one order line in an order response.
type ItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderResponse is the JSON representation of an order.
type OrderResponse struct {
	ID             string         `json:"id"`
	BuyerID        string         `json:"buyer_id"`
	AgencyID       *string        `json:"agency_id,omitempty"`
	Items          []ItemResponse `json:"items,omitempty"`
	Status         string         `json:"status"`
	PaymentStatus  string         `json:"payment_status"`
	Subtotal       int64          `json:"subtotal"`
	DeliveryFee    int64          `json:"delivery_fee"`
	Total          int64          `json:"total"`
	DropOffAddress string         `json:"drop_off_address"`
	Notes          string         `json:"notes,omitempty"`
}

// DeliveryResponse is the JSON representation of a delivery.
type DeliveryResponse struct {
	ID             string     `json:"id"`
	OrderID        string     `json:"order_id"`
	AgencyID       *string    `json:"agency_id,omitempty"`
	Status         string     `json:"status"`
	PickupAddress  string     `json:"pickup_address"`
	DropOffAddress string     `json:"drop_off_address"`
	EstimatedFee   int64      `json:"estimated_fee"`
	ActualFee      int64      `json:"actual_fee"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	PickedUpAt     *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates an order together with
// its claimable delivery.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return badRequest(ctx, "Invalid buyer ID")
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "Invalid product ID")
		}
		items = append(items, commands.ItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	location, err := kernel.NewGeoPoint(req.DropOffLatitude, req.DropOffLongitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyerID, items, req.DeliveryFee,
		req.DropOffAddress, location, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailToResponse(detail))
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// UpdatePaymentStatus handles PUT /api/v1/orders/:id/payment.
func (s *Server) UpdatePaymentStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParsePaymentStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(orderID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updatePaymentStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetBuyerOrders handles GET /api/v1/buyers/:id/orders.
func (s *Server) GetBuyerOrders(ctx echo.Context) error {
	buyerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid buyer ID")
	}

	query, err := queries.NewGetBuyerOrdersQuery(buyerID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getBuyerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, OrderResponse{
			ID:             o.ID.String(),
			Status:         o.Status.String(),
			PaymentStatus:  o.PaymentStatus.String(),
			Subtotal:       o.Subtotal,
			DeliveryFee:    o.DeliveryFee,
			Total:          o.Total,
			DropOffAddress: o.DropOffAddress,
			Notes:          o.Notes,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept - first come
// first served claim of an available delivery.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID")
	}

	var req AcceptDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agencyID, err := kernel.UUIDFromString(req.AgencyID)
	if err != nil {
		return badRequest(ctx, "Invalid agency ID")
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	claimed, err := s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryToResponse(claimed))
}

// UpdateDeliveryStatus handles PUT /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryToResponse(updated))
}

// GetAvailableDeliveries handles GET /api/v1/deliveries/available.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	query := queries.NewGetAvailableDeliveriesQuery()

	deliveries, err := s.getAvailableDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, DeliveryResponse{
			ID:             d.ID.String(),
			OrderID:        d.OrderID.String(),
			Status:         delivery.Available.String(),
			PickupAddress:  d.PickupAddress,
			DropOffAddress: d.DropOffAddress,
			EstimatedFee:   d.EstimatedFee,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAgencyDeliveries handles GET /api/v1/agencies/:id/deliveries.
func (s *Server) GetAgencyDeliveries(ctx echo.Context) error {
	agencyID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid agency ID")
	}

	query, err := queries.NewGetAgencyDeliveriesQuery(agencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveries, err := s.getAgencyDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	rawAgencyID := agencyID.String()
	response := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, DeliveryResponse{
			ID:             d.ID.String(),
			OrderID:        d.OrderID.String(),
			AgencyID:       &rawAgencyID,
			Status:         d.Status.String(),
			PickupAddress:  d.PickupAddress,
			DropOffAddress: d.DropOffAddress,
			EstimatedFee:   d.EstimatedFee,
			ActualFee:      d.ActualFee,
			AcceptedAt:     d.AcceptedAt,
			PickedUpAt:     d.PickedUpAt,
			DeliveredAt:    d.DeliveredAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func orderToResponse(o *order.Order) OrderResponse {
	var agencyID *string
	if id := o.Agency(); id != nil {
		raw := id.String()
		agencyID = &raw
	}

	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemResponse{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderResponse{
		ID:             o.ID().String(),
		BuyerID:        o.BuyerID().String(),
		AgencyID:       agencyID,
		Items:          items,
		Status:         o.Status().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		Subtotal:       o.Subtotal(),
		DeliveryFee:    o.DeliveryFee(),
		Total:          o.Total(),
		DropOffAddress: o.DropOffAddress(),
		Notes:          o.Notes(),
	}
}

func orderDetailToResponse(detail queries.GetOrderQueryResponse) OrderResponse {
	var agencyID *string
	if detail.AgencyID != nil {
		raw := detail.AgencyID.String()
		agencyID = &raw
	}

	items := make([]ItemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return OrderResponse{
		ID:             detail.ID.String(),
		BuyerID:        detail.BuyerID.String(),
		AgencyID:       agencyID,
		Items:          items,
		Status:         detail.Status.String(),
		PaymentStatus:  detail.PaymentStatus.String(),
		Subtotal:       detail.Subtotal,
		DeliveryFee:    detail.DeliveryFee,
		Total:          detail.Total,
		DropOffAddress: detail.DropOffAddress,
		Notes:          detail.Notes,
	}
}

func deliveryToResponse(d *delivery.Delivery) DeliveryResponse {
	var agencyID *string
	if id := d.Agency(); id != nil {
		raw := id.String()
		agencyID = &raw
	}

	return DeliveryResponse{
		ID:             d.ID().String(),
		OrderID:        d.OrderID().String(),
		AgencyID:       agencyID,
		Status:         d.Status().String(),
		PickupAddress:  d.PickupAddress(),
		DropOffAddress: d.DropOffAddress(),
		EstimatedFee:   d.EstimatedFee(),
		ActualFee:      d.ActualFee(),
		AcceptedAt:     d.AcceptedAt(),
		PickedUpAt:     d.PickedUpAt(),
		DeliveredAt:    d.DeliveredAt(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors to HTTP status codes: missing objects to
// 404, lost races and forbidden transitions to 409, invalid input to 400,
// everything else to 500.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
