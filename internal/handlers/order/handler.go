package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"comanda/infras/otel"
	"comanda/internal/domains/order/model/dto"
	"comanda/internal/domains/order/service"
	"comanda/shared"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/logger"
	"comanda/shared/validator"
	"comanda/transport/http/response"
)

type Handler struct {
	service service.Order
	otel    otel.Otel
}

func New(service service.Order, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/tables/uuid/{uuid}/orders", handler.CreateOrder)
	router.Get("/tables/uuid/{uuid}/orders", handler.GetTableOrders)
	router.Post("/tables/{id}/close", handler.CloseTab)
	router.Get("/orders/kitchen", handler.GetKitchenQueue)
	router.Get("/orders/{id}", handler.GetOrder)
	router.Patch("/orders/{id}/status", handler.SetOrderStatus)
	router.Delete("/orders", handler.PurgeOrders)
}

// CreateOrder places an order against a table
// @Summary Place an order
// @Description Prices are frozen from the catalogue. The table moves to IN_USE.
// @Tags Order
// @Accept json
// @Produce json
// @Param uuid path string true "Table UUID"
// @Param request body dto.CreateOrderRequest true "Create Order Request"
// @Success 201 {object} response.Data[dto.OrderResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tables/uuid/{uuid}/orders [post]
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".order.CreateOrder")
	defer scope.End()

	req := dto.CreateOrderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, chi.URLParam(r, constant.RequestParamUUID), req)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to create order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Order placed")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTableOrders lists the orders of a table
// @Summary List table orders
// @Tags Order
// @Produce json
// @Param uuid path string true "Table UUID"
// @Param status query string false "Status code or text"
// @Param since query string false "RFC3339 lower bound on created_at"
// @Success 200 {object} response.Data[dto.GetOrdersResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tables/uuid/{uuid}/orders [get]
func (handler *Handler) GetTableOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".order.GetTableOrders")
	defer scope.End()

	filter := dto.ListFilter{}

	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListByTable(ctx, chi.URLParam(r, constant.RequestParamUUID), filter)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to list table orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CloseTab completes every open order of a table
// @Summary Close a tab
// @Description Completes all open orders, returns the grand total and frees the table.
// @Tags Order
// @Produce json
// @Param id path int true "Table ID"
// @Success 200 {object} response.Data[dto.CloseTabResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tables/{id}/close [post]
// @Security BearerAuth
func (handler *Handler) CloseTab(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".order.CloseTab")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.CloseTab(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to close tab")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tab closed by " + shared.ActorID(ctx))

	response.WithJSON(w, http.StatusOK, res)
}

// GetKitchenQueue lists pending and preparing orders
// @Summary Kitchen queue
// @Description Pending and preparing orders, oldest first.
// @Tags Order
// @Produce json
// @Success 200 {object} response.Data[dto.GetOrdersResponse]
// @Router /v1/orders/kitchen [get]
// @Security BearerAuth
func (handler *Handler) GetKitchenQueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".order.GetKitchenQueue")
	defer scope.End()

	res, err := handler.service.ListKitchenQueue(ctx)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to list kitchen queue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetOrder returns one order with its items
// @Summary Get an order
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".order.GetOrder")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to get order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetOrderStatus moves an order through the kitchen flow
// @Summary Set order status
// @Description Accepts status_id or status text. A completed order cannot be reopened.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body dto.SetStatusRequest true "Set Status Request"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/orders/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".order.SetOrderStatus")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.SetStatusRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to set order status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Order status changed by " + shared.ActorID(ctx))

	response.WithJSON(w, http.StatusOK, res)
}

// PurgeOrders deletes every order
// @Summary Purge orders
// @Description Deletes all orders and their items. Admin only.
// @Tags Order
// @Produce json
// @Success 200 {object} response.Data[dto.PurgeResponse]
// @Router /v1/orders [delete]
// @Security BearerAuth
func (handler *Handler) PurgeOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".order.PurgeOrders")
	defer scope.End()

	res, err := handler.service.PurgeAll(ctx)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to purge orders")

		response.WithError(w, err)

		return
	}

	log.Warn().Str("staff_id", shared.ActorID(ctx)).Int64("deleted", res.Deleted).Msg("orders purged")

	response.WithJSON(w, http.StatusOK, res)
}
