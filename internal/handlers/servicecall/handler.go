package servicecall

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"comanda/infras/otel"
	"comanda/internal/domains/servicecall/model/dto"
	"comanda/internal/domains/servicecall/service"
	"comanda/shared"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/logger"
	"comanda/shared/validator"
	"comanda/transport/http/response"
)

type Handler struct {
	service service.ServiceCall
	otel    otel.Otel
}

func New(service service.ServiceCall, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/tables/uuid/{uuid}/calls", handler.CreateCall)
	router.Get("/tables/uuid/{uuid}/calls", handler.GetTableCalls)
	router.Get("/tables/uuid/{uuid}/calls/{callID}", handler.GetTableCall)
	router.Post("/tables/uuid/{uuid}/calls/{callID}/cancel", handler.CancelCall)
	router.Get("/calls/pending", handler.GetPendingCalls)
	router.Get("/calls", handler.GetCallHistory)
	router.Post("/calls/{id}/attend", handler.AttendCall)
}

// CreateCall asks for staff attention from a table
// @Summary Call a waiter
// @Description One pending call per reason and table. ASSISTANCE and URGENT share a cooldown.
// @Tags ServiceCall
// @Accept json
// @Produce json
// @Param uuid path string true "Table UUID"
// @Param request body dto.CreateCallRequest true "Create Call Request"
// @Success 201 {object} response.Data[dto.CallResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Error
// @Router /v1/tables/uuid/{uuid}/calls [post]
func (handler *Handler) CreateCall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".servicecall.CreateCall")
	defer scope.End()

	req := dto.CreateCallRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, chi.URLParam(r, constant.RequestParamUUID), req)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to create service call")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service call created")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTableCalls lists the call history of one table
// @Summary Table call history
// @Tags ServiceCall
// @Produce json
// @Param uuid path string true "Table UUID"
// @Param status query string false "Status code or text"
// @Param since query string false "RFC3339 lower bound on created_at"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Data[dto.GetCallsResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tables/uuid/{uuid}/calls [get]
func (handler *Handler) GetTableCalls(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".servicecall.GetTableCalls")
	defer scope.End()

	filter := dto.HistoryFilter{}

	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filter.TableUUID = chi.URLParam(r, constant.RequestParamUUID)

	handler.history(ctx, w, scope, filter)
}

// GetCallHistory lists calls across tables
// @Summary Call history
// @Tags ServiceCall
// @Produce json
// @Param table_uuid query string false "Table UUID"
// @Param status query string false "Status code or text"
// @Param since query string false "RFC3339 lower bound on created_at"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Data[dto.GetCallsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/calls [get]
// @Security BearerAuth
func (handler *Handler) GetCallHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".servicecall.GetCallHistory")
	defer scope.End()

	filter := dto.HistoryFilter{}

	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	handler.history(ctx, w, scope, filter)
}

func (handler *Handler) history(ctx context.Context, w http.ResponseWriter, scope otel.Scope, filter dto.HistoryFilter) {
	res, err := handler.service.History(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to list service calls")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTableCall returns one call of a table
// @Summary Get a table call
// @Tags ServiceCall
// @Produce json
// @Param uuid path string true "Table UUID"
// @Param callID path int true "Call ID"
// @Success 200 {object} response.Data[dto.CallResponse]
// @Failure 404 {object} response.Error
// @Router /v1/tables/uuid/{uuid}/calls/{callID} [get]
func (handler *Handler) GetTableCall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".servicecall.GetTableCall")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamCallID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id, chi.URLParam(r, constant.RequestParamUUID))
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to get service call")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelCall withdraws a pending call from the table that made it
// @Summary Cancel a call
// @Tags ServiceCall
// @Produce json
// @Param uuid path string true "Table UUID"
// @Param callID path int true "Call ID"
// @Success 200 {object} response.Data[dto.CallResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tables/uuid/{uuid}/calls/{callID}/cancel [post]
func (handler *Handler) CancelCall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".servicecall.CancelCall")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamCallID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Cancel(ctx, id, chi.URLParam(r, constant.RequestParamUUID))
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to cancel service call")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPendingCalls lists the calls waiting for staff
// @Summary Pending calls
// @Description Oldest first.
// @Tags ServiceCall
// @Produce json
// @Success 200 {object} response.Data[dto.GetCallsResponse]
// @Router /v1/calls/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingCalls(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".servicecall.GetPendingCalls")
	defer scope.End()

	res, err := handler.service.ListPending(ctx)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to list pending calls")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AttendCall marks a pending call as attended by the authenticated staff member
// @Summary Attend a call
// @Tags ServiceCall
// @Produce json
// @Param id path int true "Call ID"
// @Success 200 {object} response.Data[dto.CallResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/calls/{id}/attend [post]
// @Security BearerAuth
func (handler *Handler) AttendCall(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".servicecall.AttendCall")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Attend(ctx, id, shared.ActorID(ctx))
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to attend service call")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service call attended by " + shared.ActorID(ctx))

	response.WithJSON(w, http.StatusOK, res)
}
