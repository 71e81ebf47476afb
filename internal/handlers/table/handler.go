package table

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"comanda/infras/otel"
	"comanda/internal/domains/table/model/dto"
	"comanda/internal/domains/table/service"
	"comanda/shared"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/logger"
	"comanda/shared/validator"
	"comanda/transport/http/response"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/tables", handler.GetTables)
	router.Post("/tables", handler.CreateTable)
	router.Get("/tables/{id}", handler.GetTable)
	router.Patch("/tables/{id}/status", handler.SetTableStatus)
	router.Delete("/tables/{id}", handler.DeleteTable)
	router.Get("/tables/uuid/{uuid}", handler.GetTableByUUID)
}

// CreateTable registers a new dining table
// @Summary Create a table
// @Description Create a table. It starts available and gets a fresh UUID for its QR code.
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Create Table Request"
// @Success 201 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".table.CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to create table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table created by " + shared.ActorID(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTables lists every table with its derived state
// @Summary List tables
// @Tags Table
// @Produce json
// @Param status query string false "Derived state, as text or code"
// @Success 200 {object} response.Data[dto.GetTablesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
// @Security BearerAuth
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".table.GetTables")
	defer scope.End()

	filter := dto.ListFilter{}

	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to get tables")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTable returns one table by its numeric id
// @Summary Get a table
// @Tags Table
// @Produce json
// @Param id path int true "Table ID"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".table.GetTable")
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
		logger.LogFailure(err, failure.IsDomain(err), "failed to get table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTableByUUID resolves the table behind a QR code
// @Summary Get a table by UUID
// @Description Customer entry point. Only the UUID, name and state are exposed.
// @Tags Table
// @Produce json
// @Param uuid path string true "Table UUID"
// @Success 200 {object} response.Data[dto.PublicTableResponse]
// @Failure 404 {object} response.Error
// @Router /v1/tables/uuid/{uuid} [get]
func (handler *Handler) GetTableByUUID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".table.GetTableByUUID")
	defer scope.End()

	res, err := handler.service.GetByUUID(ctx, chi.URLParam(r, constant.RequestParamUUID))
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to get table by uuid")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetTableStatus enables or disables a table
// @Summary Set table status
// @Description Only AVAILABLE and DISABLED can be set. A table with open orders cannot change.
// @Tags Table
// @Accept json
// @Produce json
// @Param id path int true "Table ID"
// @Param request body dto.SetStatusRequest true "Set Status Request"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tables/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetTableStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".table.SetTableStatus")
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
		logger.LogFailure(err, failure.IsDomain(err), "failed to set table status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table status changed by " + shared.ActorID(ctx))

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteTable removes an available table with its finished history
// @Summary Delete a table
// @Tags Table
// @Produce json
// @Param id path int true "Table ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tables/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".table.DeleteTable")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to delete table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table deleted by " + shared.ActorID(ctx))

	response.WithMessage(w, http.StatusOK, "Table deleted successfully")
}
