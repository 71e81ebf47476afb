package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"comanda/infras/otel"
	"comanda/internal/domains/product/service"
	"comanda/shared"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/logger"
	"comanda/transport/http/response"
)

type Handler struct {
	service service.Menu
	otel    otel.Otel
}

func New(service service.Menu, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/products", handler.GetProducts)
	router.Get("/products/{id}", handler.GetProduct)
}

// GetProducts lists the menu
// @Summary List the menu
// @Description Products ordered by name. Pass available=true to keep only items that can be ordered.
// @Tags Product
// @Produce json
// @Param available query boolean false "Only orderable products"
// @Success 200 {object} response.Data[dto.GetProductsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products [get]
func (handler *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".product.GetProducts")
	defer scope.End()

	onlyAvailable := false

	if value := r.URL.Query().Get(constant.RequestParamAvailable); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			err = failure.BadRequestFromString("available must be true or false")
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		onlyAvailable = parsed
	}

	res, err := handler.service.List(ctx, onlyAvailable)
	if err != nil {
		scope.TraceError(err)
		logger.LogFailure(err, failure.IsDomain(err), "failed to get products")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetProduct returns one menu entry
// @Summary Get a product
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Data[dto.ProductResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/products/{id} [get]
func (handler *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".product.GetProduct")
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
		logger.LogFailure(err, failure.IsDomain(err), "failed to get product")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
