package product_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "comanda/infras/otel/mocks"
	"comanda/internal/domains/product/model/dto"
	serviceMocks "comanda/internal/domains/product/service/mocks"
	"comanda/internal/handlers/product"
	"comanda/shared/failure"
)

func newRouter(t *testing.T) (*serviceMocks.MockMenu, http.Handler) {
	t.Helper()

	mockService := serviceMocks.NewMockMenu(gomock.NewController(t))
	handler := product.New(mockService, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return mockService, router
}

func TestHandler_GetProducts(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		setupMock func(mockService *serviceMocks.MockMenu)
		wantCode  int
	}{
		{
			name:   "whole menu",
			target: "/products",
			setupMock: func(mockService *serviceMocks.MockMenu) {
				mockService.EXPECT().List(gomock.Any(), false).Return(dto.GetProductsResponse{Total: 6}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "available only",
			target: "/products?available=true",
			setupMock: func(mockService *serviceMocks.MockMenu) {
				mockService.EXPECT().List(gomock.Any(), true).Return(dto.GetProductsResponse{Total: 5}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "bad flag",
			target:    "/products?available=maybe",
			setupMock: func(_ *serviceMocks.MockMenu) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newRouter(t)
			tt.setupMock(mockService)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_GetProduct(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		setupMock func(mockService *serviceMocks.MockMenu)
		wantCode  int
	}{
		{
			name:   "found",
			target: "/products/3",
			setupMock: func(mockService *serviceMocks.MockMenu) {
				mockService.EXPECT().Get(gomock.Any(), int64(3)).Return(dto.ProductResponse{ID: 3, Name: "Refrigerante lata"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "missing",
			target: "/products/42",
			setupMock: func(mockService *serviceMocks.MockMenu) {
				mockService.EXPECT().Get(gomock.Any(), int64(42)).Return(dto.ProductResponse{}, failure.NotFound("product not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "bad id",
			target:    "/products/abc",
			setupMock: func(_ *serviceMocks.MockMenu) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newRouter(t)
			tt.setupMock(mockService)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
