package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"comanda/config"
	otelMocks "comanda/infras/otel/mocks"
	"comanda/internal/domains/product/mocks"
	"comanda/internal/domains/product/model"
	"comanda/internal/domains/product/model/dto"
	"comanda/internal/domains/product/service"
	cacheMocks "comanda/shared/cache/mocks"
	gDto "comanda/shared/dto"
	"comanda/shared/failure"
)

var errCacheMiss = errors.New("redis: nil")

func newService(t *testing.T) (service.Menu, *mocks.MockProduct, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 30

	repo := mocks.NewMockProduct(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	return service.New(repo, redisCache, cfg, otelMocks.NewOtel()), repo, redisCache
}

func TestMenuService_List(t *testing.T) {
	tests := []struct {
		name          string
		onlyAvailable bool
		setupMock     func(repo *mocks.MockProduct, redisCache *cacheMocks.MockRedisCache)
		wantTotal     int
		wantErr       bool
	}{
		{
			name: "cache hit",
			setupMock: func(_ *mocks.MockProduct, redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().
					Get(gomock.Any(), "product:list:false", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.GetProductsResponse)
						require.True(t, ok)

						res.Total = 3

						return nil
					})
			},
			wantTotal: 3,
		},
		{
			name:          "cache miss reads available products by name",
			onlyAvailable: true,
			setupMock: func(repo *mocks.MockProduct, redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), "product:list:true", gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Product, error) {
						assert.Equal(t, "products.name", params.SortBy)
						assert.Len(t, filter.Filters, 1)

						return []model.Product{
							{ID: 2, Name: "Coxinha", Price: decimal.RequireFromString("7.50"), Available: true},
							{ID: 1, Name: "Pastel de carne", Price: decimal.RequireFromString("10.00"), Available: true},
						}, nil
					})
				redisCache.EXPECT().Save(gomock.Any(), "product:list:true", gomock.Any(), 30).Return(nil)
			},
			wantTotal: 2,
		},
		{
			name: "cache save failure does not fail the read",
			setupMock: func(repo *mocks.MockProduct, redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Product{{ID: 1, Name: "Pudim"}}, nil)
				redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantTotal: 1,
		},
		{
			name: "store failure",
			setupMock: func(repo *mocks.MockProduct, redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, redisCache := newService(t)
			tt.setupMock(repo, redisCache)

			res, err := svc.List(context.Background(), tt.onlyAvailable)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Total)
		})
	}
}

func TestMenuService_Get(t *testing.T) {
	t.Run("found rounds price", func(t *testing.T) {
		svc, repo, redisCache := newService(t)

		redisCache.EXPECT().Get(gomock.Any(), "product:get:5", gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{ID: 5, Name: "Feijoada", Price: decimal.RequireFromString("39.9"), Available: true}, nil)
		redisCache.EXPECT().Save(gomock.Any(), "product:get:5", gomock.Any(), 30).Return(nil)

		res, err := svc.Get(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, "Feijoada", res.Name)
		assert.InDelta(t, 39.90, res.Price, 0.0001)
	})

	t.Run("missing product", func(t *testing.T) {
		svc, repo, redisCache := newService(t)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{}, nil)

		_, err := svc.Get(context.Background(), 99)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
