package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/infras/otel"
	"comanda/internal/domains/product/model"
	"comanda/internal/domains/product/model/dto"
	"comanda/internal/domains/product/repository"
	"comanda/shared"
	"comanda/shared/cache"
	"comanda/shared/constant"
	gDto "comanda/shared/dto"
	"comanda/shared/failure"
)

const (
	cacheGetProduct   = "product:get"
	cacheListProducts = "product:list"
)

// Menu is the read side of the product catalogue. Entries are cached and expire by TTL.
type Menu interface {
	List(ctx context.Context, onlyAvailable bool) (dto.GetProductsResponse, error)
	Get(ctx context.Context, id int64) (dto.ProductResponse, error)
}

type serviceImpl struct {
	repo  repository.Product
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Product, redisCache cache.RedisCache, cfg *config.Config, otl otel.Otel) Menu {
	return &serviceImpl{
		repo:  repo,
		cache: redisCache,
		cfg:   cfg,
		otel:  otl,
	}
}

func (s *serviceImpl) List(ctx context.Context, onlyAvailable bool) (res dto.GetProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheListProducts, onlyAvailable)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for menu")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldName, SortDir: gDto.SortDirAsc}

	products, err := s.repo.GetAll(ctx, params, repository.Menu(onlyAvailable))
	if err != nil {
		log.Error().Err(err).Msg("failed to get products")

		return res, fmt.Errorf("failed to get products: %w", err)
	}

	res.FromModels(products)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetProduct, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for product")

		return res, nil
	}

	product, err := s.repo.Get(ctx, repository.ByID(id))
	if err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("failed to get product")

		return res, fmt.Errorf("failed to get product: %w", err)
	}

	if !product.Exists() {
		return res, failure.NotFound("product not found") // nolint:wrapcheck
	}

	res.FromModel(product)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to cache menu")
	}
}
