//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"comanda/config"
	"comanda/infras/jwt"
	"comanda/infras/redis"
	"comanda/permissions"
	"comanda/shared/cache"
	gRepo "comanda/shared/repository"
	"comanda/shared/timezone"
	"comanda/transport/http"
	"comanda/transport/http/middleware"
	"comanda/transport/http/router"
	"comanda/transport/ws"

	authService "comanda/internal/domains/auth/service"
	orderRepository "comanda/internal/domains/order/repository"
	orderService "comanda/internal/domains/order/service"
	productRepository "comanda/internal/domains/product/repository"
	productService "comanda/internal/domains/product/service"
	callRepository "comanda/internal/domains/servicecall/repository"
	callService "comanda/internal/domains/servicecall/service"
	staffRepository "comanda/internal/domains/staff/repository"
	tableRepository "comanda/internal/domains/table/repository"
	tableService "comanda/internal/domains/table/service"

	authHandler "comanda/internal/handlers/auth"
	boardHandler "comanda/internal/handlers/board"
	orderHandler "comanda/internal/handlers/order"
	productHandler "comanda/internal/handlers/product"
	callHandler "comanda/internal/handlers/servicecall"
	tableHandler "comanda/internal/handlers/table"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	ProvideDatabase,
	ProvideOtel,
	redis.New,
	jwt.New,
	timezone.NewClock,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
	ws.NewHub,
	ProvideEventFanout,
	ProvidePublisher,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderRepository.NewItem,
	productRepository.New,
	orderService.New,
)

var productDomain = wire.NewSet(
	productService.New,
)

var serviceCallDomain = wire.NewSet(
	callRepository.New,
	callService.New,
)

var authDomain = wire.NewSet(
	staffRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	tableDomain,
	orderDomain,
	productDomain,
	serviceCallDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	tableHandler.New,
	orderHandler.New,
	productHandler.New,
	callHandler.New,
	boardHandler.New,
	router.New,
)

func InitializeApp() (*App, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return nil, nil, nil
}
