package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/product_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"comanda/infras/otel"
	"comanda/infras/postgres"
	"comanda/internal/domains/product/model"
	"comanda/shared/constant"
	gDto "comanda/shared/dto"
	gRepo "comanda/shared/repository"
)

type Product interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Product, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Product, error)

	// GetByIDsTx returns the products among ids, keyed by id. Missing ids are absent from the map.
	GetByIDsTx(ctx context.Context, sqltx *sqlx.Tx, ids []int64) (map[int64]model.Product, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Product]
	otel otel.Otel
}

func New(db *postgres.Connection, otl otel.Otel) Product {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Product](model.EntityName, model.TableName, model.FieldID, db, otl),
		otel:       otl,
	}
}

func ByID(id int64) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldID, id))
}

// Menu selects the menu, optionally keeping orderable products only.
func Menu(onlyAvailable bool) gDto.FilterGroup {
	if !onlyAvailable {
		return gDto.FilterGroup{}
	}

	return gDto.And(gDto.Eq(model.TableName, model.FieldAvailable, true))
}

func (r *repositoryImpl) GetByIDsTx(ctx context.Context, sqltx *sqlx.Tx, ids []int64) (map[int64]model.Product, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".product.GetByIDsTx")
	defer scope.End()

	products, err := r.GetAllTx(ctx, sqltx, gDto.QueryParams{}, gDto.And(gDto.In(model.TableName, model.FieldID, ids)))
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	res := make(map[int64]model.Product, len(products))
	for _, product := range products {
		res[product.ID] = product
	}

	return res, nil
}
