package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/order_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"comanda/infras/otel"
	"comanda/infras/postgres"
	"comanda/internal/domains/order/model"
	"comanda/shared/constant"
	gDto "comanda/shared/dto"
	gRepo "comanda/shared/repository"
	"comanda/shared/status"
)

type Order interface {
	InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, order model.Order) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	GetAllForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int64, error)
	DeleteAllTx(ctx context.Context, sqltx *sqlx.Tx) (int64, error)

	// OpenTableIDs reports which of tableIDs have at least one order that is not completed.
	OpenTableIDs(ctx context.Context, tableIDs []int64) (map[int64]bool, error)
}

type Item interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, items []model.Item) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Order]
	otel otel.Otel
}

func New(db *postgres.Connection, otl otel.Otel) Order {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Order](model.EntityName, model.TableName, model.FieldID, db, otl),
		otel:       otl,
	}
}

// OpenOrdersFilter matches the orders of tableID that still count against it.
func OpenOrdersFilter(tableID int64) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldTableID, tableID),
		gDto.In(model.TableName, model.FieldStatusID, status.OpenOrderStatuses()),
	)
}

func (r *repositoryImpl) OpenTableIDs(ctx context.Context, tableIDs []int64) (map[int64]bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.OpenTableIDs")
	defer scope.End()

	res := make(map[int64]bool, len(tableIDs))
	if len(tableIDs) == 0 {
		return res, nil
	}

	filter := gDto.And(
		gDto.In(model.TableName, model.FieldTableID, tableIDs),
		gDto.In(model.TableName, model.FieldStatusID, status.OpenOrderStatuses()),
	)

	orders, err := r.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldTableID)
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	for _, order := range orders {
		res[order.TableID] = true
	}

	return res, nil
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.Item]
}

func NewItem(db *postgres.Connection, otl otel.Otel) Item {
	return &itemRepositoryImpl{
		Repository: gRepo.NewRepository[model.Item](model.ItemEntityName, model.ItemTableName, model.ItemFieldID, db, otl),
	}
}
