package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/table_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"comanda/infras/otel"
	"comanda/infras/postgres"
	"comanda/internal/domains/table/model"
	gDto "comanda/shared/dto"
	gRepo "comanda/shared/repository"
)

type Table interface {
	InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, table model.Table) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
}

func New(db *postgres.Connection, otl otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}

func ByID(id int64) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldID, id))
}

func ByUUID(uuid string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldUUID, uuid))
}
