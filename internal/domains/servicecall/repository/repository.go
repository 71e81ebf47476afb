package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/servicecall_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"comanda/infras/otel"
	"comanda/infras/postgres"
	"comanda/internal/domains/servicecall/model"
	gDto "comanda/shared/dto"
	gRepo "comanda/shared/repository"
)

type ServiceCall interface {
	InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, call model.ServiceCall) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceCall, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.ServiceCall, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceCall, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceCall, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ServiceCall]
}

func New(db *postgres.Connection, otl otel.Otel) ServiceCall {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceCall](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
