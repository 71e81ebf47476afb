package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/staff_mock.go -package=mocks

import (
	"context"

	"comanda/infras/otel"
	"comanda/infras/postgres"
	"comanda/internal/domains/staff/model"
	gDto "comanda/shared/dto"
	gRepo "comanda/shared/repository"
)

type Staff interface {
	Insert(ctx context.Context, staff model.Staff) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Staff, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Staff]
}

func New(db *postgres.Connection, otl otel.Otel) Staff {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Staff](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}

func ByID(id string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldID, id))
}

func ByEmail(email string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldEmail, model.NormalizeEmail(email)))
}
