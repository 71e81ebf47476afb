package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"comanda/infras/otel"
	orderModel "comanda/internal/domains/order/model"
	orderRepository "comanda/internal/domains/order/repository"
	callModel "comanda/internal/domains/servicecall/model"
	callRepository "comanda/internal/domains/servicecall/repository"
	"comanda/internal/domains/table/model"
	"comanda/internal/domains/table/model/dto"
	"comanda/internal/domains/table/repository"
	"comanda/shared"
	"comanda/shared/cache"
	"comanda/shared/constant"
	gDto "comanda/shared/dto"
	"comanda/shared/event"
	"comanda/shared/failure"
	gRepo "comanda/shared/repository"
	"comanda/shared/status"
	"comanda/shared/timezone"
)

const (
	errTableNotFound = "table not found"
	errOpenOrders    = "table has open orders"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	Get(ctx context.Context, id int64) (dto.TableResponse, error)
	GetByUUID(ctx context.Context, tableUUID string) (dto.PublicTableResponse, error)
	GetAll(ctx context.Context, filter dto.ListFilter) (dto.GetTablesResponse, error)
	SetStatus(ctx context.Context, id int64, req dto.SetStatusRequest) (dto.TableResponse, error)
	Delete(ctx context.Context, id int64) error

	// ResetAfterCloseTx makes the table available again once its tab is closed.
	// It runs inside the caller's transaction.
	ResetAfterCloseTx(ctx context.Context, sqltx *sqlx.Tx, id int64) error
}

type serviceImpl struct {
	repo       repository.Table
	orderRepo  orderRepository.Order
	callRepo   callRepository.ServiceCall
	transactor gRepo.Transactor
	cache      cache.RedisCache
	events     event.Publisher
	clock      timezone.Clock
	otel       otel.Otel
}

func New(
	repo repository.Table,
	orderRepo orderRepository.Order,
	callRepo callRepository.ServiceCall,
	transactor gRepo.Transactor,
	redisCache cache.RedisCache,
	events event.Publisher,
	clock timezone.Clock,
	otl otel.Otel,
) Table {
	return &serviceImpl{
		repo:       repo,
		orderRepo:  orderRepo,
		callRepo:   callRepo,
		transactor: transactor,
		cache:      redisCache,
		events:     events,
		clock:      clock,
		otel:       otl,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Check(); err != nil {
		return res, err
	}

	table := req.ToModel(s.clock.Now())

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		id, err := s.repo.InsertReturningIDTx(ctx, sqltx, table)
		if err != nil {
			return err
		}

		table.ID = id

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	res.FromModel(table, false)
	s.events.Publish(ctx, event.New(event.TableCreated, table.UUID, table.CreatedAt, res))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	table, open, err := s.find(ctx, repository.ByID(id))
	if err != nil {
		return res, err
	}

	res.FromModel(table, open)

	return res, nil
}

func (s *serviceImpl) GetByUUID(ctx context.Context, tableUUID string) (res dto.PublicTableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetByUUID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !model.ValidUUID(tableUUID) {
		return res, failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	table, open, err := s.find(ctx, repository.ByUUID(tableUUID))
	if err != nil {
		return res, err
	}

	res.FromModel(table, open)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Table, bool, error) {
	table, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return table, false, fmt.Errorf("failed to get table: %w", err)
	}

	if !table.Exists() {
		return table, false, failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	open, err := s.orderRepo.OpenTableIDs(ctx, []int64{table.ID})
	if err != nil {
		log.Error().Err(err).Int64("table_id", table.ID).Msg("failed to check open orders")

		return table, false, fmt.Errorf("failed to check open orders: %w", err)
	}

	return table, open[table.ID], nil
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListFilter) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldID, SortDir: gDto.SortDirAsc}

	tables, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	ids := make([]int64, len(tables))
	for i, table := range tables {
		ids[i] = table.ID
	}

	open, err := s.orderRepo.OpenTableIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to check open orders")

		return res, fmt.Errorf("failed to check open orders: %w", err)
	}

	res.FromModels(tables, open, filter)

	return res, nil
}

// lockTx loads the table row for update and reports whether it has open orders.
func (s *serviceImpl) lockTx(ctx context.Context, sqltx *sqlx.Tx, id int64) (model.Table, bool, error) {
	table, err := s.repo.GetForUpdateTx(ctx, sqltx, repository.ByID(id))
	if err != nil {
		return table, false, fmt.Errorf("failed to lock table: %w", err)
	}

	if !table.Exists() {
		return table, false, failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	open, err := s.orderRepo.ExistTx(ctx, sqltx, orderRepository.OpenOrdersFilter(id))
	if err != nil {
		return table, false, fmt.Errorf("failed to check open orders: %w", err)
	}

	return table, open, nil
}

func (s *serviceImpl) SetStatus(ctx context.Context, id int64, req dto.SetStatusRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	target, err := req.Target()
	if err != nil {
		return res, err
	}

	if !target.Settable() {
		return res, failure.BadRequestFromString(fmt.Sprintf("table status %q cannot be set directly", target)) // nolint:wrapcheck
	}

	var table model.Table

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		locked, open, err := s.lockTx(ctx, sqltx, id)
		if err != nil {
			return err
		}

		table = locked

		if open {
			return failure.Conflict(errOpenOrders) // nolint:wrapcheck
		}

		table.StatusID = target
		table.Active = target == status.TableAvailable
		table.UpdatedAt = s.clock.Now()

		return s.repo.UpdateTx(ctx, sqltx, map[string]any{
			model.FieldStatusID:  table.StatusID,
			model.FieldActive:    table.Active,
			model.FieldUpdatedAt: table.UpdatedAt,
		}, repository.ByID(id))
	})
	if err != nil {
		if failure.IsDomain(err) {
			return res, err
		}

		log.Error().Err(err).Int64("table_id", id).Msg("failed to set table status")

		return res, fmt.Errorf("failed to set table status: %w", err)
	}

	res.FromModel(table, false)
	s.events.Publish(ctx, event.New(event.TableStatusChanged, table.UUID, table.UpdatedAt, res))

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var table model.Table

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		locked, open, err := s.lockTx(ctx, sqltx, id)
		if err != nil {
			return err
		}

		table = locked

		if state := model.DeriveState(table, open); state != status.TableAvailable {
			return failure.Conflict(fmt.Sprintf("table is %s and cannot be deleted", state)) // nolint:wrapcheck
		}

		completed := gDto.And(
			gDto.Eq(orderModel.TableName, orderModel.FieldTableID, id),
			gDto.Eq(orderModel.TableName, orderModel.FieldStatusID, status.OrderCompleted),
		)
		if _, err := s.orderRepo.DeleteTx(ctx, sqltx, completed); err != nil {
			return err
		}

		calls := gDto.And(gDto.Eq(callModel.TableName, callModel.FieldTableUUID, table.UUID))
		if _, err := s.callRepo.DeleteTx(ctx, sqltx, calls); err != nil {
			return err
		}

		_, err = s.repo.DeleteTx(ctx, sqltx, repository.ByID(id))

		return err
	})
	if err != nil {
		if failure.IsDomain(err) {
			return err
		}

		log.Error().Err(err).Int64("table_id", id).Msg("failed to delete table")

		return fmt.Errorf("failed to delete table: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, callModel.PendingCachePrefix)

	s.events.Publish(ctx, event.New(event.TableDeleted, table.UUID, s.clock.Now(), map[string]any{
		"id":   table.ID,
		"uuid": table.UUID,
	}))

	return nil
}

func (s *serviceImpl) ResetAfterCloseTx(ctx context.Context, sqltx *sqlx.Tx, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.ResetAfterCloseTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.repo.UpdateTx(ctx, sqltx, map[string]any{
		model.FieldStatusID:  status.TableAvailable,
		model.FieldActive:    true,
		model.FieldUpdatedAt: s.clock.Now(),
	}, repository.ByID(id))
	if err != nil {
		return fmt.Errorf("failed to reset table: %w", err)
	}

	return nil
}
