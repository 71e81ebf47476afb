package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/infras/otel"
	"comanda/internal/domains/order/model"
	"comanda/internal/domains/order/model/dto"
	"comanda/internal/domains/order/repository"
	productRepository "comanda/internal/domains/product/repository"
	tableModel "comanda/internal/domains/table/model"
	tableDto "comanda/internal/domains/table/model/dto"
	tableRepository "comanda/internal/domains/table/repository"
	tableService "comanda/internal/domains/table/service"
	"comanda/shared/constant"
	gDto "comanda/shared/dto"
	"comanda/shared/event"
	"comanda/shared/failure"
	gRepo "comanda/shared/repository"
	"comanda/shared/status"
	"comanda/shared/timezone"
)

const (
	errOrderNotFound = "order not found"
	errTableNotFound = "table not found"
)

type Order interface {
	Create(ctx context.Context, tableUUID string, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	Get(ctx context.Context, id int64) (dto.OrderResponse, error)
	ListByTable(ctx context.Context, tableUUID string, filter dto.ListFilter) (dto.GetOrdersResponse, error)
	ListKitchenQueue(ctx context.Context) (dto.GetOrdersResponse, error)
	SetStatus(ctx context.Context, id int64, req dto.SetStatusRequest) (dto.OrderResponse, error)
	CloseTab(ctx context.Context, tableID int64) (dto.CloseTabResponse, error)
	PurgeAll(ctx context.Context) (dto.PurgeResponse, error)
}

type serviceImpl struct {
	repo         repository.Order
	itemRepo     repository.Item
	productRepo  productRepository.Product
	tableRepo    tableRepository.Table
	tableService tableService.Table
	transactor   gRepo.Transactor
	events       event.Publisher
	clock        timezone.Clock
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Order,
	itemRepo repository.Item,
	productRepo productRepository.Product,
	tableRepo tableRepository.Table,
	tableSvc tableService.Table,
	transactor gRepo.Transactor,
	events event.Publisher,
	clock timezone.Clock,
	cfg *config.Config,
	otl otel.Otel,
) Order {
	return &serviceImpl{
		repo:         repo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		tableRepo:    tableRepo,
		tableService: tableSvc,
		transactor:   transactor,
		events:       events,
		clock:        clock,
		cfg:          cfg,
		otel:         otl,
	}
}

func (s *serviceImpl) deliveryEstimate() time.Duration {
	minutes := s.cfg.App.Ordering.DeliveryEstimateMinutes
	if minutes <= 0 {
		minutes = 15
	}

	return time.Duration(minutes) * time.Minute
}

func (s *serviceImpl) Create(ctx context.Context, tableUUID string, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !tableModel.ValidUUID(tableUUID) {
		return res, failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	if err = req.Check(); err != nil {
		return res, err
	}

	now := s.clock.Now()
	order := model.Order{
		StatusID:         status.OrderPending,
		Notes:            dto.NormalizeNotes(req.Notes),
		DeliveryEstimate: now.Add(s.deliveryEstimate()),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var table tableModel.Table

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		locked, err := s.tableRepo.GetForUpdateTx(ctx, sqltx, tableRepository.ByUUID(tableUUID))
		if err != nil {
			return err
		}

		if !locked.Exists() {
			return failure.NotFound(errTableNotFound) // nolint:wrapcheck
		}

		if !locked.Active {
			return failure.Conflict("table is disabled") // nolint:wrapcheck
		}

		table = locked

		products, err := s.productRepo.GetByIDsTx(ctx, sqltx, req.ProductIDs())
		if err != nil {
			return err
		}

		items := make([]model.Item, 0, len(req.Items))

		for _, line := range req.Items {
			product, ok := products[line.ProductID]
			if !ok {
				return failure.NotFound(fmt.Sprintf("product %d not found", line.ProductID)) // nolint:wrapcheck
			}

			if !product.Available {
				return failure.Conflict(fmt.Sprintf("product %q is unavailable", product.Name)) // nolint:wrapcheck
			}

			items = append(items, model.NewItem(product.ID, product.Name, product.Price, line.Quantity, dto.NormalizeNotes(line.Notes)))
		}

		order.TableID = table.ID
		order.Total = model.SumSubtotals(items)

		id, err := s.repo.InsertReturningIDTx(ctx, sqltx, order)
		if err != nil {
			return err
		}

		order.ID = id
		for i := range items {
			items[i].OrderID = id
		}

		if err = s.itemRepo.InsertBulkTx(ctx, sqltx, items); err != nil {
			return err
		}

		order.Items = items

		return s.tableRepo.UpdateTx(ctx, sqltx, map[string]any{
			tableModel.FieldStatusID:  status.TableInUse,
			tableModel.FieldUpdatedAt: now,
		}, tableRepository.ByID(table.ID))
	})
	if err != nil {
		if failure.IsDomain(err) {
			return res, err
		}

		log.Error().Err(err).Str("table_uuid", tableUUID).Msg("failed to create order")

		return res, fmt.Errorf("failed to create order: %w", err)
	}

	order.TableUUID = table.UUID
	order.TableName = table.Name
	res.FromModel(order)

	table.StatusID = status.TableInUse
	table.UpdatedAt = now

	var tableRes tableDto.TableResponse
	tableRes.FromModel(table, true)

	s.events.Publish(ctx,
		event.New(event.OrderCreated, table.UUID, now, res),
		event.New(event.TableStatusChanged, table.UUID, now, tableRes),
	)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Int64("order_id", id).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if !order.Exists() {
		return res, failure.NotFound(errOrderNotFound) // nolint:wrapcheck
	}

	orders, err := s.attachItems(ctx, []model.Order{order})
	if err != nil {
		return res, err
	}

	res.FromModel(orders[0])

	return res, nil
}

func (s *serviceImpl) ListByTable(ctx context.Context, tableUUID string, filter dto.ListFilter) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.ListByTable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !tableModel.ValidUUID(tableUUID) {
		return res, failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	table, err := s.tableRepo.Get(ctx, tableRepository.ByUUID(tableUUID), tableModel.FieldID)
	if err != nil {
		log.Error().Err(err).Str("table_uuid", tableUUID).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if !table.Exists() {
		return res, failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	group := gDto.And(gDto.Eq(model.TableName, model.FieldTableID, table.ID))
	if filter.Status != nil {
		group.Filters = append(group.Filters, gDto.Eq(model.TableName, model.FieldStatusID, *filter.Status))
	}

	if filter.Since != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldCreatedAt,
			Value:    *filter.Since,
			Operator: gDto.FilterOperatorGreaterEq,
		})
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	return s.list(ctx, params, group)
}

func (s *serviceImpl) ListKitchenQueue(ctx context.Context) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.ListKitchenQueue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := gDto.And(gDto.In(model.TableName, model.FieldStatusID, status.KitchenOrderStatuses()))
	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	return s.list(ctx, params, group)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	orders, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list orders")

		return res, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err = s.attachItems(ctx, orders)
	if err != nil {
		return res, err
	}

	res.FromModels(orders)

	return res, nil
}

// attachItems loads the items of orders in one query.
func (s *serviceImpl) attachItems(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	params := gDto.QueryParams{SortBy: model.ItemTableName + "." + model.ItemFieldID, SortDir: gDto.SortDirAsc}
	filter := gDto.And(gDto.In(model.ItemTableName, model.ItemFieldOrderID, model.IDs(orders)))

	items, err := s.itemRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	byOrder := make(map[int64][]model.Item, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return orders, nil
}

func (s *serviceImpl) SetStatus(ctx context.Context, id int64, req dto.SetStatusRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	target, err := req.Target()
	if err != nil {
		return res, err
	}

	var order model.Order

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, sqltx, byID(id))
		if err != nil {
			return err
		}

		if !locked.Exists() {
			return failure.NotFound(errOrderNotFound) // nolint:wrapcheck
		}

		if locked.StatusID == status.OrderCompleted && target != status.OrderCompleted {
			return failure.Conflict("order is already completed") // nolint:wrapcheck
		}

		order = locked
		order.StatusID = target
		order.UpdatedAt = s.clock.Now()

		return s.repo.UpdateTx(ctx, sqltx, map[string]any{
			model.FieldStatusID:  order.StatusID,
			model.FieldUpdatedAt: order.UpdatedAt,
		}, byID(id))
	})
	if err != nil {
		if failure.IsDomain(err) {
			return res, err
		}

		log.Error().Err(err).Int64("order_id", id).Msg("failed to set order status")

		return res, fmt.Errorf("failed to set order status: %w", err)
	}

	orders, err := s.attachItems(ctx, []model.Order{order})
	if err != nil {
		return res, err
	}

	res.FromModel(orders[0])
	s.events.Publish(ctx, event.New(event.OrderStatusChanged, order.TableUUID, order.UpdatedAt, res))

	return res, nil
}

func (s *serviceImpl) CloseTab(ctx context.Context, tableID int64) (res dto.CloseTabResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.CloseTab")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()

	var table tableModel.Table

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		locked, err := s.tableRepo.GetForUpdateTx(ctx, sqltx, tableRepository.ByID(tableID))
		if err != nil {
			return err
		}

		if !locked.Exists() {
			return failure.NotFound(errTableNotFound) // nolint:wrapcheck
		}

		table = locked

		open, err := s.repo.GetAllForUpdateTx(ctx, sqltx, gDto.QueryParams{}, repository.OpenOrdersFilter(tableID))
		if err != nil {
			return err
		}

		if len(open) == 0 {
			return failure.Conflict("table has no open orders") // nolint:wrapcheck
		}

		err = s.repo.UpdateTx(ctx, sqltx, map[string]any{
			model.FieldStatusID:  status.OrderCompleted,
			model.FieldUpdatedAt: now,
		}, gDto.And(gDto.In(model.TableName, model.FieldID, model.IDs(open))))
		if err != nil {
			return err
		}

		res.Total = dto.Money(model.SumTotals(open))
		res.ClosedOrders = len(open)

		return s.tableService.ResetAfterCloseTx(ctx, sqltx, tableID)
	})
	if err != nil {
		if failure.IsDomain(err) {
			return res, err
		}

		log.Error().Err(err).Int64("table_id", tableID).Msg("failed to close tab")

		return res, fmt.Errorf("failed to close tab: %w", err)
	}

	res.TableID = table.ID
	res.TableUUID = table.UUID
	res.ClosedAt = timezone.Format(now, constant.DateFormat)

	table.StatusID = status.TableAvailable
	table.Active = true
	table.UpdatedAt = now

	var tableRes tableDto.TableResponse
	tableRes.FromModel(table, false)

	s.events.Publish(ctx,
		event.New(event.TabClosed, table.UUID, now, res),
		event.New(event.TableStatusChanged, table.UUID, now, tableRes),
	)

	return res, nil
}

func (s *serviceImpl) PurgeAll(ctx context.Context) (res dto.PurgeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.PurgeAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		deleted, err := s.repo.DeleteAllTx(ctx, sqltx)
		if err != nil {
			return err
		}

		res.Deleted = deleted

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to purge orders")

		return res, fmt.Errorf("failed to purge orders: %w", err)
	}

	log.Warn().Int64("deleted", res.Deleted).Msg("orders purged")
	s.events.Publish(ctx, event.New(event.OrdersPurged, "", s.clock.Now(), res))

	return res, nil
}

func byID(id int64) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldID, id))
}
