package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"comanda/config"
	otelMocks "comanda/infras/otel/mocks"
	"comanda/internal/domains/order/mocks"
	"comanda/internal/domains/order/model"
	"comanda/internal/domains/order/model/dto"
	"comanda/internal/domains/order/service"
	productMocks "comanda/internal/domains/product/mocks"
	productModel "comanda/internal/domains/product/model"
	tableMocks "comanda/internal/domains/table/mocks"
	tableModel "comanda/internal/domains/table/model"
	tableServiceMocks "comanda/internal/domains/table/service/mocks"
	gDto "comanda/shared/dto"
	"comanda/shared/event"
	eventMocks "comanda/shared/event/mocks"
	"comanda/shared/failure"
	repoMocks "comanda/shared/repository/mocks"
	"comanda/shared/status"
	clockMocks "comanda/shared/timezone/mocks"
)

const tableUUID = "5f0c8b1e-2d7a-4c1b-8e3f-9a6b7c8d9e0f"

var now = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

type fixture struct {
	orderRepo    *mocks.MockOrder
	itemRepo     *mocks.MockItem
	productRepo  *productMocks.MockProduct
	tableRepo    *tableMocks.MockTable
	tableService *tableServiceMocks.MockTable
	publisher    *eventMocks.MockPublisher
	transactor   *repoMocks.Transactor
	svc          service.Order
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Ordering.DeliveryEstimateMinutes = 15

	f := &fixture{
		orderRepo:    mocks.NewMockOrder(ctrl),
		itemRepo:     mocks.NewMockItem(ctrl),
		productRepo:  productMocks.NewMockProduct(ctrl),
		tableRepo:    tableMocks.NewMockTable(ctrl),
		tableService: tableServiceMocks.NewMockTable(ctrl),
		publisher:    eventMocks.NewMockPublisher(ctrl),
		transactor:   repoMocks.NewTransactor(),
	}

	f.svc = service.New(
		f.orderRepo,
		f.itemRepo,
		f.productRepo,
		f.tableRepo,
		f.tableService,
		f.transactor,
		f.publisher,
		clockMocks.NewClock(now),
		cfg,
		otelMocks.NewOtel(),
	)

	return f
}

func activeTable() tableModel.Table {
	return tableModel.Table{ID: 3, UUID: tableUUID, Name: "Mesa 3", StatusID: status.TableAvailable, Active: true}
}

func menu() map[int64]productModel.Product {
	return map[int64]productModel.Product{
		1: {ID: 1, Name: "Feijoada", Price: decimal.RequireFromString("10.00"), Available: true},
		2: {ID: 2, Name: "Guarana", Price: decimal.RequireFromString("5.00"), Available: true},
		3: {ID: 3, Name: "Pudim", Price: decimal.RequireFromString("7.50"), Available: false},
	}
}

func TestOrderService_Create(t *testing.T) {
	f := newFixture(t)

	var inserted model.Order
	var insertedItems []model.Item
	var published []event.Event

	f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeTable(), nil)
	f.productRepo.EXPECT().GetByIDsTx(gomock.Any(), gomock.Any(), []int64{1, 2}).Return(menu(), nil)
	f.orderRepo.EXPECT().
		InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, order model.Order) (int64, error) {
			inserted = order

			return 11, nil
		})
	f.itemRepo.EXPECT().
		InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, items []model.Item) error {
			insertedItems = items

			return nil
		})
	f.tableRepo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), map[string]any{
			tableModel.FieldStatusID:  status.TableInUse,
			tableModel.FieldUpdatedAt: now,
		}, gomock.Any()).
		Return(nil)
	f.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, events ...event.Event) { published = events })

	notes := "  sem cebola "
	res, err := f.svc.Create(context.Background(), tableUUID, dto.CreateOrderRequest{
		Items: []dto.CreateItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		Notes: &notes,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), res.ID)
	assert.InDelta(t, 25.0, res.Total, 0.0001)
	assert.Equal(t, "pendente", res.Status)
	assert.Equal(t, tableUUID, res.TableUUID)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Feijoada", res.Items[0].ProductName)
	assert.InDelta(t, 20.0, res.Items[0].Subtotal, 0.0001)

	assert.Equal(t, int64(3), inserted.TableID)
	assert.True(t, decimal.RequireFromString("25").Equal(inserted.Total))
	assert.Equal(t, now.Add(15*time.Minute), inserted.DeliveryEstimate)
	require.NotNil(t, inserted.Notes)
	assert.Equal(t, "sem cebola", *inserted.Notes)

	require.Len(t, insertedItems, 2)
	for _, item := range insertedItems {
		assert.Equal(t, int64(11), item.OrderID)
	}

	assert.True(t, model.SumSubtotals(insertedItems).Equal(inserted.Total))

	require.Len(t, published, 2)
	assert.Equal(t, event.OrderCreated, published[0].Name)
	assert.Equal(t, event.TableStatusChanged, published[1].Name)
}

func TestOrderService_CreateRejections(t *testing.T) {
	disabled := activeTable()
	disabled.Active = false
	disabled.StatusID = status.TableDisabled

	tests := []struct {
		name      string
		tableUUID string
		req       dto.CreateOrderRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:      "malformed table uuid",
			tableUUID: "mesa-3",
			req:       dto.CreateOrderRequest{Items: []dto.CreateItemRequest{{ProductID: 1, Quantity: 1}}},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "no items",
			tableUUID: tableUUID,
			req:       dto.CreateOrderRequest{},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "zero quantity",
			tableUUID: tableUUID,
			req:       dto.CreateOrderRequest{Items: []dto.CreateItemRequest{{ProductID: 1, Quantity: 0}}},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown table",
			tableUUID: tableUUID,
			req:       dto.CreateOrderRequest{Items: []dto.CreateItemRequest{{ProductID: 1, Quantity: 1}}},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tableModel.Table{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "disabled table",
			tableUUID: tableUUID,
			req:       dto.CreateOrderRequest{Items: []dto.CreateItemRequest{{ProductID: 1, Quantity: 1}}},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(disabled, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "missing product",
			tableUUID: tableUUID,
			req:       dto.CreateOrderRequest{Items: []dto.CreateItemRequest{{ProductID: 99, Quantity: 1}}},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeTable(), nil)
				f.productRepo.EXPECT().GetByIDsTx(gomock.Any(), gomock.Any(), []int64{99}).Return(menu(), nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "unavailable product",
			tableUUID: tableUUID,
			req:       dto.CreateOrderRequest{Items: []dto.CreateItemRequest{{ProductID: 3, Quantity: 1}}},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeTable(), nil)
				f.productRepo.EXPECT().GetByIDsTx(gomock.Any(), gomock.Any(), []int64{3}).Return(menu(), nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "insert fails",
			tableUUID: tableUUID,
			req:       dto.CreateOrderRequest{Items: []dto.CreateItemRequest{{ProductID: 1, Quantity: 1}}},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeTable(), nil)
				f.productRepo.EXPECT().GetByIDsTx(gomock.Any(), gomock.Any(), []int64{1}).Return(menu(), nil)
				f.orderRepo.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(context.Background(), tt.tableUUID, tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestOrderService_CloseTab(t *testing.T) {
	f := newFixture(t)

	open := []model.Order{
		{ID: 11, TableID: 3, StatusID: status.OrderPending, Total: decimal.RequireFromString("25.00")},
	}

	f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeTable(), nil).Times(2)
	f.orderRepo.EXPECT().
		GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Order, error) {
			return open, nil
		}).
		Times(2)
	f.orderRepo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), map[string]any{
			model.FieldStatusID:  status.OrderCompleted,
			model.FieldUpdatedAt: now,
		}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ map[string]any, _ gDto.FilterGroup) error {
			open = nil

			return nil
		})
	f.tableService.EXPECT().ResetAfterCloseTx(gomock.Any(), gomock.Any(), int64(3)).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any())

	res, err := f.svc.CloseTab(context.Background(), 3)

	require.NoError(t, err)
	assert.InDelta(t, 25.0, res.Total, 0.0001)
	assert.Equal(t, 1, res.ClosedOrders)
	assert.Equal(t, tableUUID, res.TableUUID)
	assert.Equal(t, now.Format(time.RFC3339), res.ClosedAt)

	_, err = f.svc.CloseTab(context.Background(), 3)

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestOrderService_CloseTabFailures(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "missing table",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tableModel.Table{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "reset fails",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeTable(), nil)
				f.orderRepo.EXPECT().
					GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Order{{ID: 1, Total: decimal.NewFromInt(5)}}, nil)
				f.orderRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.tableService.EXPECT().ResetAfterCloseTx(gomock.Any(), gomock.Any(), int64(3)).Return(errors.New("lock timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.CloseTab(context.Background(), 3)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestOrderService_SetStatus(t *testing.T) {
	preparing := 2
	unknown := 9

	tests := []struct {
		name       string
		req        dto.SetStatusRequest
		setupMock  func(f *fixture)
		wantStatus string
		wantCode   int
	}{
		{
			name: "pending to preparing",
			req:  dto.SetStatusRequest{StatusID: &preparing},
			setupMock: func(f *fixture) {
				f.orderRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Order{ID: 11, TableUUID: tableUUID, StatusID: status.OrderPending}, nil)
				f.orderRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.itemRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Item{{ID: 1, OrderID: 11}}, nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantStatus: "em preparo",
		},
		{
			name: "delivered back to pending by text",
			req:  dto.SetStatusRequest{Status: "pendente"},
			setupMock: func(f *fixture) {
				f.orderRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Order{ID: 11, StatusID: status.OrderDelivered}, nil)
				f.orderRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.itemRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Item{}, nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantStatus: "pendente",
		},
		{
			name:      "unknown code",
			req:       dto.SetStatusRequest{StatusID: &unknown},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing order",
			req:  dto.SetStatusRequest{StatusID: &preparing},
			setupMock: func(f *fixture) {
				f.orderRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Order{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "leaving completed",
			req:  dto.SetStatusRequest{StatusID: &preparing},
			setupMock: func(f *fixture) {
				f.orderRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Order{ID: 11, StatusID: status.OrderCompleted}, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.SetStatus(context.Background(), 11, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestOrderService_Get(t *testing.T) {
	f := newFixture(t)

	f.orderRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Order{ID: 11, TableUUID: tableUUID, StatusID: status.OrderDelivered, Total: decimal.RequireFromString("12.345")}, nil)
	f.itemRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Item{
			{ID: 1, OrderID: 11, ProductName: "Feijoada"},
			{ID: 2, OrderID: 12, ProductName: "Guarana"},
		}, nil)

	res, err := f.svc.Get(context.Background(), 11)

	require.NoError(t, err)
	assert.InDelta(t, 12.35, res.Total, 0.0001)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Feijoada", res.Items[0].ProductName)

	f.orderRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Order{}, nil)

	_, err = f.svc.Get(context.Background(), 404)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestOrderService_ListByTable(t *testing.T) {
	f := newFixture(t)

	delivered := status.OrderDelivered
	since := now.Add(-2 * time.Hour)

	f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any(), tableModel.FieldID).Return(activeTable(), nil)
	f.orderRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Order, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)
			assert.Len(t, filter.Filters, 3)

			return []model.Order{}, nil
		})

	res, err := f.svc.ListByTable(context.Background(), tableUUID, dto.ListFilter{Status: &delivered, Since: &since})

	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Orders)
}

func TestOrderService_ListKitchenQueue(t *testing.T) {
	f := newFixture(t)

	f.orderRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Order, error) {
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Order{
				{ID: 1, TableName: "Mesa 1", StatusID: status.OrderPending},
				{ID: 2, TableName: "Mesa 2", StatusID: status.OrderPreparing},
			}, nil
		})
	f.itemRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Item{}, nil)

	res, err := f.svc.ListKitchenQueue(context.Background())

	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, "Mesa 1", res.Orders[0].TableName)
	assert.Equal(t, "em preparo", res.Orders[1].Status)
}

func TestOrderService_PurgeAll(t *testing.T) {
	f := newFixture(t)

	f.orderRepo.EXPECT().DeleteAllTx(gomock.Any(), gomock.Any()).Return(int64(4), nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

	res, err := f.svc.PurgeAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Deleted)
	assert.Equal(t, 1, f.transactor.Calls)
}
