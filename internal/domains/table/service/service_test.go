package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "comanda/infras/otel/mocks"
	orderMocks "comanda/internal/domains/order/mocks"
	callMocks "comanda/internal/domains/servicecall/mocks"
	"comanda/internal/domains/table/mocks"
	"comanda/internal/domains/table/model"
	"comanda/internal/domains/table/model/dto"
	"comanda/internal/domains/table/service"
	cacheMocks "comanda/shared/cache/mocks"
	"comanda/shared/event"
	eventMocks "comanda/shared/event/mocks"
	"comanda/shared/failure"
	repoMocks "comanda/shared/repository/mocks"
	"comanda/shared/status"
	clockMocks "comanda/shared/timezone/mocks"
)

const (
	tableUUID    = "0b7e5a52-6a4e-4a43-9f1e-2d3c4b5a6978"
	pendingClear = "service_call:pending*"
)

var now = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

type fixture struct {
	tableRepo  *mocks.MockTable
	orderRepo  *orderMocks.MockOrder
	callRepo   *callMocks.MockServiceCall
	cache      *cacheMocks.MockRedisCache
	publisher  *eventMocks.MockPublisher
	transactor *repoMocks.Transactor
	svc        service.Table
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		tableRepo:  mocks.NewMockTable(ctrl),
		orderRepo:  orderMocks.NewMockOrder(ctrl),
		callRepo:   callMocks.NewMockServiceCall(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
		transactor: repoMocks.NewTransactor(),
	}

	f.svc = service.New(
		f.tableRepo,
		f.orderRepo,
		f.callRepo,
		f.transactor,
		f.cache,
		f.publisher,
		clockMocks.NewClock(now),
		otelMocks.NewOtel(),
	)

	return f
}

func storedTable() model.Table {
	return model.Table{
		ID:        7,
		UUID:      tableUUID,
		Name:      "Mesa 7",
		StatusID:  status.TableAvailable,
		Active:    true,
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}
}

func TestTableService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTableRequest
		setupMock func(f *fixture, published *[]event.Event)
		wantName  string
		wantCode  int
	}{
		{
			name: "created",
			req:  dto.CreateTableRequest{Name: "Mesa 1"},
			setupMock: func(f *fixture, published *[]event.Event) {
				f.tableRepo.EXPECT().
					InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, table model.Table) (int64, error) {
						assert.Equal(t, "Mesa 1", table.Name)
						assert.Equal(t, status.TableAvailable, table.StatusID)
						assert.True(t, table.Active)

						return 1, nil
					})
				f.publisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...event.Event) { *published = events })
			},
			wantName: "Mesa 1",
		},
		{
			name: "name is trimmed",
			req:  dto.CreateTableRequest{Name: "  Varanda 2 "},
			setupMock: func(f *fixture, _ *[]event.Event) {
				f.tableRepo.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(2), nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantName: "Varanda 2",
		},
		{
			name:      "blank name",
			req:       dto.CreateTableRequest{Name: "   "},
			setupMock: func(*fixture, *[]event.Event) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty name",
			req:       dto.CreateTableRequest{},
			setupMock: func(*fixture, *[]event.Event) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			var published []event.Event
			tt.setupMock(f, &published)

			res, err := f.svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Name)
			assert.Equal(t, "disponivel", res.Status)
			assert.True(t, model.ValidUUID(res.UUID))

			if published != nil {
				require.Len(t, published, 1)
				assert.Equal(t, event.TableCreated, published[0].Name)
				assert.Equal(t, res.UUID, published[0].TableUUID)
			}
		})
	}
}

func TestTableService_CreateStoreError(t *testing.T) {
	f := newFixture(t)

	f.tableRepo.EXPECT().
		InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("connection reset"))

	_, err := f.svc.Create(context.Background(), dto.CreateTableRequest{Name: "Mesa 1"})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestTableService_Get(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(f *fixture)
		wantStatus string
		wantCode   int
	}{
		{
			name: "available table",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().OpenTableIDs(gomock.Any(), []int64{7}).Return(map[int64]bool{}, nil)
			},
			wantStatus: "disponivel",
		},
		{
			name: "in use while orders are open",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().OpenTableIDs(gomock.Any(), []int64{7}).Return(map[int64]bool{7: true}, nil)
			},
			wantStatus: "em_uso",
		},
		{
			name: "stored in use without open orders reads as available",
			setupMock: func(f *fixture) {
				table := storedTable()
				table.StatusID = status.TableInUse

				f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.orderRepo.EXPECT().OpenTableIDs(gomock.Any(), []int64{7}).Return(map[int64]bool{}, nil)
			},
			wantStatus: "disponivel",
		},
		{
			name: "not found",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "store error",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), 7)

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

func TestTableService_GetByUUID(t *testing.T) {
	t.Run("malformed uuid is not found without a lookup", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetByUUID(context.Background(), "mesa-7")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("public projection", func(t *testing.T) {
		f := newFixture(t)
		f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedTable(), nil)
		f.orderRepo.EXPECT().OpenTableIDs(gomock.Any(), []int64{7}).Return(map[int64]bool{7: true}, nil)

		res, err := f.svc.GetByUUID(context.Background(), tableUUID)

		require.NoError(t, err)
		assert.Equal(t, dto.PublicTableResponse{UUID: tableUUID, Name: "Mesa 7", StatusID: 2, Status: "em_uso"}, res)
	})
}

func TestTableService_GetAll(t *testing.T) {
	f := newFixture(t)

	second := storedTable()
	second.ID = 8
	second.Active = false

	f.tableRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Table{storedTable(), second}, nil)
	f.orderRepo.EXPECT().OpenTableIDs(gomock.Any(), []int64{7, 8}).Return(map[int64]bool{7: true}, nil)

	res, err := f.svc.GetAll(context.Background(), dto.ListFilter{})

	require.NoError(t, err)
	require.Len(t, res.Tables, 2)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "em_uso", res.Tables[0].Status)
	assert.Equal(t, "desativada", res.Tables[1].Status)
}

func TestTableService_SetStatus(t *testing.T) {
	disable := 4
	inUse := 2

	tests := []struct {
		name       string
		req        dto.SetStatusRequest
		setupMock  func(f *fixture)
		wantStatus string
		wantActive bool
		wantCode   int
	}{
		{
			name: "disable idle table",
			req:  dto.SetStatusRequest{StatusID: &disable},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.tableRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), map[string]any{
						model.FieldStatusID:  status.TableDisabled,
						model.FieldActive:    false,
						model.FieldUpdatedAt: now,
					}, gomock.Any()).
					Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantStatus: "desativada",
		},
		{
			name: "enable by text",
			req:  dto.SetStatusRequest{Status: "disponivel"},
			setupMock: func(f *fixture) {
				table := storedTable()
				table.StatusID = status.TableDisabled
				table.Active = false

				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(table, nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.tableRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			wantStatus: "disponivel",
			wantActive: true,
		},
		{
			name:      "derived state cannot be requested",
			req:       dto.SetStatusRequest{StatusID: &inUse},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown status",
			req:       dto.SetStatusRequest{Status: "quebrada"},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "table with open orders",
			req:  dto.SetStatusRequest{StatusID: &disable},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "missing table",
			req:  dto.SetStatusRequest{StatusID: &disable},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Table{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "update fails",
			req:  dto.SetStatusRequest{StatusID: &disable},
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.tableRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.SetStatus(context.Background(), 7, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantActive, res.Active)
		})
	}
}

func TestTableService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "available table cascades history",
			setupMock: func(f *fixture) {
				gomock.InOrder(
					f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedTable(), nil),
					f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
					f.orderRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(3), nil),
					f.callRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(2), nil),
					f.tableRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil),
					f.cache.EXPECT().Clear(gomock.Any(), pendingClear).Return(nil),
				)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "pending queue stays cached when redis is down",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.orderRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
				f.callRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.tableRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.cache.EXPECT().Clear(gomock.Any(), pendingClear).Return(errors.New("redis down"))
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "in use",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "disabled",
			setupMock: func(f *fixture) {
				table := storedTable()
				table.Active = false

				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(table, nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "missing",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Table{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "cascade fails",
			setupMock: func(f *fixture) {
				f.tableRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedTable(), nil)
				f.orderRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.orderRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("fk violation"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), 7)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestTableService_ResetAfterCloseTx(t *testing.T) {
	f := newFixture(t)

	f.tableRepo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), map[string]any{
			model.FieldStatusID:  status.TableAvailable,
			model.FieldActive:    true,
			model.FieldUpdatedAt: now,
		}, gomock.Any()).
		Return(nil)

	require.NoError(t, f.svc.ResetAfterCloseTx(context.Background(), nil, 7))
}
