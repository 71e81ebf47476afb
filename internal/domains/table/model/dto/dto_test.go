package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/domains/table/model"
	"comanda/internal/domains/table/model/dto"
	"comanda/shared/failure"
	"comanda/shared/status"
)

func TestCreateTableRequest_ToModel(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	req := dto.CreateTableRequest{Name: "  Mesa 7 "}

	table := req.ToModel(now)

	assert.Equal(t, "Mesa 7", table.Name)
	assert.Equal(t, status.TableAvailable, table.StatusID)
	assert.True(t, table.Active)
	assert.Equal(t, now, table.CreatedAt)
	assert.Equal(t, now, table.UpdatedAt)

	_, err := uuid.Parse(table.UUID)
	require.NoError(t, err)
	assert.NotEqual(t, table.UUID, req.ToModel(now).UUID)
}

func TestCreateTableRequest_Check(t *testing.T) {
	assert.NoError(t, (&dto.CreateTableRequest{Name: "Mesa 7"}).Check())

	for _, name := range []string{"", "   ", "\t\n"} {
		err := (&dto.CreateTableRequest{Name: name}).Check()

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	}
}

func TestSetStatusRequest_Target(t *testing.T) {
	code := 4

	tests := []struct {
		name    string
		req     dto.SetStatusRequest
		want    status.TableState
		wantErr bool
	}{
		{name: "by code", req: dto.SetStatusRequest{StatusID: &code}, want: status.TableDisabled},
		{name: "by text", req: dto.SetStatusRequest{Status: "disponivel"}, want: status.TableAvailable},
		{name: "unknown text", req: dto.SetStatusRequest{Status: "quebrada"}, wantErr: true},
		{name: "missing", req: dto.SetStatusRequest{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Target()
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTablesResponse_FromModels(t *testing.T) {
	tables := []model.Table{
		{ID: 1, UUID: "a", Name: "Mesa 1", StatusID: status.TableInUse, Active: true},
		{ID: 2, UUID: "b", Name: "Mesa 2", StatusID: status.TableInUse, Active: true},
		{ID: 3, UUID: "c", Name: "Mesa 3", StatusID: status.TableAvailable, Active: false},
	}

	res := dto.GetTablesResponse{}
	res.FromModels(tables, map[int64]bool{1: true}, dto.ListFilter{})

	require.Len(t, res.Tables, 3)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "em_uso", res.Tables[0].Status)
	assert.Equal(t, "disponivel", res.Tables[1].Status)
	assert.Equal(t, 1, res.Tables[1].StatusID)
	assert.Equal(t, "desativada", res.Tables[2].Status)

	inUse := status.TableInUse
	filtered := dto.GetTablesResponse{}
	filtered.FromModels(tables, map[int64]bool{1: true}, dto.ListFilter{State: &inUse})

	require.Len(t, filtered.Tables, 1)
	assert.Equal(t, 1, filtered.Total)
	assert.Equal(t, int64(1), filtered.Tables[0].ID)

	public := dto.PublicTableResponse{}
	public.FromModel(tables[0], true)
	assert.Equal(t, dto.PublicTableResponse{UUID: "a", Name: "Mesa 1", StatusID: 2, Status: "em_uso"}, public)
}

func TestListFilter_FromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantState *status.TableState
		wantErr   bool
	}{
		{name: "no filter", query: url.Values{}},
		{name: "state text", query: url.Values{"status": {"expirada"}}, wantState: ptr(status.TableExpired)},
		{name: "state code", query: url.Values{"status": {"4"}}, wantState: ptr(status.TableDisabled)},
		{name: "unknown state", query: url.Values{"status": {"ocupada"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{RawQuery: tt.query.Encode()}}

			filter := dto.ListFilter{}
			err := filter.FromRequest(req)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantState, filter.State)
		})
	}
}

func ptr[T any](value T) *T {
	return &value
}
