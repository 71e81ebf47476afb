package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/shared/constant"
	"comanda/shared/dto"
	"comanda/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	meta := model.NewMetadata(createdAt, "admin-1")

	res := dto.Metadata{}
	res.FromModel(meta)

	assert.Equal(t, createdAt.Format(constant.DateFormat), res.CreatedAt)
	assert.Equal(t, "admin-1", res.CreatedBy)
	assert.Nil(t, res.ModifiedAt)
	assert.Nil(t, res.ModifiedBy)

	meta.ModifiedAt = createdAt.Add(time.Hour)
	meta.ModifiedBy = "staff-2"
	res.FromModel(meta)

	require.NotNil(t, res.ModifiedAt)
	assert.Equal(t, createdAt.Add(time.Hour).Format(constant.DateFormat), *res.ModifiedAt)
	assert.Equal(t, "staff-2", *res.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          url.Values
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"name"}, "sort_dir": {"desc"}},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirDesc},
		},
		{
			name:           "defaults applied",
			query:          url.Values{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "invalid values ignored",
			query:    url.Values{"page": {"-1"}, "limit": {"abc"}, "sort_dir": {"sideways"}},
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{RawQuery: tt.query.Encode()}}

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_AllowSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE orders", SortDir: dto.SortDirAsc}
	params.AllowSort("name", "created_at")
	assert.Empty(t, params.SortBy)

	params = dto.QueryParams{SortBy: "created_at"}
	params.AllowSort("name", "created_at")
	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestCapped(t *testing.T) {
	assert.Equal(t, 100, dto.Capped(0, 100, 500))
	assert.Equal(t, 20, dto.Capped(20, 100, 500))
	assert.Equal(t, 500, dto.Capped(9000, 100, 500))
	assert.Equal(t, 9000, dto.Capped(9000, 100, 0))
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "equality defaults to AND",
			group:     dto.FilterGroup{Filters: []any{dto.Eq("orders", "table_id", int64(4)), dto.Eq("orders", "status_id", 1)}},
			wantWhere: "(orders.table_id = :table_id AND orders.status_id = :status_id)",
			wantArgs:  map[string]any{"table_id": int64(4), "status_id": 1},
		},
		{
			name:      "in with slice",
			group:     dto.And(dto.In("orders", "status_id", []int{1, 2})),
			wantWhere: "(orders.status_id IN (:status_id_0, :status_id_1) )",
			wantArgs:  map[string]any{"status_id_0": 1, "status_id_1": 2},
		},
		{
			name:      "in with empty slice matches nothing",
			group:     dto.And(dto.In("orders", "id", []int64{})),
			wantWhere: "(FALSE)",
			wantArgs:  map[string]any{},
		},
		{
			name: "nested or group with custom arg names",
			group: dto.And(
				dto.Eq("service_calls", "table_uuid", "abc"),
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{ArgName: "reason_a", Field: "reason_id", Value: 1, Operator: dto.FilterOperatorEq, Table: "service_calls"},
						dto.Filter{ArgName: "reason_b", Field: "reason_id", Value: 3, Operator: dto.FilterOperatorEq, Table: "service_calls"},
					},
				},
			),
			wantWhere: "(service_calls.table_uuid = :table_uuid AND (service_calls.reason_id = :reason_a OR service_calls.reason_id = :reason_b))",
			wantArgs:  map[string]any{"table_uuid": "abc", "reason_a": 1, "reason_b": 3},
		},
		{
			name: "null checks and comparisons",
			group: dto.And(
				dto.Filter{Field: "attended_at", Operator: dto.FilterIsNull},
				dto.Filter{Field: "created_at", Value: "2024-01-01", Operator: dto.FilterOperatorGreaterEq},
			),
			wantWhere: "(attended_at IS NULL AND created_at >= :created_at)",
			wantArgs:  map[string]any{"created_at": "2024-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
