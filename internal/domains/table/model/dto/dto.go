package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"comanda/internal/domains/table/model"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/status"
	"comanda/shared/timezone"
)

type CreateTableRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// Check repeats the name rule for callers that skip the HTTP validator.
func (r *CreateTableRequest) Check() error {
	if strings.TrimSpace(r.Name) == "" {
		return failure.BadRequestFromString("table name cannot be blank") // nolint:wrapcheck
	}

	return nil
}

func (r *CreateTableRequest) ToModel(now time.Time) model.Table {
	return model.Table{
		UUID:      uuid.NewString(),
		Name:      strings.TrimSpace(r.Name),
		StatusID:  status.TableAvailable,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatusRequest accepts the target as a numeric code, as text, or both.
type SetStatusRequest struct {
	StatusID *int   `json:"status_id" validate:"omitempty"`
	Status   string `json:"status"    validate:"omitempty,max=20"`
}

func (r *SetStatusRequest) Target() (status.TableState, error) {
	return status.ResolveTableState(r.StatusID, r.Status) //nolint:wrapcheck
}

type TableResponse struct {
	ID            int64  `json:"id"`
	UUID          string `json:"uuid"`
	Name          string `json:"name"`
	StatusID      int    `json:"status_id"`
	Status        string `json:"status"`
	Active        bool   `json:"active"`
	HasOpenOrders bool   `json:"has_open_orders"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func (r *TableResponse) FromModel(table model.Table, hasOpenOrders bool) {
	state := model.DeriveState(table, hasOpenOrders)

	r.ID = table.ID
	r.UUID = table.UUID
	r.Name = table.Name
	r.StatusID = state.Code()
	r.Status = state.String()
	r.Active = table.Active
	r.HasOpenOrders = hasOpenOrders
	r.CreatedAt = timezone.Format(table.CreatedAt, constant.DateFormat)
	r.UpdatedAt = timezone.Format(table.UpdatedAt, constant.DateFormat)
}

// PublicTableResponse is what a customer holding the table UUID may see.
type PublicTableResponse struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	StatusID int    `json:"status_id"`
	Status   string `json:"status"`
}

func (r *PublicTableResponse) FromModel(table model.Table, hasOpenOrders bool) {
	state := model.DeriveState(table, hasOpenOrders)

	r.UUID = table.UUID
	r.Name = table.Name
	r.StatusID = state.Code()
	r.Status = state.String()
}

type GetTablesResponse struct {
	Tables []TableResponse `json:"tables"`
	Total  int             `json:"total"`
}

// FromModels keeps the tables whose derived state matches filter.
func (r *GetTablesResponse) FromModels(tables []model.Table, openTables map[int64]bool, filter ListFilter) {
	r.Tables = make([]TableResponse, 0, len(tables))

	for _, table := range tables {
		state := model.DeriveState(table, openTables[table.ID])
		if filter.State != nil && state != *filter.State {
			continue
		}

		res := TableResponse{}
		res.FromModel(table, openTables[table.ID])
		r.Tables = append(r.Tables, res)
	}

	r.Total = len(r.Tables)
}

// ListFilter narrows the staff table list to one derived state.
type ListFilter struct {
	State *status.TableState
}

func (f *ListFilter) FromRequest(r *http.Request) error {
	value := r.URL.Query().Get(constant.RequestParamStatus)
	if value == "" {
		return nil
	}

	state, err := status.ParseTableState(value)
	if err != nil {
		return err //nolint:wrapcheck
	}

	f.State = &state

	return nil
}
