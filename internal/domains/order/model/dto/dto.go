package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"comanda/internal/domains/order/model"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/status"
	"comanda/shared/timezone"
)

type CreateItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity"   validate:"required,gte=1"`
	Notes     *string `json:"notes"      validate:"omitempty,max=255"`
}

type CreateOrderRequest struct {
	Items []CreateItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes *string             `json:"notes" validate:"omitempty,max=500"`
}

// ProductIDs returns the distinct product ids in request order.
func (r *CreateOrderRequest) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(r.Items))
	ids := make([]int64, 0, len(r.Items))

	for _, item := range r.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}

		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

// Check repeats the structural rules for callers that skip the HTTP validator.
func (r *CreateOrderRequest) Check() error {
	if len(r.Items) == 0 {
		return failure.BadRequestFromString("order must have at least one item") // nolint:wrapcheck
	}

	for _, item := range r.Items {
		if item.Quantity < 1 {
			return failure.BadRequestFromString("item quantity must be at least 1") // nolint:wrapcheck
		}
	}

	return nil
}

// SetStatusRequest accepts the target as a numeric code, as text, or both.
type SetStatusRequest struct {
	StatusID *int   `json:"status_id" validate:"omitempty"`
	Status   string `json:"status"    validate:"omitempty,max=20"`
}

func (r *SetStatusRequest) Target() (status.OrderStatus, error) {
	return status.ResolveOrderStatus(r.StatusID, r.Status) //nolint:wrapcheck
}

// ListFilter narrows a table's order listing.
type ListFilter struct {
	Status *status.OrderStatus
	Since  *time.Time
}

func (f *ListFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if value := query.Get(constant.RequestParamStatus); value != "" {
		parsed, err := status.ParseOrderStatus(value)
		if err != nil {
			return err //nolint:wrapcheck
		}

		f.Status = &parsed
	}

	if value := query.Get(constant.RequestParamSince); value != "" {
		since, err := time.Parse(constant.DateFormat, value)
		if err != nil {
			return failure.BadRequestFromString("since must be an RFC3339 timestamp") // nolint:wrapcheck
		}

		f.Since = &since
	}

	return nil
}

type ItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
	Notes       *string `json:"notes"`
}

func (r *ItemResponse) FromModel(item model.Item) {
	r.ID = item.ID
	r.ProductID = item.ProductID
	r.ProductName = item.ProductName
	r.Quantity = item.Quantity
	r.UnitPrice = Money(item.UnitPrice)
	r.Subtotal = Money(item.Subtotal)
	r.Notes = item.Notes
}

type OrderResponse struct {
	ID               int64          `json:"id"`
	TableUUID        string         `json:"table_uuid"`
	TableName        string         `json:"table_name"`
	StatusID         int            `json:"status_id"`
	Status           string         `json:"status"`
	Total            float64        `json:"total"`
	Notes            *string        `json:"notes"`
	DeliveryEstimate string         `json:"delivery_estimate"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
	Items            []ItemResponse `json:"items"`
}

func (r *OrderResponse) FromModel(order model.Order) {
	r.ID = order.ID
	r.TableUUID = order.TableUUID
	r.TableName = order.TableName
	r.StatusID = order.StatusID.Code()
	r.Status = order.StatusID.String()
	r.Total = Money(order.Total)
	r.Notes = order.Notes
	r.DeliveryEstimate = timezone.Format(order.DeliveryEstimate, constant.DateFormat)
	r.CreatedAt = timezone.Format(order.CreatedAt, constant.DateFormat)
	r.UpdatedAt = timezone.Format(order.UpdatedAt, constant.DateFormat)

	r.Items = make([]ItemResponse, len(order.Items))
	for i, item := range order.Items {
		r.Items[i].FromModel(item)
	}
}

type GetOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

func (r *GetOrdersResponse) FromModels(orders []model.Order) {
	r.Total = len(orders)
	r.Orders = make([]OrderResponse, len(orders))

	for i, order := range orders {
		r.Orders[i].FromModel(order)
	}
}

type CloseTabResponse struct {
	TableID      int64   `json:"table_id"`
	TableUUID    string  `json:"table_uuid"`
	Total        float64 `json:"total"`
	ClosedOrders int     `json:"closed_orders"`
	ClosedAt     string  `json:"closed_at"`
}

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// Money rounds an amount to cents for serialization.
func Money(amount decimal.Decimal) float64 {
	return amount.Round(constant.MoneyScale).InexactFloat64()
}

// NormalizeNotes trims notes and drops them when nothing is left.
func NormalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
