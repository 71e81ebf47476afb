package model

import (
	"time"

	"github.com/shopspring/decimal"

	"comanda/shared/status"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID               = "id"
	FieldTableID          = "table_id"
	FieldStatusID         = "status_id"
	FieldTotal            = "total"
	FieldNotes            = "notes"
	FieldDeliveryEstimate = "delivery_estimate"
	FieldCreatedAt        = "created_at"
	FieldUpdatedAt        = "updated_at"

	ItemTableName  = "order_items"
	ItemEntityName = "order_item"

	ItemFieldID      = "id"
	ItemFieldOrderID = "order_id"
)

type Order struct {
	ID               int64              `db:"id"                generated:"true"`
	TableID          int64              `db:"table_id"`
	StatusID         status.OrderStatus `db:"status_id"`
	Total            decimal.Decimal    `db:"total"`
	Notes            *string            `db:"notes"`
	DeliveryEstimate time.Time          `db:"delivery_estimate"`
	CreatedAt        time.Time          `db:"created_at"`
	UpdatedAt        time.Time          `db:"updated_at"`

	TableUUID string `db:"table_uuid" table:"dining_tables" column:"uuid"`
	TableName string `db:"table_name" table:"dining_tables" column:"name"`

	Items []Item `db:"-"`
}

func (Order) GetJoinQuery() string {
	return "JOIN dining_tables ON dining_tables.id = orders.table_id"
}

func (o Order) Exists() bool {
	return o.ID != 0
}

// Item is immutable once written. UnitPrice is the product price at the time
// the order was placed.
type Item struct {
	ID        int64           `db:"id"         generated:"true"`
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	Notes     *string         `db:"notes"`

	ProductName string `db:"product_name" table:"products" column:"name"`
}

func (Item) GetJoinQuery() string {
	return "JOIN products ON products.id = order_items.product_id"
}

func NewItem(productID int64, productName string, unitPrice decimal.Decimal, quantity int, notes *string) Item {
	return Item{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Notes:       notes,
	}
}

// SumSubtotals is the order total for items.
func SumSubtotals(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	return total
}

// SumTotals is the amount due for a set of orders.
func SumTotals(orders []Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.Total)
	}

	return total
}

// IDs returns the order ids in the given order.
func IDs(orders []Order) []int64 {
	ids := make([]int64, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	return ids
}
