package model

import "github.com/shopspring/decimal"

const (
	TableName  = "products"
	EntityName = "product"

	FieldID        = "id"
	FieldName      = "name"
	FieldPrice     = "price"
	FieldAvailable = "available"
)

// Product is the menu entry an order item snapshots its price from.
type Product struct {
	ID        int64           `db:"id"        generated:"true"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Available bool            `db:"available"`
}

func (p Product) Exists() bool {
	return p.ID != 0
}
