package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"comanda/internal/domains/order/model"
)

func TestNewItem(t *testing.T) {
	item := model.NewItem(3, "Coxinha", decimal.RequireFromString("7.50"), 3, nil)

	assert.Equal(t, int64(3), item.ProductID)
	assert.Equal(t, "Coxinha", item.ProductName)
	assert.True(t, decimal.RequireFromString("22.50").Equal(item.Subtotal))
}

func TestSumSubtotalsEqualsTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []model.Item
		want  string
	}{
		{
			name:  "no items",
			items: nil,
			want:  "0",
		},
		{
			name: "two products",
			items: []model.Item{
				model.NewItem(1, "Pastel", decimal.NewFromInt(10), 2, nil),
				model.NewItem(2, "Refrigerante", decimal.NewFromInt(5), 1, nil),
			},
			want: "25",
		},
		{
			name: "cents do not drift",
			items: []model.Item{
				model.NewItem(1, "Bala", decimal.RequireFromString("0.10"), 3, nil),
				model.NewItem(2, "Chiclete", decimal.RequireFromString("0.20"), 1, nil),
			},
			want: "0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.SumSubtotals(tt.items)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSumTotalsAndIDs(t *testing.T) {
	orders := []model.Order{
		{ID: 4, Total: decimal.RequireFromString("25.00")},
		{ID: 9, Total: decimal.RequireFromString("12.40")},
	}

	assert.True(t, decimal.RequireFromString("37.40").Equal(model.SumTotals(orders)))
	assert.Equal(t, []int64{4, 9}, model.IDs(orders))
	assert.True(t, model.Order{ID: 1}.Exists())
	assert.False(t, model.Order{}.Exists())
}
