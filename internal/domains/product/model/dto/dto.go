package dto

import (
	"comanda/internal/domains/product/model"
	"comanda/shared/constant"
)

type ProductResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

func (r *ProductResponse) FromModel(product model.Product) {
	r.ID = product.ID
	r.Name = product.Name
	r.Price = product.Price.Round(constant.MoneyScale).InexactFloat64()
	r.Available = product.Available
}

type GetProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

func (r *GetProductsResponse) FromModels(products []model.Product) {
	r.Total = len(products)
	r.Products = make([]ProductResponse, len(products))

	for i, product := range products {
		r.Products[i].FromModel(product)
	}
}
