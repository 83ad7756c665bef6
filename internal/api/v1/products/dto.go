package products

import "github.com/shopspring/decimal"

type ProductItem struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type ProductListResponse struct {
	Products []ProductItem `json:"products"`
	Total    int           `json:"total"`
}
