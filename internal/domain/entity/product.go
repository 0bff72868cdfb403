package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas del catálogo.
var ProductCategories = []string{
	"mens-fashion",
	"womens-fashion",
	"accessories",
	"footwear",
	"bags",
	"jewelry",
}

// ValidCategory valida la categoría contra el enum del catálogo.
func ValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Product representa un producto del catálogo.
// Price es la fuente autoritativa de precios: el checkout recalcula totales
// desde aquí, nunca desde los precios que declare el cliente.
type Product struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	InStock     bool
	ImageURL    string
	Rating      decimal.Decimal // 0..5
	IsNew       bool
	IsSale      bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
