package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (admin).
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	InStock     *bool           `json:"stock"` // nil = true
	ImageURL    string          `json:"imageUrl" validate:"required"`
	Rating      decimal.Decimal `json:"rating"`
	IsNew       bool            `json:"isNew"`
	IsSale      bool            `json:"isSale"`
	Description string          `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto (admin).
// Punteros nil significan "no tocar".
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	InStock     *bool            `json:"stock"`
	ImageURL    *string          `json:"imageUrl"`
	Rating      *decimal.Decimal `json:"rating"`
	IsNew       *bool            `json:"isNew"`
	IsSale      *bool            `json:"isSale"`
	Description *string          `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	InStock     bool            `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
	Rating      decimal.Decimal `json:"rating"`
	IsNew       bool            `json:"isNew"`
	IsSale      bool            `json:"isSale"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListResponse salida del listado del catálogo.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
