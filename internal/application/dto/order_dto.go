package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest ítem del carrito tal como lo envía el cliente.
// Price es el snapshot local del cliente: se valida (≥ 0) pero el total
// siempre se recalcula con el precio del catálogo.
type CartItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Quantity  int             `json:"qty" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

// ShippingAddressRequest dirección de envío del checkout.
type ShippingAddressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country" validate:"required"`
}

// CreateOrderRequest entrada del checkout. CustomerName/CustomerEmail y
// TotalAmount se aceptan por compatibilidad con el cliente pero se ignoran:
// la identidad sale de la cuenta autenticada y el total se deriva en servidor.
type CreateOrderRequest struct {
	Items           []CartItemRequest      `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	CustomerName    string                 `json:"customerName"`
	CustomerEmail   string                 `json:"customerEmail"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
}

// UpdateOrderStatusRequest entrada para cambiar el estado (admin).
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// ShippingAddressResponse dirección de envío en respuestas.
type ShippingAddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// OrderResponse salida de una orden con el desglose de totales.
type OrderResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"user"`
	CustomerName    string                  `json:"customerName"`
	CustomerEmail   string                  `json:"customerEmail"`
	Items           []OrderItemResponse     `json:"items"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	Tax             decimal.Decimal         `json:"tax"`
	Shipping        decimal.Decimal         `json:"shipping"`
	TotalAmount     decimal.Decimal         `json:"totalAmount"`
	Status          string                  `json:"status"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	Date            time.Time               `json:"date"`
}
