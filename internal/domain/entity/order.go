package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de una orden.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus valida el estado contra el enum.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// orderTransitions define las transiciones permitidas (solo hacia adelante).
// delivered y cancelled son terminales.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition indica si el estado puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ShippingAddress dirección de envío capturada en el checkout.
type ShippingAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// OrderItem línea de una orden: snapshot de nombre y precio al momento de la compra.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order registro de una compra. CustomerName y CustomerEmail son snapshot de la
// cuenta autenticada al crearla; inmutables después. Solo Status muta tras la creación.
type Order struct {
	ID              string
	UserID          string
	CustomerName    string
	CustomerEmail   string // en minúsculas
	Items           []OrderItem
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          string
	ShippingAddress ShippingAddress
	PlacedAt        time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
