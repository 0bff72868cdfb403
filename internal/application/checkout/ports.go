package checkout

import (
	"context"

	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Pricing reglas de totales del checkout.
// tax = subtotal × TaxRate; envío = ShippingFee salvo subtotal > FreeShippingMin.
type Pricing struct {
	TaxRate         decimal.Decimal
	ShippingFee     decimal.Decimal
	FreeShippingMin decimal.Decimal
}

// CheckoutTxRunner ejecuta una función dentro de una transacción con un
// OrderRepository ligado a la tx. Si fn retorna error se hace rollback.
type CheckoutTxRunner interface {
	RunCheckout(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// OrderPDFGenerator genera el recibo en PDF de una orden.
type OrderPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}
