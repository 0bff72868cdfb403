package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luxe-fashion/storefront-api/internal/application/dto"
	"github.com/luxe-fashion/storefront-api/internal/domain"
	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderUseCase checkout y ciclo de vida de órdenes.
//
// Los totales se recalculan siempre en servidor desde el precio del catálogo:
// lo que el cliente declare en items[].price o totalAmount se ignora. La
// identidad del comprador sale de la cuenta autenticada, nunca del body.
type OrderUseCase struct {
	txRunner    CheckoutTxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	pricing     Pricing
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner CheckoutTxRunner, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, pricing Pricing) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// Create ejecuta el checkout para la cuenta autenticada.
//
// Valida el carrito completo antes de persistir nada: carrito vacío, cantidades
// < 1, precios negativos o productos inexistentes / sin stock rechazan la orden
// entera. Cabecera e ítems se insertan en una sola transacción.
func (uc *OrderUseCase) Create(ctx context.Context, account *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Validar líneas y resolver precios autoritativos (solo lectura, fuera de la tx)
	items := make([]entity.OrderItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for i := range in.Items {
		line := &in.Items[i]
		if line.ProductID == "" || line.Quantity < 1 {
			return nil, fmt.Errorf("%w: línea %d", domain.ErrInvalidItem, i)
		}
		if line.Price.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidItem, i)
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s no existe", domain.ErrInvalidItem, line.ProductID)
		}
		if !product.InStock {
			return nil, fmt.Errorf("%w: producto %s sin stock", domain.ErrInvalidItem, line.ProductID)
		}
		item := entity.OrderItem{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.Subtotal())
	}

	tax := subtotal.Mul(uc.pricing.TaxRate).Round(2)
	shipping := uc.pricing.ShippingFee
	if subtotal.GreaterThan(uc.pricing.FreeShippingMin) {
		shipping = decimal.Zero
	}

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		UserID:        account.ID,
		CustomerName:  account.Name,
		CustomerEmail: strings.ToLower(account.Email),
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Shipping:      shipping,
		TotalAmount:   subtotal.Add(tax).Add(shipping),
		Status:        entity.OrderStatusProcessing,
		ShippingAddress: entity.ShippingAddress{
			Street:  in.ShippingAddress.Street,
			City:    in.ShippingAddress.City,
			State:   in.ShippingAddress.State,
			ZipCode: in.ShippingAddress.ZipCode,
			Country: in.ShippingAddress.Country,
		},
		PlacedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	err := uc.txRunner.RunCheckout(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden. Solo el dueño o un admin pueden verla.
func (uc *OrderUseCase) GetByID(requester *entity.User, id string) (*dto.OrderResponse, error) {
	order, err := authorizedOrder(uc.orderRepo, requester, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListAll lista todas las órdenes (admin).
func (uc *OrderUseCase) ListAll(page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orderRepo.ListAll(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListMine lista las órdenes de la cuenta autenticada.
func (uc *OrderUseCase) ListMine(account *entity.User, page dto.PageRequest) ([]dto.OrderResponse, error) {
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.orderRepo.ListByUser(account.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListByEmail lista las órdenes asociadas a un email. Un cliente solo puede
// consultar su propio email; un admin, cualquiera.
func (uc *OrderUseCase) ListByEmail(requester *entity.User, email string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	if requester == nil {
		return nil, domain.ErrUnauthorized
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !requester.IsAdmin() && !strings.EqualFold(requester.Email, email) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.orderRepo.ListByEmail(email, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// UpdateStatus cambia el estado de una orden (admin). Solo se permiten
// transiciones hacia adelante; las ilegales devuelven domain.ErrInvalidTransition.
func (uc *OrderUseCase) UpdateStatus(id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !entity.CanTransition(order.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, order.Status, in.Status)
	}
	if err := uc.orderRepo.UpdateStatus(id, in.Status); err != nil {
		return nil, err
	}
	order.Status = in.Status
	order.UpdatedAt = time.Now()
	return toOrderResponse(order), nil
}

// Delete elimina una orden (admin).
func (uc *OrderUseCase) Delete(id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	return uc.orderRepo.Delete(id)
}

// authorizedOrder carga la orden y verifica que el requester sea el dueño o admin.
func authorizedOrder(repo repository.OrderRepository, requester *entity.User, id string) (*entity.Order, error) {
	if requester == nil {
		return nil, domain.ErrUnauthorized
	}
	order, err := repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !requester.IsAdmin() && order.UserID != requester.ID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         items,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		ShippingAddress: dto.ShippingAddressResponse{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		Date: o.PlacedAt,
	}
}
