package checkout_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxe-fashion/storefront-api/internal/application/checkout"
	"github.com/luxe-fashion/storefront-api/internal/application/dto"
	"github.com/luxe-fashion/storefront-api/internal/domain"
	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListByCategory(category string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error         { delete(r.products, id); return nil }

type memOrderRepo struct {
	orders map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}
func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}
func (r *memOrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memOrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memOrderRepo) ListByEmail(email string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if strings.EqualFold(o.CustomerEmail, email) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}
func (r *memOrderRepo) Delete(id string) error { delete(r.orders, id); return nil }

// memTxRunner entrega el mismo repo en memoria como si fuera el ligado a la tx.
type memTxRunner struct {
	orderRepo repository.OrderRepository
}

func (t *memTxRunner) RunCheckout(_ context.Context, fn func(repository.OrderRepository) error) error {
	return fn(t.orderRepo)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var defaultPricing = checkout.Pricing{
	TaxRate:         dec("0.05"),
	ShippingFee:     dec("20"),
	FreeShippingMin: dec("240"),
}

func testCustomer() *entity.User {
	return &entity.User{
		ID:     "u-cliente",
		Name:   "Ana Cliente",
		Email:  "ana@example.com",
		Role:   entity.RoleCustomer,
		Status: entity.StatusActive,
	}
}

func testAdmin() *entity.User {
	return &entity.User{
		ID:     "u-admin",
		Name:   "Admin",
		Email:  "admin@example.com",
		Role:   entity.RoleAdmin,
		Status: entity.StatusActive,
	}
}

func newTestOrderUseCase(orders *memOrderRepo, products *memProductRepo) *checkout.OrderUseCase {
	return checkout.NewOrderUseCase(&memTxRunner{orderRepo: orders}, orders, products, defaultPricing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

// Subtotal 100 → tax 5 (5%), envío 20 → total 125.
func TestCreate_TotalesRecalculadosEnServidor(t *testing.T) {
	products := newMemProductRepo(&entity.Product{
		ID: "p-1", Name: "Bolso de cuero", Category: "bags",
		Price: dec("50"), InStock: true,
	})
	orders := newMemOrderRepo()
	uc := newTestOrderUseCase(orders, products)

	resp, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{
		Items: []dto.CartItemRequest{
			// El cliente declara un precio falso: debe ignorarse
			{ProductID: "p-1", Quantity: 2, Price: dec("0.01")},
		},
		TotalAmount: dec("0.02"), // también se ignora
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("100")), "subtotal = 2 × 50 del catálogo, no del cliente")
	assert.True(t, resp.Tax.Equal(dec("5")), "tax = 5 por ciento del subtotal")
	assert.True(t, resp.Shipping.Equal(dec("20")), "envío plano bajo el umbral")
	assert.True(t, resp.TotalAmount.Equal(dec("125")))
	assert.Equal(t, entity.OrderStatusProcessing, resp.Status)
}

func TestCreate_EnvioGratisSobreElUmbral(t *testing.T) {
	products := newMemProductRepo(&entity.Product{
		ID: "p-caro", Name: "Abrigo", Category: "womens-fashion",
		Price: dec("250"), InStock: true,
	})
	uc := newTestOrderUseCase(newMemOrderRepo(), products)

	resp, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{
		Items: []dto.CartItemRequest{{ProductID: "p-caro", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Shipping.IsZero(), "subtotal 250 > 240 → envío gratis")
	assert.True(t, resp.TotalAmount.Equal(dec("262.5")), "250 + 12.50 de tax")
}

// La identidad del comprador sale de la cuenta autenticada, aunque el body
// declare otro nombre/email.
func TestCreate_IdentidadDelServidor(t *testing.T) {
	products := newMemProductRepo(&entity.Product{
		ID: "p-1", Name: "Anillo", Category: "jewelry", Price: dec("10"), InStock: true,
	})
	uc := newTestOrderUseCase(newMemOrderRepo(), products)

	resp, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{
		Items:         []dto.CartItemRequest{{ProductID: "p-1", Quantity: 1}},
		CustomerName:  "Otra Persona",
		CustomerEmail: "suplantado@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Cliente", resp.CustomerName)
	assert.Equal(t, "ana@example.com", resp.CustomerEmail)
	assert.Equal(t, "u-cliente", resp.UserID)
}

func TestCreate_CarritoVacio(t *testing.T) {
	uc := newTestOrderUseCase(newMemOrderRepo(), newMemProductRepo())
	_, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCreate_LineasInvalidas(t *testing.T) {
	products := newMemProductRepo(
		&entity.Product{ID: "p-ok", Name: "Gorra", Category: "accessories", Price: dec("15"), InStock: true},
		&entity.Product{ID: "p-agotado", Name: "Botas", Category: "footwear", Price: dec("80"), InStock: false},
	)
	orders := newMemOrderRepo()
	uc := newTestOrderUseCase(orders, products)

	cases := []struct {
		name  string
		items []dto.CartItemRequest
	}{
		{"cantidad cero", []dto.CartItemRequest{{ProductID: "p-ok", Quantity: 0}}},
		{"precio negativo", []dto.CartItemRequest{{ProductID: "p-ok", Quantity: 1, Price: dec("-1")}}},
		{"producto inexistente", []dto.CartItemRequest{{ProductID: "p-fantasma", Quantity: 1}}},
		{"producto sin stock", []dto.CartItemRequest{{ProductID: "p-agotado", Quantity: 1}}},
		// Una línea mala rechaza la orden entera, aunque otra sea válida
		{"mezcla válida e inválida", []dto.CartItemRequest{
			{ProductID: "p-ok", Quantity: 1},
			{ProductID: "p-fantasma", Quantity: 1},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{Items: tc.items})
			assert.ErrorIs(t, err, domain.ErrInvalidItem)
		})
	}
	assert.Empty(t, orders.orders, "no debe persistirse nada si el carrito es inválido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_TransicionesHaciaAdelante(t *testing.T) {
	products := newMemProductRepo(&entity.Product{
		ID: "p-1", Name: "Collar", Category: "jewelry", Price: dec("30"), InStock: true,
	})
	orders := newMemOrderRepo()
	uc := newTestOrderUseCase(orders, products)

	created, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{
		Items: []dto.CartItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.NoError(t, err)

	// processing → shipped → delivered
	resp, err := uc.UpdateStatus(created.ID, dto.UpdateOrderStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", resp.Status)

	resp, err = uc.UpdateStatus(created.ID, dto.UpdateOrderStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", resp.Status)

	// delivered es terminal: cualquier transición posterior es ilegal
	_, err = uc.UpdateStatus(created.ID, dto.UpdateOrderStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_RetrocesoRechazado(t *testing.T) {
	products := newMemProductRepo(&entity.Product{
		ID: "p-1", Name: "Collar", Category: "jewelry", Price: dec("30"), InStock: true,
	})
	orders := newMemOrderRepo()
	uc := newTestOrderUseCase(orders, products)

	created, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{
		Items: []dto.CartItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(created.ID, dto.UpdateOrderStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "processing → pending es un retroceso")

	stored, _ := orders.GetByID(created.ID)
	assert.Equal(t, entity.OrderStatusProcessing, stored.Status, "el estado no debe cambiar")
}

func TestUpdateStatus_OrdenInexistente(t *testing.T) {
	uc := newTestOrderUseCase(newMemOrderRepo(), newMemProductRepo())
	_, err := uc.UpdateStatus("no-existe", dto.UpdateOrderStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de autorización de lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListByEmail_SoloPropioOAdmin(t *testing.T) {
	products := newMemProductRepo(&entity.Product{
		ID: "p-1", Name: "Bufanda", Category: "accessories", Price: dec("25"), InStock: true,
	})
	orders := newMemOrderRepo()
	uc := newTestOrderUseCase(orders, products)

	_, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{
		Items: []dto.CartItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.NoError(t, err)

	// El dueño puede ver las suyas (case-insensitive)
	mine, err := uc.ListByEmail(testCustomer(), "ANA@example.com", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	// Otro cliente no puede ver las de ana
	otro := &entity.User{ID: "u-otro", Email: "otro@example.com", Role: entity.RoleCustomer}
	_, err = uc.ListByEmail(otro, "ana@example.com", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un admin sí
	all, err := uc.ListByEmail(testAdmin(), "ana@example.com", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetByID_DuenoOAdmin(t *testing.T) {
	products := newMemProductRepo(&entity.Product{
		ID: "p-1", Name: "Cinturón", Category: "accessories", Price: dec("40"), InStock: true,
	})
	orders := newMemOrderRepo()
	uc := newTestOrderUseCase(orders, products)

	created, err := uc.Create(context.Background(), testCustomer(), dto.CreateOrderRequest{
		Items: []dto.CartItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.GetByID(testCustomer(), created.ID)
	assert.NoError(t, err)

	otro := &entity.User{ID: "u-otro", Email: "otro@example.com", Role: entity.RoleCustomer}
	_, err = uc.GetByID(otro, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetByID(testAdmin(), created.ID)
	assert.NoError(t, err)
}
