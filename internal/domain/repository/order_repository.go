package repository

import "github.com/luxe-fashion/storefront-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
// Create persiste cabecera e ítems; dentro de una tx los dos inserts son atómicos.
type OrderRepository interface {
	Create(order *entity.Order) error
	// GetByID devuelve la orden con sus ítems cargados, o (nil, nil) si no existe.
	GetByID(id string) (*entity.Order, error)
	ListAll(limit, offset int) ([]*entity.Order, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	ListByEmail(email string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus sobreescribe solo el campo status. Retorna domain.ErrOrderNotFound
	// si la orden no existe.
	UpdateStatus(id, status string) error
	Delete(id string) error
}
