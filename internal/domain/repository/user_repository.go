package repository

import "github.com/luxe-fashion/storefront-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los GetBy* devuelven (nil, nil) cuando no hay fila; el caller decide el error.
type UserRepository interface {
	// Create persiste la cuenta. Retorna domain.ErrEmailAlreadyExists o
	// domain.ErrDuplicate si chocan los índices únicos de email/google_id.
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByGoogleID(googleID string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
