package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrAccountNotFound    = errors.New("cuenta no encontrada")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrWeakPassword       = errors.New("la contraseña es demasiado corta")
	ErrInvalidGoogleToken = errors.New("token de Google inválido")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrInvalidItem        = errors.New("ítem de orden inválido")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrAccountInactive    = errors.New("cuenta inactiva")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
