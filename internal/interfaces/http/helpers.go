package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/luxe-fashion/storefront-api/internal/application/dto"
	"github.com/luxe-fashion/storefront-api/internal/domain"
)

// respondError mapea errores de dominio al status HTTP y código de la API.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "el carrito está vacío", Code: "EMPTY_CART"})
	case errors.Is(err, domain.ErrInvalidItem):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "el carrito contiene líneas inválidas", Code: "INVALID_ITEM"})
	case errors.Is(err, domain.ErrWeakPassword):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "la contraseña debe tener al menos 6 caracteres", Code: "WEAK_PASSWORD"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "entrada inválida", Code: "INVALID_INPUT"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "credenciales inválidas", Code: "INVALID_CREDENTIALS"})
	case errors.Is(err, domain.ErrInvalidGoogleToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token de Google inválido", Code: "INVALID_GOOGLE_TOKEN"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "no autenticado", Code: "UNAUTHORIZED"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "acceso denegado", Code: "FORBIDDEN"})
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "la cuenta no existe", Code: "ACCOUNT_NOT_FOUND"})
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "la orden no existe", Code: "ORDER_NOT_FOUND"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "recurso no encontrado", Code: "NOT_FOUND"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "el email ya está registrado", Code: "EMAIL_EXISTS"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "transición de estado no permitida", Code: "INVALID_TRANSITION"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "conflicto con el estado actual", Code: "CONFLICT"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
	}
}

// invalidBody respuesta estándar para un body que no parsea.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido", Code: "INVALID_BODY"})
}

// validationError respuesta 400 con los campos que fallaron la validación.
func validationError(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Error: "validación fallida", Code: "VALIDATION"}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			resp.Errors = append(resp.Errors, fe.Field()+": "+fe.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}
