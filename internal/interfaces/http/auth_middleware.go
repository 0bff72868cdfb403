package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/luxe-fashion/storefront-api/internal/application/dto"
	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
	"github.com/luxe-fashion/storefront-api/pkg/jwt"
)

// Locals key para la cuenta autenticada en Fiber.
const LocalAccount = "account"

// AuthMiddleware valida el Bearer Token, carga la cuenta desde la DB y la
// adjunta a c.Locals (sin el password hash).
//
// El token es necesario pero no suficiente: la cuenta debe seguir existiendo y
// estar activa en cada request. Así el logout (status inactive) corta el acceso
// aunque el token siga siendo criptográficamente válido.
func AuthMiddleware(jwtSecret string, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, status, errResp := resolveAccount(c, jwtSecret, userRepo)
		if errResp != nil {
			return c.Status(status).JSON(errResp)
		}
		c.Locals(LocalAccount, account)
		return c.Next()
	}
}

// OptionalAuthMiddleware adjunta la cuenta si hay un token válido; si no hay
// token o es inválido, sigue sin cuenta. Los handlers deciden qué hacer.
func OptionalAuthMiddleware(jwtSecret string, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if account, _, errResp := resolveAccount(c, jwtSecret, userRepo); errResp == nil {
			c.Locals(LocalAccount, account)
		}
		return c.Next()
	}
}

// RequireAdmin exige rol admin. Usar después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := CurrentAccount(c)
		if account == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "no autenticado", Code: "UNAUTHORIZED",
			})
		}
		if !account.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "se requiere rol admin", Code: "FORBIDDEN",
			})
		}
		return c.Next()
	}
}

// CurrentAccount devuelve la cuenta autenticada o nil.
func CurrentAccount(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalAccount)
	if v == nil {
		return nil
	}
	account, _ := v.(*entity.User)
	return account
}

// resolveAccount extrae el token, lo valida y carga la cuenta.
// Retorna (cuenta, 0, nil) o (nil, status HTTP, respuesta de error). Un fallo
// del store al consultar la cuenta es un 500, no un 401: el token puede ser
// perfectamente válido.
func resolveAccount(c *fiber.Ctx, jwtSecret string, userRepo repository.UserRepository) (*entity.User, int, *dto.ErrorResponse) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.StatusUnauthorized, &dto.ErrorResponse{Error: "Authorization header requerido", Code: "MISSING_TOKEN"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fiber.StatusUnauthorized, &dto.ErrorResponse{Error: "formato: Bearer <token>", Code: "INVALID_TOKEN"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, fiber.StatusUnauthorized, &dto.ErrorResponse{Error: "token vacío", Code: "MISSING_TOKEN"}
	}

	claims, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, fiber.StatusUnauthorized, &dto.ErrorResponse{Error: "token expirado", Code: "TOKEN_EXPIRED"}
		}
		return nil, fiber.StatusUnauthorized, &dto.ErrorResponse{Error: "token inválido", Code: "INVALID_TOKEN"}
	}

	account, err := userRepo.GetByID(claims.AccountID)
	if err != nil {
		return nil, fiber.StatusInternalServerError, &dto.ErrorResponse{Error: "error consultando la cuenta", Code: "INTERNAL"}
	}
	if account == nil {
		// Cuenta borrada después de emitir el token
		return nil, fiber.StatusUnauthorized, &dto.ErrorResponse{Error: "la cuenta ya no existe", Code: "UNAUTHORIZED"}
	}
	if account.Status != entity.StatusActive {
		return nil, fiber.StatusUnauthorized, &dto.ErrorResponse{Error: "cuenta inactiva", Code: "ACCOUNT_INACTIVE"}
	}
	account.PasswordHash = ""
	return account, 0, nil
}
