package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luxe-fashion/storefront-api/internal/application/dto"
	"github.com/luxe-fashion/storefront-api/internal/domain"
	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
	"github.com/luxe-fashion/storefront-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AuthUseCase casos de uso de autenticación: registro, login, login con Google,
// logout, rotación de contraseña y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	google   GoogleTokenVerifier
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, google GoogleTokenVerifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, google: google, jwtCfg: jwtCfg}
}

// Signup crea una cuenta local: hashea password con bcrypt y persiste.
// Devuelve domain.ErrEmailAlreadyExists si el email ya existe (case-insensitive).
func (uc *AuthUseCase) Signup(in dto.SignupRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrWeakPassword
	}
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El índice único sobre lower(email) cubre la carrera entre el check y el insert.
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica email/password y emite un token de sesión.
// No usuario, cuenta sin hash y hash distinto devuelven exactamente el mismo
// error, para no filtrar qué emails existen.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CanLoginWithPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.reactivate(user); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// GoogleAuth verifica el ID token de Google y resuelve la cuenta local:
// por subject id, por email (vinculando el subject id), o creándola.
// La carrera lookup-then-create se resuelve reintentando como lookup cuando
// el insert choca con los índices únicos.
func (uc *AuthUseCase) GoogleAuth(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	identity, err := uc.google.Verify(ctx, idToken)
	if err != nil {
		return nil, domain.ErrInvalidGoogleToken
	}
	email := normalizeEmail(identity.Email)
	if email == "" || identity.SubjectID == "" {
		return nil, domain.ErrInvalidGoogleToken
	}

	user, err := uc.resolveGoogleAccount(identity, email)
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) resolveGoogleAccount(identity *GoogleIdentity, email string) (*entity.User, error) {
	// 1) Cuenta ya vinculada al subject id
	user, err := uc.userRepo.GetByGoogleID(identity.SubjectID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := uc.reactivate(user); err != nil {
			return nil, err
		}
		return user, nil
	}

	// 2) Cuenta registrada con contraseña bajo el mismo email: vincular
	user, err = uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		user.GoogleID = identity.SubjectID
		if err := uc.reactivate(user); err != nil {
			return nil, err
		}
		return user, nil
	}

	// 3) Cuenta nueva. El password placeholder es aleatorio y no se entrega
	// a nadie: la cuenta solo puede entrar vía Google hasta que rote contraseña.
	placeholder, err := randomPasswordHash()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user = &entity.User{
		ID:           uuid.New().String(),
		Name:         identity.Name,
		Email:        email,
		PasswordHash: placeholder,
		Role:         entity.RoleCustomer,
		Status:       entity.StatusActive,
		GoogleID:     identity.SubjectID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Name == "" {
		user.Name = email
	}
	err = uc.userRepo.Create(user)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrEmailAlreadyExists) && !errors.Is(err, domain.ErrDuplicate) {
		return nil, err
	}

	// Violación de unicidad: otro login concurrente ganó el insert.
	// Releer por subject id y luego por email.
	if user, err = uc.userRepo.GetByGoogleID(identity.SubjectID); err != nil {
		return nil, err
	}
	if user == nil {
		if user, err = uc.userRepo.GetByEmail(email); err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, domain.ErrConflict
	}
	if user.GoogleID == "" {
		user.GoogleID = identity.SubjectID
	}
	if err := uc.reactivate(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Me devuelve el perfil de la cuenta resuelta.
func (uc *AuthUseCase) Me(accountID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrAccountNotFound
	}
	return toUserResponse(user), nil
}

// Logout marca la cuenta como inactiva. El token emitido sigue siendo
// criptográficamente válido hasta su expiración; el guard lo rechaza porque
// verifica el estado de la cuenta en cada request.
func (uc *AuthUseCase) Logout(accountID string) error {
	user, err := uc.userRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrAccountNotFound
	}
	user.Status = entity.StatusInactive
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ChangePassword verifica la contraseña actual y persiste el nuevo hash.
func (uc *AuthUseCase) ChangePassword(accountID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrAccountNotFound
	}
	if !user.CanLoginWithPassword() {
		return domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	if len(in.NewPassword) < 6 {
		return domain.ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// UpdateProfile actualiza el nombre de la propia cuenta.
func (uc *AuthUseCase) UpdateProfile(accountID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrAccountNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	user.Name = name
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// reactivate marca la cuenta como activa y persiste.
func (uc *AuthUseCase) reactivate(user *entity.User) error {
	user.Status = entity.StatusActive
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// issue emite el token de sesión con {accountId, email, role}.
func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    *toUserResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// randomPasswordHash genera un hash bcrypt de una contraseña aleatoria que
// nunca se revela. Sirve de placeholder para cuentas creadas vía Google.
func randomPasswordHash() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(base64.RawURLEncoding.EncodeToString(b)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
