package dto

import "time"

// SignupRequest entrada para registro (password en texto, se hashea en use case).
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleAuthRequest entrada para login con Google: el ID token emitido por Google.
type GoogleAuthRequest struct {
	Token string `json:"token" validate:"required"`
}

// ChangePasswordRequest entrada para rotación de contraseña.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UpdateProfileRequest entrada para actualizar el propio perfil (solo el nombre).
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// AdminUpdateUserRequest entrada para actualización de cuentas por un admin.
// Campos vacíos no se tocan.
type AdminUpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,max=200"`
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"omitempty,oneof=customer admin"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse salida de una cuenta (sin password hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"joined"`
}

// AuthResponse salida de signup/login/google: token + cuenta.
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UserListResponse salida del listado de cuentas (admin).
type UserListResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Users   []UserResponse `json:"users"`
}
