package auth

import "context"

// GoogleIdentity claims verificados de un ID token de Google.
type GoogleIdentity struct {
	SubjectID string // claim "sub": id estable del usuario en Google
	Email     string
	Name      string
}

// GoogleTokenVerifier verifica un ID token contra las llaves públicas del
// proveedor y la audiencia configurada. Lo implementa infrastructure/googleauth;
// el puerto permite sustituirlo en tests.
type GoogleTokenVerifier interface {
	// Verify retorna la identidad si el token es auténtico y vigente.
	// Cualquier fallo de firma, audiencia, issuer o expiración retorna
	// domain.ErrInvalidGoogleToken.
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}
