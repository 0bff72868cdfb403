// Package googleauth verifica ID tokens de Google Sign-In contra el JWKS
// público de Google (RS256), sin SDK externo.
package googleauth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/luxe-fashion/storefront-api/internal/application/auth"
	"github.com/luxe-fashion/storefront-api/internal/domain"
)

const (
	jwksURL      = "https://www.googleapis.com/oauth2/v3/certs"
	jwksCacheTTL = time.Hour
)

var _ auth.GoogleTokenVerifier = (*Verifier)(nil)

// Verifier valida ID tokens de Google: firma RS256 contra el JWKS, audiencia
// (client id de la app), issuer y expiración. Cachea las claves una hora y
// refresca cuando llega un kid desconocido (rotación de claves de Google).
type Verifier struct {
	clientID   string
	httpClient *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey // por kid
	fetchedAt time.Time
}

// NewVerifier construye el verificador para el client id dado.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleClaims struct {
	jwtlib.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Verify valida el ID token y devuelve la identidad externa.
// Cualquier fallo (firma, audiencia, issuer, expiración, email sin verificar)
// retorna domain.ErrInvalidGoogleToken sin detalle: el caller no debe poder
// distinguir por qué se rechazó.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*auth.GoogleIdentity, error) {
	claims := &googleClaims{}
	token, err := jwtlib.ParseWithClaims(idToken, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token sin kid")
		}
		return v.keyForKid(ctx, kid)
	},
		jwtlib.WithAudience(v.clientID),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidGoogleToken
	}
	iss := claims.Issuer
	if iss != "accounts.google.com" && iss != "https://accounts.google.com" {
		return nil, domain.ErrInvalidGoogleToken
	}
	if claims.Subject == "" || claims.Email == "" || !claims.EmailVerified {
		return nil, domain.ErrInvalidGoogleToken
	}
	return &auth.GoogleIdentity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}

// keyForKid devuelve la clave pública para el kid, refrescando el JWKS si la
// cache expiró o el kid no está (Google rota claves sin aviso).
func (v *Verifier) keyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetchedAt) < jwksCacheTTL {
		return key, nil
	}
	if err := v.refreshLocked(ctx); err != nil {
		return nil, err
	}
	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("kid %q no está en el JWKS de Google", kid)
	}
	return key, nil
}

type jwksDocument struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *Verifier) refreshLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch JWKS: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch JWKS: status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return fmt.Errorf("JWKS sin claves RSA utilizables")
	}
	v.keys = keys
	v.fetchedAt = time.Now()
	return nil
}

// rsaKeyFromJWK arma una clave RSA desde los campos n/e (base64url sin padding).
func rsaKeyFromJWK(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	eInt := new(big.Int).SetBytes(eBytes)
	if !eInt.IsInt64() || eInt.Int64() <= 0 {
		return nil, fmt.Errorf("exponente inválido")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(eInt.Int64()),
	}, nil
}
