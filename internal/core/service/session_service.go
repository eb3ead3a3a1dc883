package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

// claimIdentity is the registered claim carrying the identity (email).
const claimIdentity = "sub"

// SessionService signs and verifies HS256 session tokens.
type SessionService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewSessionService(secret string, tokenTTL time.Duration) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Issue signs a token embedding email plus any extra caller-supplied claims.
// Extra claims cannot override the identity or the timestamps.
func (s *SessionService) Issue(email string, extra map[string]any) (string, error) {
	if email == "" {
		return "", domain.ErrMissingIdentity
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		switch k {
		case claimIdentity, "iat", "exp":
			continue
		}
		claims[k] = v
	}
	claims[claimIdentity] = email
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.tokenTTL).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify returns the identity claim embedded in token. Expiry is enforced by
// the parser; any failure collapses to ErrUnauthenticated so callers have a
// single rejection kind to handle.
func (s *SessionService) Verify(token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrUnauthenticated
	}

	email, _ := claims[claimIdentity].(string)
	if email == "" {
		return "", domain.ErrUnauthenticated
	}
	return email, nil
}
