package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService mints and validates HS256 bearer tokens for the protected
// mode. It is only constructed when a secret is configured; without one
// the service runs open.
type AuthService struct {
	secret   []byte
	tokenTTL time.Duration
}

// Claims is the token payload.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// NewAuthService builds an auth service with the given shared secret.
// A zero ttl defaults to 24 hours.
func NewAuthService(secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// GenerateToken creates a signed token for the named client and reports
// its expiry.
func (a *AuthService) GenerateToken(name string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(a.tokenTTL)

	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "hostpulse",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies a token's signature and expiry and returns its
// claims.
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
