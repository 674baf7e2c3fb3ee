package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

// Claims son los datos que el frontend firma en el access token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenVerifier valida access tokens HS256 emitidos por el frontend con el secreto compartido.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier devuelve nil si no hay secreto: la autenticacion queda deshabilitada.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	if strings.TrimSpace(secret) == "" {
		return nil
	}
	return &TokenVerifier{secret: []byte(secret), issuer: strings.TrimSpace(issuer)}
}

func (v *TokenVerifier) Verify(token string) (Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(token) == "" {
		return Claims{}, ErrJWTInvalid
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return Claims{}, ErrJWTInvalid
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

// Sign emite un token para userID; lo usan el CLI y los tests.
func (v *TokenVerifier) Sign(userID string, ttl time.Duration) (string, error) {
	if v == nil {
		return "", ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
