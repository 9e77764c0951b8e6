// Package jwtauth verifica tokens HS256 emitidos por el bot de WhatsApp.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-lost-found/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt secret not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingPhone  = errors.New("token has no phone")
)

// Claims: phone es la identidad; si falta se usa sub.
type Claims struct {
	jwt.RegisteredClaims
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type Config struct {
	Secret string
	// Issuer vacío => no se valida iss.
	Issuer string
}

// Verifier implementa auth.AuthVerifier.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c Claims
	_, err := v.parser.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		phone = strings.TrimSpace(c.Subject)
	}
	if phone == "" {
		return auth.Claims{}, ErrMissingPhone
	}

	return auth.Claims{
		Phone: phone,
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
	}, nil
}
