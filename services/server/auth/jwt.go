// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package auth issues and validates the session tokens behind the API.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AleutianAI/MoneyGuy/pkg/extensions"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

const defaultTokenTTL = 24 * time.Hour

// JWTProvider signs and validates HS256 session tokens. It implements
// extensions.AuthProvider so the middleware stays provider-agnostic.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTProvider(secret string, ttl time.Duration) (*JWTProvider, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTProvider{secret: []byte(secret), ttl: ttl}, nil
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Issue signs a session token for the user.
func (p *JWTProvider) Issue(user *datatypes.User) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		Email: user.Email,
		Name:  user.FirstName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate implements extensions.AuthProvider. Any parse or signature
// failure maps onto extensions.ErrUnauthorized so callers never branch
// on jwt internals.
func (p *JWTProvider) Validate(ctx context.Context, tokenString string) (*extensions.AuthInfo, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, extensions.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, extensions.ErrUnauthorized
	}

	return &extensions.AuthInfo{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

var _ extensions.AuthProvider = (*JWTProvider)(nil)
