package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "DeliciousBites"

type CustomClaims struct {
	StaffID uint   `json:"staff_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates staff session tokens and keeps the logout blacklist.
type TokenManager struct {
	secret []byte
	ttl    time.Duration

	mu        sync.RWMutex
	blacklist map[string]time.Time
	now       func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		ttl:       ttl,
		blacklist: make(map[string]time.Time),
		now:       time.Now,
	}
}

func (tm *TokenManager) GenerateToken(staffID uint, role string) (string, error) {
	now := tm.now()
	claims := &CustomClaims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) ParseToken(tokenString string) (*CustomClaims, error) {
	if tm.IsBlacklisted(tokenString) {
		return nil, errors.New("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(tm.now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Revoke blacklists the token until it would have expired anyway.
func (tm *TokenManager) Revoke(tokenString string) {
	expiry := tm.now().Add(tm.ttl)
	if claims, err := tm.ParseToken(tokenString); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.blacklist[tokenString] = expiry
	tm.pruneLocked()
}

func (tm *TokenManager) IsBlacklisted(tokenString string) bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	expiry, exists := tm.blacklist[tokenString]
	return exists && tm.now().Before(expiry)
}

func (tm *TokenManager) pruneLocked() {
	now := tm.now()
	for token, expiry := range tm.blacklist {
		if now.After(expiry) {
			delete(tm.blacklist, token)
		}
	}
}
