package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies the signed session tokens bound to a
// user id and email. Tokens are HMAC-signed and expire after maxAge.
type TokenManager struct {
	secret []byte
	maxAge time.Duration
}

func NewTokenManager(secret string, maxAgeSeconds int) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		maxAge: time.Duration(maxAgeSeconds) * time.Second,
	}
}

// Generate signs a token carrying the user id, email and role.
func (m *TokenManager) Generate(userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(m.maxAge).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token string and returns the identity it binds.
// Any failure (bad signature, expiry, malformed claims) yields an
// unauthenticated identity plus the underlying error.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleBasic
	}

	return Identity{
		Authenticated: true,
		UserID:        userID,
		Email:         email,
		Role:          role,
	}, nil
}
