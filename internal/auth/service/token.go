package service

import (
	"fmt"
	"time"

	"github.com/edupath/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator handles JWT access token generation and validation
type TokenGenerator struct {
	secret            string
	accessTokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:            secret,
		accessTokenExpiry: accessExpiry,
	}
}

// GenerateAccessToken creates an access token with userID and role in payload
func (tg *TokenGenerator) GenerateAccessToken(userID int, role models.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(tg.accessTokenExpiry).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the caller it identifies
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (models.Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return models.Caller{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return models.Caller{}, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Caller{}, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return models.Caller{}, fmt.Errorf("token is not an access token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return models.Caller{}, fmt.Errorf("user_id not found in token")
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return models.Caller{}, fmt.Errorf("role not found in token")
	}
	role := models.Role(roleStr)
	if !role.Valid() {
		return models.Caller{}, fmt.Errorf("unknown role %q in token", roleStr)
	}

	return models.Caller{ID: int(userID), Role: role}, nil
}
