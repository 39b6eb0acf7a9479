// Package service defines domain-level service interfaces implemented by the
// infrastructure layer.
package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating the access
// tokens handed out by the phone-verification flow. This abstracts the token
// details from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for a user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// ValidateToken checks the validity of a token string and returns its
	// claims.
	ValidateToken(tokenString string) (*Claims, error)
}
