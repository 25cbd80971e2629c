package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const adminTokenTTL = 24 * time.Hour

// Claims for the admin back-office token. TokenID lets the in-memory
// token store revoke a session before its JWT expiry.
type Claims struct {
	TokenID string `json:"tid"`
	jwt.RegisteredClaims
}

// GenerateAdminJWT issues a signed admin token and returns the token
// string plus its revocable token id.
func GenerateAdminJWT(secret string) (tokenString, tokenID string, err error) {
	tokenID = uuid.New().String()
	now := time.Now()

	claims := &Claims{
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "cristalclean-api",
			Subject:   "admin",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, tokenID, nil
}

// ValidateJWT parses and validates an admin token string.
func ValidateJWT(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}

// AdminTokenTTL is exported for the login cookie max-age.
func AdminTokenTTL() time.Duration { return adminTokenTTL }
