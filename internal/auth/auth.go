package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

type Claims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

type TokenDetails struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expires_in"`
	TokenType string `json:"token_type"`
}

func GenerateJWT(userID int64, name, secret string) (*TokenDetails, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret key cannot be empty")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("user ID must be positive")
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenDetails{
		Token:     tokenString,
		ExpiresIn: strconv.FormatInt(int64(TokenTTL/time.Second), 10),
		TokenType: "Bearer",
	}, nil
}

func ValidateJWT(tokenString, secret string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret key cannot be empty")
	}
	if tokenString == "" {
		return nil, fmt.Errorf("token string cannot be empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("token carries no user id")
	}
	return claims, nil
}
