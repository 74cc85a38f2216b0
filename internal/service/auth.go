package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lumenframe/albums/internal/filter"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// AuthService turns bearer tokens into caller identities. Tokens are issued
// by the account service; this service only verifies them.
type AuthService struct {
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// GenerateJWT signs a token for userKey. Used by the CLI for local testing.
func (s *AuthService) GenerateJWT(userKey string) (string, error) {
	claims := jwt.MapClaims{
		"user_key": userKey,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT validates tokenString and returns the caller it identifies.
func (s *AuthService) VerifyJWT(tokenString string) (filter.Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return filter.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return filter.Caller{}, ErrInvalidToken
	}

	userKey, ok := claims["user_key"].(string)
	if !ok || userKey == "" {
		return filter.Caller{}, fmt.Errorf("%w: missing user_key claim", ErrInvalidToken)
	}

	return filter.Caller{Key: userKey}, nil
}
