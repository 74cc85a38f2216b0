package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAuthService_RoundTrip(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)

	token, err := svc.GenerateJWT("alice")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	caller, err := svc.VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if caller.Key != "alice" || caller.IsAnonymous() {
		t.Errorf("caller = %+v, want alice", caller)
	}
}

func TestAuthService_VerifyJWT_Rejects(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	valid := jwt.MapClaims{"user_key": "alice", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), valid)},
		{"none algorithm", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
		{"expired", sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"user_key": "alice",
			"exp":      time.Now().Add(-time.Minute).Unix(),
		})},
		{"missing user_key", sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"empty user_key", sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"user_key": "",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller, err := svc.VerifyJWT(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
			if !caller.IsAnonymous() {
				t.Errorf("caller = %+v, want anonymous", caller)
			}
		})
	}
}
