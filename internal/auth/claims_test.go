package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))

	token, err := svc.Issue("ops", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}
	if claims.Subject != "ops" || claims.Role != RoleAdmin || claims.ID == "" {
		t.Errorf("Unexpected claims %+v", claims)
	}
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))

	expired, _ := svc.Issue("ops", -time.Minute)
	foreign, _ := NewTokenService([]byte("other-secret")).Issue("ops", time.Hour)

	pilot := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role:             "pilot",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	pilotToken, _ := pilot.SignedString([]byte("test-secret"))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{Role: RoleAdmin})
	noExpiryToken, _ := noExpiry.SignedString([]byte("test-secret"))

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"wrong role":   pilotToken,
		"no expiry":    noExpiryToken,
		"garbage":      "not-a-jwt",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenService_NoSecret(t *testing.T) {
	svc := NewTokenService(nil)

	if _, err := svc.Issue("ops", time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Errorf("Expected ErrNoSecret on issue, got %v", err)
	}
	if _, err := svc.Validate("anything"); !errors.Is(err, ErrNoSecret) {
		t.Errorf("Expected ErrNoSecret on validate, got %v", err)
	}
}

func TestRequestContext(t *testing.T) {
	ctx := context.Background()
	if GetAdminClaims(ctx) != nil || GetRequestID(ctx) != "" {
		t.Fatal("Expected empty context")
	}

	claims := &AdminClaims{Role: RoleAdmin}
	ctx = SetRequestID(SetAdminClaims(ctx, claims), "req-1")

	if GetAdminClaims(ctx) != claims {
		t.Error("Expected claims to round trip")
	}
	if GetRequestID(ctx) != "req-1" {
		t.Error("Expected request id to round trip")
	}
}
