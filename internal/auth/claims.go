package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleAdmin = "admin"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSecret     = errors.New("token secret not configured")
)

// AdminClaims are carried by bearer tokens that may trigger recomputes,
// change settings and import airports.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 admin tokens
type TokenService struct {
	secretKey []byte
}

// NewTokenService creates a token service. An empty secret yields a service
// that rejects every token.
func NewTokenService(secretKey []byte) *TokenService {
	return &TokenService{secretKey: secretKey}
}

// Issue signs a new admin token for subject valid for ttl
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if len(s.secretKey) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate parses a token and checks signature, expiry and role
func (s *TokenService) Validate(tokenString string) (*AdminClaims, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrNoSecret
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
