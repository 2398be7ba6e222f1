package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/striketrack/backend/internal/domain"
)

// Manager issues and validates admin session tokens. The tracker has a
// single admin principal; the password is checked against a bcrypt hash
// from configuration and a successful login yields a signed HS256 JWT.
type Manager struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	passwordHash []byte
}

// NewManager creates an auth manager. secret must be at least 32 characters
// for HS256 security; passwordHash is the bcrypt hash of the admin password.
func NewManager(secret, issuer string, ttl time.Duration, passwordHash string) *Manager {
	return &Manager{
		secret:       []byte(secret),
		issuer:       issuer,
		ttl:          ttl,
		passwordHash: []byte(passwordHash),
	}
}

// sessionClaims extends the registered JWT claims with the principal role.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// RoleAdmin is the only role the tracker issues.
const RoleAdmin = "admin"

// Login verifies the admin password and returns a signed session token with
// its expiry. A wrong password maps to domain.ErrUnauthorized.
func (m *Manager) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleAdmin,
			Issuer:    m.issuer,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: RoleAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses and validates a session token, returning the role.
func (m *Manager) ValidateToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("%w: token is empty", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}

	if claims.Issuer != m.issuer {
		return "", fmt.Errorf("%w: invalid issuer %q", domain.ErrUnauthorized, claims.Issuer)
	}

	return claims.Role, nil
}

// HashPassword produces a bcrypt hash for operator tooling.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
