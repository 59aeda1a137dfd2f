// Package auth issues and verifies the bearer tokens guarding the API.
//
// Credentials are configured as bcrypt hashes (no user table: the system
// has a fixed back-office staff of an administrator and optionally an
// analyst). Tokens are HS256 JWTs carrying the username and role; the
// upload endpoint additionally requires the ADMIN role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/reclaimhq/dormant/internal/config"
)

// Roles recognized by the API.
const (
	RoleAdmin   = "ADMIN"
	RoleAnalyst = "ANALYST"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the JWT payload for an authenticated staff member.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type user struct {
	name string
	hash string
	role string
}

// Service verifies credentials and issues signed tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	users  []user

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService builds an auth service from configuration.
func NewService(cfg *config.AuthConfig) *Service {
	s := &Service{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
	if cfg.AdminUsername != "" && cfg.AdminPasswordHash != "" {
		s.users = append(s.users, user{cfg.AdminUsername, cfg.AdminPasswordHash, RoleAdmin})
	}
	if cfg.AnalystUsername != "" && cfg.AnalystPasswordHash != "" {
		s.users = append(s.users, user{cfg.AnalystUsername, cfg.AnalystPasswordHash, RoleAnalyst})
	}
	return s
}

// Login checks the credentials and returns a signed token and the
// caller's role. Returns ErrInvalidCredentials without distinguishing
// unknown users from wrong passwords.
func (s *Service) Login(username, password string) (token, role string, err error) {
	for _, u := range s.users {
		if u.name != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.hash), []byte(password)) != nil {
			return "", "", ErrInvalidCredentials
		}
		tok, err := s.issue(u.name, u.role)
		if err != nil {
			return "", "", err
		}
		return tok, u.role, nil
	}
	return "", "", ErrInvalidCredentials
}

// Verify parses and validates a bearer token, returning its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issue(username, role string) (string, error) {
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
