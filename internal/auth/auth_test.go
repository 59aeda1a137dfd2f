package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/reclaimhq/dormant/internal/config"
)

func testService(t *testing.T) *Service {
	t.Helper()

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	analystHash, err := bcrypt.GenerateFromPassword([]byte("analyst-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	return NewService(&config.AuthConfig{
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		AdminUsername:       "admin",
		AdminPasswordHash:   string(adminHash),
		AnalystUsername:     "analyst",
		AnalystPasswordHash: string(analystHash),
	})
}

func TestLoginAndVerify(t *testing.T) {
	svc := testService(t)

	token, role, err := svc.Login("admin", "admin-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if role != RoleAdmin {
		t.Errorf("role = %q, want %q", role, RoleAdmin)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "admin" {
		t.Errorf("Subject = %q, want admin", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, RoleAdmin)
	}
}

func TestLoginAnalystRole(t *testing.T) {
	svc := testService(t)

	_, role, err := svc.Login("analyst", "analyst-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if role != RoleAnalyst {
		t.Errorf("role = %q, want %q", role, RoleAnalyst)
	}
}

func TestLoginRejections(t *testing.T) {
	svc := testService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "admin-pass"},
		{"empty credentials", "", ""},
		{"password for the other user", "analyst", "admin-pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login(%q, ...) error = %v, want ErrInvalidCredentials", tt.username, err)
			}
		})
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	svc := testService(t)

	token, _, err := svc.Login("admin", "admin-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"tampered signature", token + "tampered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := testService(t)
	other := NewService(&config.AuthConfig{JWTSecret: "different-secret", TokenTTL: time.Hour})

	token, _, err := svc.Login("admin", "admin-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := testService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.Login("admin", "admin-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() of expired token error = %v, want ErrInvalidToken", err)
	}
}
