package services

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), 24*time.Hour)

	token, err := svc.GenerateAuthToken("507f1f77bcf86cd799439011", "user")
	if err != nil {
		t.Fatalf("GenerateAuthToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "507f1f77bcf86cd799439011" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "507f1f77bcf86cd799439011")
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, want %q", claims.Role, "user")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), -time.Minute)

	token, err := svc.GenerateAuthToken("507f1f77bcf86cd799439011", "user")
	if err != nil {
		t.Fatalf("GenerateAuthToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("ValidateToken(expired) error = nil, want error")
	}
}

func TestValidateTokenTampered(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), 24*time.Hour)

	token, err := svc.GenerateAuthToken("507f1f77bcf86cd799439011", "user")
	if err != nil {
		t.Fatalf("GenerateAuthToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	// Flip one byte of the payload.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.ValidateToken(tampered); err == nil {
		t.Error("ValidateToken(tampered payload) error = nil, want error")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService([]byte("issuer-secret"), 24*time.Hour)
	verifier := NewJWTService([]byte("other-secret"), 24*time.Hour)

	token, err := issuer.GenerateAuthToken("507f1f77bcf86cd799439011", "admin")
	if err != nil {
		t.Fatalf("GenerateAuthToken() error = %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("ValidateToken with foreign secret error = nil, want error")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), 24*time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) error = nil, want error", token)
		}
	}
}
