package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.GenerateToken("client-1", "service")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.ClientID != "client-1" {
		t.Fatalf("unexpected client id %q", claims.ClientID)
	}
	if claims.Role != "service" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.Subject != "client-1" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateToken("client-1", "service")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Fatal("token signed with different secret should fail validation")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)
	token, err := manager.GenerateToken("client-1", "service")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Fatal("expired token should fail validation")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	if _, err := manager.ValidateToken("not.a.token"); err == nil {
		t.Fatal("malformed token should fail validation")
	}
}
