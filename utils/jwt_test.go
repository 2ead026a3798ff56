package utils

import (
	"testing"
	"time"

	"ceylonescape/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	token, err := IssueToken("user-a", "admin", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	id, role, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if id != "user-a" || role != "admin" {
		t.Errorf("VerifyToken() = (%q, %q), want (user-a, admin)", id, role)
	}
}

func TestVerifyTokenRejectsBadInput(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	t.Run("garbage token", func(t *testing.T) {
		if _, _, err := VerifyToken("not-a-token"); err == nil {
			t.Error("VerifyToken() accepted garbage input")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := IssueToken("user-a", "user", -time.Minute)
		if err != nil {
			t.Fatalf("IssueToken() error = %v", err)
		}
		if _, _, err := VerifyToken(token); err == nil {
			t.Error("VerifyToken() accepted an expired token")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := IssueToken("user-a", "user", time.Hour)
		if err != nil {
			t.Fatalf("IssueToken() error = %v", err)
		}
		config.AppConfig = config.Config{JWTSecret: "another-secret"}
		defer func() { config.AppConfig = config.Config{JWTSecret: "test-secret"} }()
		if _, _, err := VerifyToken(token); err == nil {
			t.Error("VerifyToken() accepted a token signed with a different secret")
		}
	})
}

func TestVerifyTokenDefaultsRole(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	token, err := IssueToken("user-a", "", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	_, role, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if role != "user" {
		t.Errorf("role = %q, want default user", role)
	}
}
