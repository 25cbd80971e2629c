package utils

import (
	"testing"
	"time"
)

func TestTokenStoreLifecycle(t *testing.T) {
	ts := NewTokenStore()

	if ts.Valid("nope") {
		t.Fatal("unknown token reported valid")
	}

	ts.Put("t1", time.Now().Add(time.Hour))
	if !ts.Valid("t1") {
		t.Fatal("live token reported invalid")
	}

	ts.Revoke("t1")
	if ts.Valid("t1") {
		t.Fatal("revoked token still valid")
	}
}

func TestTokenStoreExpiry(t *testing.T) {
	ts := NewTokenStore()
	ts.Put("t1", time.Now().Add(-time.Minute))
	if ts.Valid("t1") {
		t.Fatal("expired token reported valid")
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	tokenString, tokenID, err := GenerateAdminJWT("test-secret")
	if err != nil {
		t.Fatalf("GenerateAdminJWT: %v", err)
	}
	if tokenID == "" {
		t.Fatal("no token id")
	}

	claims, err := ValidateJWT("test-secret", tokenString)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.TokenID != tokenID {
		t.Fatalf("token id mismatch: %q != %q", claims.TokenID, tokenID)
	}

	if _, err := ValidateJWT("wrong-secret", tokenString); err == nil {
		t.Fatal("token validated with wrong secret")
	}
}
