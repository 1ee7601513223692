package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateSessionToken_Success(t *testing.T) {
	issuer := "test-issuer"
	userID := "user-1"
	sessionID := "session-1"
	ttl := time.Hour
	key := "secret-key"

	tokenString, claims, err := GenerateSessionToken(issuer, userID, sessionID, ttl, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if tokenString == "" {
		t.Error("expected non-empty token string")
	}
	if got := len(strings.Split(tokenString, ".")); got != 3 {
		t.Errorf("expected 3 token segments, got %d", got)
	}

	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != userID {
		t.Errorf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.SessionID != sessionID {
		t.Errorf("expected session id %s, got %s", sessionID, claims.SessionID)
	}

	// exp must equal iat + ttl.
	wantExp := claims.IssuedAt.Add(ttl)
	if !claims.ExpiresAt.Equal(wantExp) {
		t.Errorf("expected expiry %v, got %v", wantExp, claims.ExpiresAt)
	}
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		issuer    string
		userID    string
		sessionID string
		ttl       time.Duration
		key       string
	}{
		{"empty issuer", "", "u", "s", time.Hour, "key"},
		{"empty user id", "iss", "", "s", time.Hour, "key"},
		{"empty session id", "iss", "u", "", time.Hour, "key"},
		{"zero ttl", "iss", "u", "s", 0, "key"},
		{"empty key", "iss", "u", "s", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GenerateSessionToken(tt.issuer, tt.userID, tt.sessionID, tt.ttl, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateSessionToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	tokenString, _, err := GenerateSessionToken(issuer, "user-42", "session-42", 5*time.Minute, key)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateSessionToken(tokenString, key, issuer)
	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if claims.UserID() != "user-42" {
		t.Errorf("expected user id user-42, got %s", claims.UserID())
	}
	if claims.SessionID != "session-42" {
		t.Errorf("expected session id session-42, got %s", claims.SessionID)
	}
}

func TestValidateSessionToken_InvalidKey(t *testing.T) {
	tokenString, _, err := GenerateSessionToken("iss", "u", "s", time.Hour, "correct-key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err = ValidateSessionToken(tokenString, "wrong-key", "iss"); err == nil {
		t.Error("expected error for wrong sign key, got nil")
	}
}

func TestValidateSessionToken_WrongIssuer(t *testing.T) {
	tokenString, _, err := GenerateSessionToken("iss-a", "u", "s", time.Hour, "key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err = ValidateSessionToken(tokenString, "key", "iss-b"); err == nil {
		t.Error("expected error for wrong issuer, got nil")
	}
}

func TestValidateSessionToken_Expired(t *testing.T) {
	tokenString, _, err := GenerateSessionToken("iss", "u", "s", -time.Minute, "key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err = ValidateSessionToken(tokenString, "key", "iss"); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

func TestValidateSessionToken_TamperedSignature(t *testing.T) {
	tokenString, _, err := GenerateSessionToken("iss", "u", "s", time.Hour, "key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Flip one signature character.
	last := tokenString[len(tokenString)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := tokenString[:len(tokenString)-1] + string(flipped)

	if _, err = ValidateSessionToken(tampered, "key", "iss"); err == nil {
		t.Error("expected error for tampered signature, got nil")
	}
}

func TestValidateSessionToken_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "garbage"},
		{"two segments", "aaaa.bbbb"},
		{"four segments", "aaaa.bbbb.cccc.dddd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateSessionToken(tt.token, "key", "iss"); err == nil {
				t.Error("expected error for malformed token, got nil")
			}
		})
	}
}
