package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Sup3rSecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("hash must not equal plaintext")
	}

	if !hasher.Verify("Sup3rSecret", hash) {
		t.Error("expected correct password to verify")
	}
	if hasher.Verify("WrongPassword1", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("Sup3rSecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := hasher.Hash("Sup3rSecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("expected per-call salting to produce distinct hashes")
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	hasher := NewPasswordHasher(1000)

	hash, err := hasher.Hash("Sup3rSecret")
	if err != nil {
		t.Fatalf("expected fallback cost to work, got: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt hash format, got %q", hash)
	}
}

func TestPasswordHasher_VerifyGarbageHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	if hasher.Verify("anything", "not-a-bcrypt-hash") {
		t.Error("expected verification against garbage hash to fail")
	}
}
