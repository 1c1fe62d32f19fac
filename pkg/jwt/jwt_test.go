package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("round-trip-secret")

	dealerID := uuid.New()
	token, err := GenerateToken(dealerID, "dealer@example.com", "Dealer One")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.DealerID != dealerID {
		t.Errorf("dealer id mismatch: got %s, want %s", claims.DealerID, dealerID)
	}
	if claims.Email != "dealer@example.com" || claims.Name != "Dealer One" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateToken_RejectsForeignSecret(t *testing.T) {
	SetSecret("secret-one")
	token, err := GenerateToken(uuid.New(), "dealer@example.com", "Dealer One")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	SetSecret("secret-two")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed under another secret was accepted")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	SetSecret("garbage-secret")
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("malformed token was accepted")
	}
}
