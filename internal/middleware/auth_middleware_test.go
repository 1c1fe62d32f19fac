package middleware

import (
	"net/http/httptest"
	"testing"

	"go-dealer-stock/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireDealer(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"dealer_id": c.Locals("dealer_id")})
	})
	return app
}

func TestRequireDealer_RejectsAnonymous(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("expected 401 without a token, got %d", resp.StatusCode)
	}
}

func TestRequireDealer_AcceptsBearerHeader(t *testing.T) {
	jwt.SetSecret("middleware-test-secret")
	app := newProtectedApp()

	token, err := jwt.GenerateToken(uuid.New(), "dealer@example.com", "Dealer One")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200 with bearer token, got %d", resp.StatusCode)
	}
}

// Websocket clients in browsers cannot set headers, so the token may
// arrive as a query parameter instead.
func TestRequireDealer_AcceptsQueryToken(t *testing.T) {
	jwt.SetSecret("middleware-test-secret")
	app := newProtectedApp()

	token, err := jwt.GenerateToken(uuid.New(), "dealer@example.com", "Dealer One")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected?token="+token, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200 with query token, got %d", resp.StatusCode)
	}
}

func TestRequireDealer_RejectsTamperedToken(t *testing.T) {
	jwt.SetSecret("middleware-test-secret")
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("expected 401 for a bad token, got %d", resp.StatusCode)
	}
}
