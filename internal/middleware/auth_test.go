package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func testApp(m *AuthMiddleware) *fiber.App {
	app := fiber.New()
	app.Get("/protected", m.Authenticate(), func(c *fiber.Ctx) error {
		return c.SendString(GetWorkspaceID(c))
	})
	return app
}

func TestAuthenticate_ValidToken(t *testing.T) {
	m := NewAuthMiddleware("test-secret", false)
	app := testApp(m)

	token, err := m.GenerateToken("ws-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := make([]byte, 5)
	resp.Body.Read(body)
	if string(body) != "ws-42" {
		t.Errorf("expected workspace id in context, got %q", body)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	m := NewAuthMiddleware("test-secret", false)
	app := testApp(m)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", resp.StatusCode)
			}
		})
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	signer := NewAuthMiddleware("other-secret", false)
	token, _ := signer.GenerateToken("ws-42")

	app := testApp(NewAuthMiddleware("test-secret", false))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong secret, got %d", resp.StatusCode)
	}
}

func TestAuthenticate_GatewayMode(t *testing.T) {
	app := testApp(NewAuthMiddleware("", true))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Workspace-Id", "ws-7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 in gateway mode, got %d", resp.StatusCode)
	}

	// Missing header is rejected even in gateway mode
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without workspace header, got %d", resp.StatusCode)
	}
}
