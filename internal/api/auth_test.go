package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterAndLogin(t *testing.T) {
	server, store := newTestServer(t)
	user, _ := registerUser(t, server, store, "Alice", "alice@example.com")

	if user.Password == "password123" {
		t.Error("password must not be stored in plain text")
	}

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %v", status, body)
	}
	if asMap(t, body)["token"] == "" {
		t.Error("login response missing token")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	server, store := newTestServer(t)
	registerUser(t, server, store, "Alice", "alice@example.com")

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", gin.H{
		"name":     "Impostor",
		"email":    "alice@example.com",
		"password": "different123",
	})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %v", status, body)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	server, _ := newTestServer(t)

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	server, store := newTestServer(t)
	registerUser(t, server, store, "Alice", "alice@example.com")

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", status)
	}

	status, _ = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("unknown email: expected 401, got %d", status)
	}
}
