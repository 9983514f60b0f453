package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"spendly-api/internal/auth"
	"spendly-api/internal/config"
	"spendly-api/internal/models"
	"spendly-api/internal/storage/memory"
)

// newTestServer wires the full router against the in-memory store so tests
// exercise the same middleware chain as production.
func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	store := memory.New()
	server := httptest.NewServer(SetupRouter(store, nil))
	t.Cleanup(server.Close)
	return server, store
}

// doJSON sends a JSON request and decodes the JSON response body, which may
// be an object or an array.
func doJSON(t *testing.T, method, url, token string, body any) (int, any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return resp.StatusCode, decoded
}

// registerUser registers through the API and returns the stored user plus a
// valid bearer token.
func registerUser(t *testing.T, server *httptest.Server, store *memory.Store, name, email string) (*models.User, string) {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("register returned %d: %v", status, body)
	}
	token, _ := asMap(t, body)["token"].(string)
	if token == "" {
		t.Fatalf("register response missing token: %v", body)
	}

	user, err := store.Users().GetUserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("registered user not in store: %v", err)
	}
	return user, token
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected JSON object, got %T: %v", v, v)
	}
	return m
}

func asSlice(t *testing.T, v any) []any {
	t.Helper()
	s, ok := v.([]any)
	if !ok {
		t.Fatalf("expected JSON array, got %T: %v", v, v)
	}
	return s
}
