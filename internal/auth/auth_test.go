package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scguardian/guardian/internal/config"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := NewConfig(config.AuthConfig{
		AdminPassword: "s3cret",
		JWTSecret:     "test-signing-key",
		TokenDuration: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	return cfg
}

func TestNewConfig(t *testing.T) {
	cfg := testConfig(t)
	if cfg.PasswordHash == "s3cret" || cfg.PasswordHash == "" {
		t.Fatal("password should be stored hashed")
	}
	if !cfg.Authenticate("s3cret") {
		t.Error("correct password rejected")
	}
	if cfg.Authenticate("S3CRET") || cfg.Authenticate("") {
		t.Error("wrong password accepted")
	}

	if _, err := NewConfig(config.AuthConfig{JWTSecret: "k"}); err == nil {
		t.Error("expected error for empty password")
	}
	if _, err := NewConfig(config.AuthConfig{AdminPassword: "p"}); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(AdminUserID, "key", time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	userID, err := ValidateToken(token, "key")
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if userID != AdminUserID {
		t.Errorf("userID = %q, want %q", userID, AdminUserID)
	}

	if _, err := ValidateToken(token, "other-key"); err == nil {
		t.Error("token signed with another key should be rejected")
	}

	expired, _ := GenerateToken(AdminUserID, "key", -time.Minute)
	if _, err := ValidateToken(expired, "key"); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig(t)
	valid, _ := GenerateToken(AdminUserID, cfg.JWTSecret, time.Minute)

	var gotUser string
	handler := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := GetUserIDFromContext(r.Context()); ok {
			gotUser = u
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		method string
		header string
		status int
	}{
		{"missing header", http.MethodGet, "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "Basic abc", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", http.MethodGet, "Bearer " + valid, http.StatusNoContent},
		{"preflight", http.MethodOptions, "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/admin/inference-logs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
		})
	}

	if gotUser != AdminUserID {
		t.Errorf("user in context = %q, want %q", gotUser, AdminUserID)
	}
}
