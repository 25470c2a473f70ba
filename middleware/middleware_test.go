package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourbase/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signedToken(t *testing.T, userID string, roles []string) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/tours", nil), nil)

	if called {
		t.Fatal("handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateRejectsSpoofedUpgradeHeaders(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	// Upgrade headers alone must not stand in for a bearer token.
	req := httptest.NewRequest("GET", "/api/tours", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")

	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if called {
		t.Fatal("handler ran on upgrade headers without any token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler ran with an unverifiable token")
	})

	req := httptest.NewRequest("GET", "/api/tours", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticatePutsClaimsInContext(t *testing.T) {
	var gotUserID string
	var gotRoles []string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRoles, _ = r.Context().Value(globals.RoleKey).([]string)
	})

	req := httptest.NewRequest("GET", "/api/tours", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u42", []string{"user"}))

	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != "u42" {
		t.Errorf("userid in context = %q", gotUserID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "user" {
		t.Errorf("roles in context = %v", gotRoles)
	}
}

func TestRequireRole(t *testing.T) {
	run := func(roles []string) (int, bool) {
		called := false
		handler := Authenticate(RequireRole("admin", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			called = true
		}))
		req := httptest.NewRequest("GET", "/api/admin/livesessions", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "u42", roles))
		rec := httptest.NewRecorder()
		handler(rec, req, nil)
		return rec.Code, called
	}

	if code, called := run([]string{"user"}); code != http.StatusForbidden || called {
		t.Errorf("plain user: status = %d, called = %v", code, called)
	}
	if code, called := run([]string{"user", "admin"}); code != http.StatusOK || !called {
		t.Errorf("admin: status = %d, called = %v", code, called)
	}
}

func TestValidateRawToken(t *testing.T) {
	claims, err := ValidateRawToken(signedToken(t, "u42", []string{"user"}))
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u42" {
		t.Errorf("userid = %q", claims.UserID)
	}

	if _, err := ValidateRawToken(""); err == nil {
		t.Error("empty token should not validate")
	}
	if _, err := ValidateRawToken("not.a.jwt"); err == nil {
		t.Error("garbage token should not validate")
	}
}
