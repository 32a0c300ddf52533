package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/boardroomai/meeting-analyzer/errors"
	"github.com/boardroomai/meeting-analyzer/pkg/jwt"
)

func runRequest(t *testing.T, mw *AuthMiddleware, authorization string) (error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw.Authenticate(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), reached
}

func TestAuthenticateValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateToken("client-1", "service")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	mw := NewAuthMiddleware(manager, true)
	handlerErr, reached := runRequest(t, mw, "Bearer "+token)
	if handlerErr != nil {
		t.Fatalf("unexpected error: %v", handlerErr)
	}
	if !reached {
		t.Fatal("handler not reached with valid token")
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	mw := NewAuthMiddleware(jwt.NewManager("test-secret", time.Hour), true)

	handlerErr, reached := runRequest(t, mw, "")
	if reached {
		t.Fatal("handler should not run without a token")
	}
	appErr, ok := handlerErr.(apperrors.AppError)
	if !ok || appErr.Code != apperrors.ErrorCode_UNAUTHENTICATED {
		t.Fatalf("unexpected error %v", handlerErr)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(jwt.NewManager("test-secret", time.Hour), true)

	handlerErr, reached := runRequest(t, mw, "Bearer bogus")
	if reached {
		t.Fatal("handler should not run with an invalid token")
	}
	appErr, ok := handlerErr.(apperrors.AppError)
	if !ok || appErr.Code != apperrors.ErrorCode_AUTH_INVALID_TOKEN {
		t.Fatalf("unexpected error %v", handlerErr)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	mw := NewAuthMiddleware(jwt.NewManager("test-secret", time.Hour), true)

	handlerErr, reached := runRequest(t, mw, "Token abc")
	if reached {
		t.Fatal("handler should not run with a malformed header")
	}
	if handlerErr == nil {
		t.Fatal("expected error")
	}
}

func TestAuthenticateDisabledPassesThrough(t *testing.T) {
	mw := NewAuthMiddleware(nil, false)

	handlerErr, reached := runRequest(t, mw, "")
	if handlerErr != nil {
		t.Fatalf("unexpected error: %v", handlerErr)
	}
	if !reached {
		t.Fatal("disabled middleware should pass requests through")
	}
}

func TestGetClaims(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, _ := manager.GenerateToken("client-1", "service")
	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(ClaimsContextKey, claims)

	got, ok := GetClaims(c)
	if !ok || got.ClientID != "client-1" {
		t.Fatalf("unexpected claims %v (ok=%v)", got, ok)
	}

	empty := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := GetClaims(empty); ok {
		t.Fatal("expected no claims on fresh context")
	}
}
