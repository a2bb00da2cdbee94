package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatehouse/auth-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	return rec.Code, resp["error"]
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{domain.ErrEmailTaken, http.StatusBadRequest, "email address already in use"},
		{domain.ErrUserNotFound, http.StatusUnauthorized, "no user with matching email"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts"},
	}
	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.wantCode || msg != tc.wantMsg {
			t.Fatalf("%v -> %d %q, want %d %q", tc.err, code, msg, tc.wantCode, tc.wantMsg)
		}
	}
}

func TestErrorHandler_InvariantViolationsAreOpaque(t *testing.T) {
	for _, err := range []error{domain.ErrRoleNotFound, domain.ErrMissingClaims} {
		code, msg := renderError(t, err)
		if code != http.StatusInternalServerError {
			t.Fatalf("%v -> %d, want 500", err, code)
		}
		if msg != "internal server error" {
			t.Fatalf("invariant violation leaked message %q", msg)
		}
	}
}

func TestErrorHandler_UnexpectedErrorsAreSanitized(t *testing.T) {
	code, msg := renderError(t, errors.New("pq: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal cause leaked: %q", msg)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "access denied, you need to login"))
	if code != http.StatusUnauthorized || msg != "access denied, you need to login" {
		t.Fatalf("got %d %q", code, msg)
	}
}
