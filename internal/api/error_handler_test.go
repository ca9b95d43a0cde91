package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/user-api/internal/api/handler"
	"github.com/acquisitions/user-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"not owner", domain.ErrNotOwner, http.StatusForbidden, "you can only modify your own account"},
		{"role change", domain.ErrRoleChangeNotAdmin, http.StatusForbidden, "only administrators can change user roles"},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"duplicate email", domain.ErrEmailExists, http.StatusConflict, "User with this email already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := renderError(t, tt.err)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if body["error"] != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, body["error"])
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("update user 7"), domain.ErrUserNotFound)

	rec, _ := renderError(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped not-found, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	ve := &handler.ValidationError{Fields: []handler.FieldError{
		{Field: "email", Message: "Invalid email format"},
		{Field: "password", Message: "Password must be at least 6 characters long"},
	}}

	rec, body := renderError(t, ve)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "Validation failed" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	details, ok := body["details"].([]any)
	if !ok || len(details) != 2 {
		t.Fatalf("expected 2 detail entries, got %v", body["details"])
	}
	first := details[0].(map[string]any)
	if first["field"] != "email" || first["message"] != "Invalid email format" {
		t.Fatalf("unexpected first detail: %v", first)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if body["error"] != "rate limit exceeded" {
		t.Fatalf("unexpected message: %v", body["error"])
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := renderError(t, errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "Internal server error" {
		t.Fatalf("internal details must not leak, got %v", body["error"])
	}
}
