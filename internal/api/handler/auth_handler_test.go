package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/user-api/internal/core/domain"
	"github.com/acquisitions/user-api/internal/core/ports"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, in ports.SignUpInput) (*domain.User, string, error)
	signInFn func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, string, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.signInFn(ctx, email, password)
}

func newAuthTestContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, string, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, Username: in.Username, Email: in.Email, Role: domain.RoleUser}, "token123", nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newAuthTestContext(t, "/api/auth/sign-up",
		`{"username":"alice","email":"  ALICE@Example.com ","password":"secret1"}`)
	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response")
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "token123" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("expected cookie max-age 3600, got %d", cookie.MaxAge)
	}
}

func TestAuthHandler_SignUp_ValidationErrors(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, string, error) {
			t.Fatalf("service should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, _ := newAuthTestContext(t, "/api/auth/sign-up",
		`{"username":"ab","email":"not-an-email","password":"short"}`)
	err := h.SignUp(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected all 3 violations collected, got %+v", ve.Fields)
	}
	// Errors come back in schema declaration order.
	if ve.Fields[0].Field != "username" || ve.Fields[1].Field != "email" || ve.Fields[2].Field != "password" {
		t.Fatalf("unexpected field order: %+v", ve.Fields)
	}
	if ve.Fields[0].Message != "Username must be at least 3 characters long" {
		t.Fatalf("unexpected username message: %s", ve.Fields[0].Message)
	}
	if ve.Fields[1].Message != "Invalid email format" {
		t.Fatalf("unexpected email message: %s", ve.Fields[1].Message)
	}
}

func TestAuthHandler_SignUp_BadRole(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, string, error) {
			t.Fatalf("service should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, _ := newAuthTestContext(t, "/api/auth/sign-up",
		`{"username":"alice","email":"a@example.com","password":"secret1","role":"root"}`)
	err := h.SignUp(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields[0].Message != `Role must be either "user" or "admin"` {
		t.Fatalf("unexpected message: %s", ve.Fields[0].Message)
	}
}

func TestAuthHandler_SignUp_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, string, error) {
			return nil, "", domain.ErrEmailExists
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, _ := newAuthTestContext(t, "/api/auth/sign-up",
		`{"username":"bob","email":"bob@example.com","password":"secret1"}`)
	if err := h.SignUp(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthHandler_SignUp_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, string, error) {
			t.Fatalf("service should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, _ := newAuthTestContext(t, "/api/auth/sign-up", "not-json")
	err := h.SignUp(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin}, "token123", nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newAuthTestContext(t, "/api/auth/sign-in",
		`{"email":"alice@example.com","password":"secret1"}`)
	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cookie := sessionCookie(rec); cookie == nil || cookie.Value != "token123" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, _ := newAuthTestContext(t, "/api/auth/sign-in",
		`{"email":"alice@example.com","password":"badpass"}`)
	if err := h.SignIn(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, rec := newAuthTestContext(t, "/api/auth/sign-out", "")
	if err := h.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("expected cleared session cookie, got %+v", cookie)
	}
}
