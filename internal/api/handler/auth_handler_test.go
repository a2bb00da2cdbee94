package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse/auth-api/internal/core/domain"
)

const (
	testCookieName = "access_token"
	testCookieAge  = 24 * time.Hour
)

type stubAuthService struct {
	registerFn func(ctx context.Context, userName, email, password, roleName string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, userName, email, password, roleName string) (*domain.User, error) {
	return s.registerFn(ctx, userName, email, password, roleName)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) EnsureAdmin(context.Context, string, string, string) error {
	return nil
}

func newAuthTestContext(t *testing.T, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, userName, email, password, roleName string) (*domain.User, error) {
			if userName != "alice" || email != "alice@example.com" || roleName != "user" {
				t.Fatalf("unexpected args: %s %s %s", userName, email, roleName)
			}
			return &domain.User{ID: "u1", UserName: userName, Email: email, RoleID: "r1"}, nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	_, c, rec := newAuthTestContext(t, "/auth/register",
		`{"userName":"alice","email":"alice@example.com","password":"secret1","role":"user"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	created, ok := resp["createdUser"].(map[string]any)
	if !ok {
		t.Fatalf("expected createdUser in response: %v", resp)
	}
	if created["userName"] != "alice" || created["roleId"] != "r1" {
		t.Fatalf("unexpected createdUser payload: %+v", created)
	}
	if _, leaked := created["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	bodies := []string{
		"not-json",
		// missing email, bad email, short password, unknown role, missing role
		`{"userName":"alice","password":"secret1","role":"user"}`,
		`{"userName":"alice","email":"not-an-email","password":"secret1","role":"user"}`,
		`{"userName":"alice","email":"a@b.com","password":"short","role":"user"}`,
		`{"userName":"alice","email":"a@b.com","password":"secret1","role":"superuser"}`,
		`{"userName":"alice","email":"a@b.com","password":"secret1"}`,
	}
	for _, body := range bodies {
		_, c, rec := newAuthTestContext(t, "/auth/register", body)
		_ = h.Register(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	_, c, rec := newAuthTestContext(t, "/auth/register",
		`{"userName":"bob","email":"bob@example.com","password":"secret1","role":"user"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email address already in use") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_MissingRoleIsInternal(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			return nil, domain.ErrRoleNotFound
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	_, c, _ := newAuthTestContext(t, "/auth/register",
		`{"userName":"bob","email":"bob@example.com","password":"secret1","role":"user"}`)

	// A seeding bug propagates to the central error handler instead of being
	// rendered as a client error.
	if err := h.Register(c); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success_SetsCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", UserName: "alice", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	_, c, rec := newAuthTestContext(t, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	before := time.Now()
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == testCookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("access token cookie not set")
	}
	if found.Value != "token123" {
		t.Fatalf("cookie value = %q", found.Value)
	}

	// Cookie expiry sits at now + 24h regardless of the token's own TTL.
	wantExpiry := before.Add(testCookieAge)
	if diff := found.Expires.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cookie expires %v, want ~%v", found.Expires, wantExpiry)
	}
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	_, c, rec := newAuthTestContext(t, "/auth/login", `{"email":"x@x.com","password":"pass"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no user with matching email") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	_, c, rec := newAuthTestContext(t, "/auth/login", `{"email":"a@b.com","password":"bad"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrTooManyAttempts
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	_, c, rec := newAuthTestContext(t, "/auth/login", `{"email":"a@b.com","password":"bad"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookieConfig{Name: testCookieName, MaxAge: testCookieAge})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "token123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookieName {
			cleared = ck
		}
	}
	if cleared == nil {
		t.Fatalf("no cookie instruction in response")
	}
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}
}
