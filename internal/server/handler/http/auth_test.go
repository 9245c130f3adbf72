package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sidious38/simpleAnkiWeb/internal/session"
)

func newAuthHandler() *AuthHandler {
	return &AuthHandler{
		Username: "operator",
		Password: "hunter2",
		Sessions: session.NewManager("test-secret", time.Hour),
	}
}

func TestAuthHandler_LoginForm(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/login", nil)

	newAuthHandler().Login(rec, req)
	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="username"`) || !strings.Contains(body, `name="password"`) {
		t.Errorf("expected login form fields, got %q", body)
	}
}

func TestAuthHandler_LoginPost(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		expectedCode int
		wantCookie   bool
	}{
		{
			name:         "wrong username",
			username:     "intruder",
			password:     "hunter2",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "wrong password",
			username:     "operator",
			password:     "guess",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "both wrong",
			username:     "intruder",
			password:     "guess",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "empty credentials",
			username:     "",
			password:     "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "correct credentials",
			username:     "operator",
			password:     "hunter2",
			expectedCode: http.StatusSeeOther,
			wantCookie:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"username": {tt.username}, "password": {tt.password}}
			req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			h := newAuthHandler()
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			var sessionCookie *http.Cookie
			for _, c := range res.Cookies() {
				if c.Name == session.CookieName {
					sessionCookie = c
				}
			}

			if tt.wantCookie {
				if sessionCookie == nil {
					t.Fatal("expected a session cookie to be set")
				}
				if !h.Sessions.Verify(sessionCookie.Value) {
					t.Error("expected the session cookie to verify")
				}
			} else if sessionCookie != nil {
				t.Error("expected no session cookie on failed login")
			}
		})
	}
}

func TestAuthHandler_Unauthorized_PlainTextBody(t *testing.T) {
	form := url.Values{"username": {"x"}, "password": {"y"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	newAuthHandler().Login(rec, req)

	if got := strings.TrimSpace(rec.Body.String()); got != "Unauthorized" {
		t.Errorf("expected plain body %q, got %q", "Unauthorized", got)
	}
}
