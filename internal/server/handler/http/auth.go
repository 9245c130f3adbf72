// Package http provides the HTTP handlers and routing for the web
// front-end: operator login and the card review endpoints.
package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/sidious38/simpleAnkiWeb/internal/session"
)

// loginForm is the minimal login page served on GET /login.
const loginForm = `<form method="post">
    <p><input name="username"></p>
    <p><input type="password" name="password"></p>
    <p><input type="submit" value="Login"></p>
</form>`

// AuthHandler handles operator login against the single configured
// credential pair.
type AuthHandler struct {
	// Username and Password are the expected operator credentials.
	Username string
	Password string
	// Sessions issues session cookies on successful login.
	Sessions *session.Manager
}

// Login handles GET and POST /login.
// GET renders the login form. POST compares the submitted credentials
// against the configured pair in constant time; on match it issues a fresh
// session cookie and redirects to the index, otherwise it responds
// 401 "Unauthorized" as plain text.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(loginForm))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(r.PostFormValue("username")), []byte(h.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(r.PostFormValue("password")), []byte(h.Password)) == 1

	if !userOK || !passOK {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// A fresh token replaces whatever session the client held before.
	h.Sessions.SetCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
