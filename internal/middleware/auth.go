// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"net/http"

	"github.com/sidious38/simpleAnkiWeb/internal/session"
)

// RequireLogin is a middleware that enforces session-cookie authentication.
//
// The /login endpoint is excluded so the operator can obtain a session in
// the first place. Any other request without a valid session cookie is
// redirected (not errored) to the login page.
func RequireLogin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/login" {
				next.ServeHTTP(w, r)
				return
			}
			if !sessions.LoggedIn(r) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
