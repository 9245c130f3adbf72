// Package session implements signed, client-held login tokens carried in a
// cookie. There is no server-side session store: possession of a validly
// signed, unexpired token is the logged-in marker.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// DefaultTTL is how long an issued token remains valid.
const DefaultTTL = 24 * time.Hour

// Manager issues and verifies signed session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager signing tokens with the given secret.
// A non-positive ttl falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a fresh token: a uuid, an expiry timestamp, and an
// HMAC-SHA256 signature over both, joined with "|".
func (m *Manager) Issue() string {
	id := uuid.NewString()
	expiry := strconv.FormatInt(time.Now().Add(m.ttl).Unix(), 10)
	payload := id + "|" + expiry
	return payload + "|" + m.sign(payload)
}

// Verify reports whether the token carries a valid signature and has not
// expired. The signature comparison is constant-time.
func (m *Manager) Verify(token string) bool {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return false
	}
	payload := parts[0] + "|" + parts[1]

	if !hmac.Equal([]byte(m.sign(payload)), []byte(parts[2])) {
		return false
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return false
	}
	return time.Now().Unix() < expiry
}

// SetCookie writes a fresh session token onto the response. The cookie is
// HttpOnly with SameSite=Lax, matching the upstream front-end's cookie
// settings.
func (m *Manager) SetCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.Issue(),
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoggedIn reports whether the request carries a valid session cookie.
func (m *Manager) LoggedIn(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return m.Verify(cookie.Value)
}

// sign returns the hex HMAC-SHA256 of payload under the manager's secret.
func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
