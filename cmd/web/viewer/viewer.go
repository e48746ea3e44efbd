// Package viewer identifies anonymous feed viewers with a signed cookie.
package viewer

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "cardfeed_viewer"
	ViewerIDKey = "viewer_id"
	CreatedKey  = "created_at"
)

var ErrNoViewer = errors.New("no viewer")

type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	if secret == "" {
		slog.Warn("SESSION_SECRET not set, viewer cookies will not survive a restart")
		secret = generateSecret()
	}
	return &Manager{
		store: sessions.NewCookieStore([]byte(secret)),
	}
}

func generateSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// Ensure returns the viewer ID for the request, issuing a new cookie when the
// request has none or it cannot be decoded.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, err := m.ViewerID(r); err == nil {
		return id, nil
	}

	session, _ := m.store.Get(r, SessionName)
	id := uuid.NewString()
	session.Values[ViewerIDKey] = id
	session.Values[CreatedKey] = time.Now().Unix()

	isHTTPS := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS,
	}

	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}

// ViewerID reads the viewer ID without issuing a cookie.
func (m *Manager) ViewerID(r *http.Request) (string, error) {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		_, cookieErr := r.Cookie(SessionName)
		if cookieErr == nil {
			slog.Warn("failed to decode viewer cookie", "error", err, "host", r.Host)
		}
		return "", err
	}

	val, ok := session.Values[ViewerIDKey]
	if !ok {
		return "", ErrNoViewer
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return "", ErrNoViewer
	}
	return id, nil
}

// CreatedAt returns when the viewer cookie was issued, or the zero time.
func (m *Manager) CreatedAt(r *http.Request) time.Time {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return time.Time{}
	}
	unix, ok := session.Values[CreatedKey].(int64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
