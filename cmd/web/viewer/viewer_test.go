package viewer

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func viewerCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionName {
			return c
		}
	}
	return nil
}

func TestManager_Ensure_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	rr := httptest.NewRecorder()

	id, err := m.Ensure(rr, req)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	cookie := viewerCookie(t, rr)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Secure)

	req2 := httptest.NewRequest("GET", "http://example.com/", nil)
	req2.AddCookie(cookie)

	got, err := m.ViewerID(req2)
	require.NoError(t, err)
	require.Equal(t, id, got)
	require.WithinDuration(t, time.Now(), m.CreatedAt(req2), 5*time.Second)

	// A known viewer keeps its ID and gets no new cookie.
	rr2 := httptest.NewRecorder()
	again, err := m.Ensure(rr2, req2)
	require.NoError(t, err)
	require.Equal(t, id, again)
	require.Nil(t, viewerCookie(t, rr2))
}

func TestManager_Ensure_SecureDetection(t *testing.T) {
	m := NewManager("test-secret")

	t.Run("tls implies secure", func(t *testing.T) {
		req := httptest.NewRequest("GET", "https://example.com/", nil)
		req.TLS = &tls.ConnectionState{}
		rr := httptest.NewRecorder()

		_, err := m.Ensure(rr, req)
		require.NoError(t, err)
		c := viewerCookie(t, rr)
		require.NotNil(t, c)
		require.True(t, c.Secure)
	})

	t.Run("x-forwarded-proto implies secure", func(t *testing.T) {
		req := httptest.NewRequest("GET", "http://example.com/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()

		_, err := m.Ensure(rr, req)
		require.NoError(t, err)
		c := viewerCookie(t, rr)
		require.NotNil(t, c)
		require.True(t, c.Secure)
	})
}

func TestManager_ViewerID_Missing(t *testing.T) {
	m := NewManager("test-secret")

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	_, err := m.ViewerID(req)
	require.ErrorIs(t, err, ErrNoViewer)
	require.True(t, m.CreatedAt(req).IsZero())
}

func TestManager_ForeignCookieIsReplaced(t *testing.T) {
	issuer := NewManager("secret-a")
	reader := NewManager("secret-b")

	rr := httptest.NewRecorder()
	_, err := issuer.Ensure(rr, httptest.NewRequest("GET", "http://example.com/", nil))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	req.AddCookie(viewerCookie(t, rr))

	_, err = reader.ViewerID(req)
	require.Error(t, err)

	rr2 := httptest.NewRecorder()
	id, err := reader.Ensure(rr2, req)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.NotNil(t, viewerCookie(t, rr2))
}
