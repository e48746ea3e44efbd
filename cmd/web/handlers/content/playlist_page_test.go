package content

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/cardfeed/cmd/web/viewer"
)

func TestHandlePlaylistPage(t *testing.T) {
	e := echo.New()
	e.GET("/playlists/:id", HandlePlaylistPage(viewer.NewManager("test-secret")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/playlists/PL1?title=Cats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	require.Contains(t, rec.Body.String(), "<title>Cats</title>")
	require.Contains(t, rec.Body.String(), "/api/playlists/PL1/slots")

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == viewer.SessionName {
			found = true
		}
	}
	require.True(t, found)
}
