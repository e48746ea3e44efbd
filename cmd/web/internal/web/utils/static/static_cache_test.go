package static

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"testing/fstest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	assets "thirdcoast.systems/cardfeed/static"
)

func TestNewStaticCache_BuildsEntries(t *testing.T) {
	cache, err := NewStaticCache(assets.FS)
	require.NoError(t, err)
	require.NotNil(t, cache)
	require.NotEmpty(t, cache.entries)

	ci, ok := cache.entries["video-placeholder.svg"]
	require.True(t, ok, "expected video-placeholder.svg to be embedded")

	require.NotEmpty(t, ci.ETag)
	require.True(t, regexp.MustCompile(`^\"[0-9a-f]{64}\"$`).MatchString(ci.ETag))
	require.True(t, ci.Size > 0)
	require.False(t, ci.LastModified.IsZero())
}

func TestServeStaticFile(t *testing.T) {
	fsys := fstest.MapFS{
		"feed.css": {Data: []byte("body{}"), ModTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	cache, err := NewStaticCache(fsys)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/static/*", cache.ServeStaticFile("/static/"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/feed.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	require.Equal(t, "no-cache, must-revalidate", rec.Header().Get(echo.HeaderCacheControl))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/static/feed.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.js", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
