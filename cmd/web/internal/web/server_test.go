package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/cardfeed/cmd/web/handlers/api/feed_api"
	"thirdcoast.systems/cardfeed/cmd/web/viewer"
	"thirdcoast.systems/cardfeed/internal/events"
	"thirdcoast.systems/cardfeed/internal/thumbs"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

type emptyPages struct{}

func (emptyPages) ListPage(ctx context.Context, playlistID, token string, limit int) (feed.Page, error) {
	return feed.Page{}, nil
}

func newTestWebserver(t *testing.T) *Webserver {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pub, err := events.Connect(ctx, "")
	require.NoError(t, err)

	f := &feed_api.Feed{
		Registry:    feed.NewRegistry(time.Minute),
		Pages:       emptyPages{},
		PageSize:    20,
		Placeholder: "/static/video-placeholder.svg",
	}
	s, err := NewWebserver(ctx, f, viewer.NewManager("test-secret"), thumbs.NewPrefetcher(thumbs.Config{}), pub)
	require.NoError(t, err)
	return s
}

func TestWebserver_Routes(t *testing.T) {
	s := newTestWebserver(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", http.MethodGet, "/healthz", http.StatusOK},
		{"placeholder", http.MethodGet, "/static/video-placeholder.svg", http.StatusOK},
		{"missing static", http.MethodGet, "/static/nope.js", http.StatusNotFound},
		{"playlist page", http.MethodGet, "/playlists/PL1", http.StatusOK},
		{"slots", http.MethodGet, "/api/playlists/PL1/slots", http.StatusOK},
		{"event without session", http.MethodPost, "/api/playlists/PL1/events?video=a&action=play", http.StatusNotFound},
		{"thumbnail placeholder", http.MethodGet, "/api/thumbnails", http.StatusFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			require.Equal(t, tt.status, rec.Code)
		})
	}
}
