package thumbs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/ok.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpegbytes"))
		case "/text":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("nope"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func hostOf(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Hostname()
}

func TestKey(t *testing.T) {
	k := Key("https://i.ytimg.com/vi/x/hqdefault.jpg")
	assert.Len(t, k, len("thumb:")+64)
	assert.Equal(t, k, Key("https://i.ytimg.com/vi/x/hqdefault.jpg"))
	assert.NotEqual(t, k, Key("https://i.ytimg.com/vi/y/hqdefault.jpg"))
}

func TestAllowed(t *testing.T) {
	p := NewPrefetcher(Config{AllowedHosts: []string{"i.ytimg.com", " IMG.youtube.com "}})

	assert.True(t, p.Allowed("https://i.ytimg.com/vi/a/hq.jpg"))
	assert.True(t, p.Allowed("http://img.youtube.com/vi/a/0.jpg"))
	assert.False(t, p.Allowed("https://evil.example.com/a.jpg"))
	assert.False(t, p.Allowed("ftp://i.ytimg.com/a.jpg"))
	assert.False(t, p.Allowed("::"))
}

func TestFetch_StoresImage(t *testing.T) {
	var hits atomic.Int32
	srv := newImageServer(t, &hits)
	cache := NewMemoryCache()
	p := NewPrefetcher(Config{Cache: cache, AllowedHosts: []string{hostOf(t, srv.URL)}, Client: srv.Client()})

	src := srv.URL + "/ok.jpg"
	require.NoError(t, p.Fetch(context.Background(), src))

	img, ok := p.Cached(src)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, []byte("jpegbytes"), img.Data)

	// Second fetch is served from cache.
	require.NoError(t, p.Fetch(context.Background(), src))
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_Errors(t *testing.T) {
	var hits atomic.Int32
	srv := newImageServer(t, &hits)
	p := NewPrefetcher(Config{AllowedHosts: []string{hostOf(t, srv.URL)}, Client: srv.Client()})

	assert.ErrorIs(t, p.Fetch(context.Background(), srv.URL+"/text"), ErrNotImage)
	assert.Error(t, p.Fetch(context.Background(), srv.URL+"/missing.jpg"))
	assert.ErrorIs(t, p.Fetch(context.Background(), "https://elsewhere.example/a.jpg"), ErrHostNotAllowed)
}

func TestLoad_PrefetchesInBackground(t *testing.T) {
	var hits atomic.Int32
	srv := newImageServer(t, &hits)
	p := NewPrefetcher(Config{AllowedHosts: []string{hostOf(t, srv.URL)}, Client: srv.Client(), Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	t.Cleanup(func() {
		cancel()
		p.Wait()
	})

	src := srv.URL + "/ok.jpg"
	p.Load(src, "/static/video-placeholder.svg")

	require.Eventually(t, func() bool {
		_, ok := p.Cached(src)
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoad_DropsWhenQueueFull(t *testing.T) {
	p := NewPrefetcher(Config{AllowedHosts: []string{"i.ytimg.com"}, QueueSize: 1})

	p.Load("https://i.ytimg.com/a.jpg", "")
	p.Load("https://i.ytimg.com/b.jpg", "")
	p.Load("https://evil.example/c.jpg", "")

	assert.Len(t, p.queue, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Len(t, p.inflight, 1)
}
