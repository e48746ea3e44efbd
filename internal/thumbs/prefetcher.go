package thumbs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const maxImageBytes = 4 << 20

var (
	ErrHostNotAllowed = errors.New("thumbnail host not allowed")
	ErrNotImage       = errors.New("thumbnail response is not an image")
)

// Config configures a Prefetcher.
type Config struct {
	Cache        Cache
	AllowedHosts []string
	Client       *http.Client
	Workers      int
	QueueSize    int
}

// Prefetcher fetches thumbnails in the background and stores them in a Cache.
// It satisfies feed.ImageLoader.
type Prefetcher struct {
	cache   Cache
	allowed map[string]struct{}
	client  *http.Client
	workers int

	queue chan string

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

func NewPrefetcher(cfg Config) *Prefetcher {
	if cfg.Cache == nil {
		cfg.Cache = NewMemoryCache()
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedHosts))
	for _, h := range cfg.AllowedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			allowed[h] = struct{}{}
		}
	}
	return &Prefetcher{
		cache:    cfg.Cache,
		allowed:  allowed,
		client:   cfg.Client,
		workers:  cfg.Workers,
		queue:    make(chan string, cfg.QueueSize),
		inflight: make(map[string]struct{}),
	}
}

// Start runs the fetch workers until ctx is cancelled.
func (p *Prefetcher) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.work(ctx)
		}()
	}
}

// Wait blocks until all workers have exited.
func (p *Prefetcher) Wait() {
	p.wg.Wait()
}

// Load queues src for prefetch. It never blocks; when the queue is full the
// request is dropped and the browser falls back to the source URL.
func (p *Prefetcher) Load(src, placeholder string) {
	if src == "" || !p.Allowed(src) {
		return
	}

	p.mu.Lock()
	if _, ok := p.inflight[src]; ok {
		p.mu.Unlock()
		return
	}
	p.inflight[src] = struct{}{}
	p.mu.Unlock()

	select {
	case p.queue <- src:
	default:
		p.done(src)
		slog.Debug("thumbnail queue full", "src", src)
	}
}

// Allowed reports whether src points at an allowed thumbnail host.
func (p *Prefetcher) Allowed(src string) bool {
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	_, ok := p.allowed[strings.ToLower(u.Hostname())]
	return ok
}

// Cached returns the cached image for src, if any.
func (p *Prefetcher) Cached(src string) (*Image, bool) {
	img, ok, err := p.cache.Get(src)
	if err != nil {
		slog.Warn("thumbnail cache read failed", "src", src, "error", err)
		return nil, false
	}
	return img, ok
}

func (p *Prefetcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case src := <-p.queue:
			if err := p.Fetch(ctx, src); err != nil {
				slog.Warn("thumbnail prefetch failed", "src", src, "error", err)
			}
			p.done(src)
		}
	}
}

func (p *Prefetcher) done(src string) {
	p.mu.Lock()
	delete(p.inflight, src)
	p.mu.Unlock()
}

// Fetch downloads src and stores it in the cache unless it is already cached.
func (p *Prefetcher) Fetch(ctx context.Context, src string) error {
	if !p.Allowed(src) {
		return ErrHostNotAllowed
	}
	if _, ok, err := p.cache.Get(src); err == nil && ok {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxImageBytes {
		return fmt.Errorf("thumbnail exceeds %d bytes", maxImageBytes)
	}

	if err := p.cache.Set(src, &Image{ContentType: contentType, Data: data}); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
