package feed

import (
	"context"
	"sync"
	"time"
)

// Session is a viewer's state for one playlist.
type Session struct {
	Playlist *Playlist
	Adapter  *Adapter

	lastSeen time.Time
	loadMu   sync.Mutex
}

// EnsureLoaded appends the first page from load unless one is already present.
// Concurrent callers wait for the first load instead of repeating it.
func (s *Session) EnsureLoaded(ctx context.Context, load func(context.Context) (Page, error)) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.Playlist.Loaded() {
		return nil
	}
	page, err := load(ctx)
	if err != nil {
		return err
	}
	s.Playlist.Append(page)
	return nil
}

// Registry keeps one Session per (viewer, playlist) and expires idle ones.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[registryKey]*Session
	now      func() time.Time
}

type registryKey struct {
	viewer   string
	playlist string
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[registryKey]*Session),
		now:      time.Now,
	}
}

// Get returns the session for viewer and playlist, creating it with newAdapter
// when missing or expired.
func (r *Registry) Get(viewer, playlistID string, newAdapter func(*Playlist) *Adapter) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{viewer: viewer, playlist: playlistID}
	now := r.now()
	if s, ok := r.sessions[key]; ok && (r.ttl <= 0 || now.Sub(s.lastSeen) < r.ttl) {
		s.lastSeen = now
		return s
	}

	pl := NewPlaylist(playlistID)
	s := &Session{
		Playlist: pl,
		Adapter:  newAdapter(pl),
		lastSeen: now,
	}
	r.sessions[key] = s
	return s
}

// Lookup returns an existing, unexpired session.
func (r *Registry) Lookup(viewer, playlistID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[registryKey{viewer: viewer, playlist: playlistID}]
	if !ok {
		return nil, false
	}
	if r.ttl > 0 && r.now().Sub(s.lastSeen) >= r.ttl {
		return nil, false
	}
	return s, true
}

// Sweep drops sessions idle for longer than the TTL and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for k, s := range r.sessions {
		if now.Sub(s.lastSeen) >= r.ttl {
			delete(r.sessions, k)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
