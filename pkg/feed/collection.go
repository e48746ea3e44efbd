package feed

import "sync"

// Collection is the read side of a paged playlist as seen by the Adapter.
type Collection interface {
	Len() int
	At(i int) *Video
	NextPageToken() string
}

// VideoLookup finds a loaded video by its ID.
type VideoLookup interface {
	Lookup(videoID string) (*Video, bool)
}

// Playlist is an ordered, append-only Collection. Safe for concurrent use.
type Playlist struct {
	mu     sync.RWMutex
	id     string
	videos []*Video
	index  map[string]int
	next   string
	loaded bool
}

func NewPlaylist(id string) *Playlist {
	return &Playlist{
		id:    id,
		index: make(map[string]int),
	}
}

func (p *Playlist) ID() string {
	return p.id
}

func (p *Playlist) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.videos)
}

// At returns the i-th video or nil when i is out of range.
func (p *Playlist) At(i int) *Video {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.videos) {
		return nil
	}
	return p.videos[i]
}

func (p *Playlist) NextPageToken() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.next
}

func (p *Playlist) Lookup(videoID string) (*Video, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[videoID]
	if !ok {
		return nil, false
	}
	return p.videos[i], true
}

// Loaded reports whether at least one page has been appended.
func (p *Playlist) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Append adds the page's videos after the ones already loaded and replaces the
// continuation token. Nil videos are skipped.
func (p *Playlist) Append(page Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, v := range page.Videos {
		if v == nil {
			continue
		}
		if _, dup := p.index[v.ID]; !dup && v.ID != "" {
			p.index[v.ID] = len(p.videos)
		}
		p.videos = append(p.videos, v)
	}
	p.next = page.NextPageToken
	p.loaded = true
}
