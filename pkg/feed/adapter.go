package feed

import (
	"context"
	"sync"

	"thirdcoast.systems/cardfeed/internal/videoid"
	"thirdcoast.systems/cardfeed/pkg/utils/format"
)

// LastItemListener is told when the final loaded slot is bound and more pages exist.
type LastItemListener interface {
	OnLastItem(ctx context.Context, position int, nextPageToken string)
}

// LastItemFunc adapts a function to LastItemListener.
type LastItemFunc func(ctx context.Context, position int, nextPageToken string)

func (f LastItemFunc) OnLastItem(ctx context.Context, position int, nextPageToken string) {
	f(ctx, position, nextPageToken)
}

// ImageLoader starts loading an image. It must not block.
type ImageLoader interface {
	Load(url, placeholder string)
}

// Options configures an Adapter. Zero values fall back to defaults.
type Options struct {
	Placement   Placement
	Listener    LastItemListener
	Images      ImageLoader
	Placeholder string
	FormatCount func(uint64) string
}

// Adapter maps display slots onto a Collection.
type Adapter struct {
	videos      Collection
	placement   Placement
	listener    LastItemListener
	images      ImageLoader
	placeholder string
	formatCount func(uint64) string

	mu       sync.Mutex
	notified map[string]struct{}
}

func NewAdapter(videos Collection, opts Options) *Adapter {
	a := &Adapter{
		videos:      videos,
		placement:   opts.Placement,
		listener:    opts.Listener,
		images:      opts.Images,
		placeholder: opts.Placeholder,
		formatCount: opts.FormatCount,
		notified:    make(map[string]struct{}),
	}
	if a.placement == nil {
		a.placement = DefaultPlacement()
	}
	if a.formatCount == nil {
		a.formatCount = format.Count
	}
	return a
}

// ItemCount is the number of display slots: loaded videos plus reserved ad slots.
func (a *Adapter) ItemCount() int {
	return a.videos.Len() + a.placement.Reserved()
}

// Kind returns the view type for a slot.
func (a *Adapter) Kind(position int) SlotKind {
	return a.placement.Kind(position)
}

// ContentIndex maps a content slot to its index in the collection.
func (a *Adapter) ContentIndex(position int) int {
	return position - a.placement.AdsBefore(position)
}

// Begin starts a binding pass. Last-item notifications raised while binding
// are held until End.
func (a *Adapter) Begin() *Pass {
	return &Pass{adapter: a}
}

func (a *Adapter) card(position int, v *Video) *Card {
	thumb := v.ThumbnailURL()
	return &Card{
		Position:     position,
		VideoID:      v.ID,
		Title:        v.Snippet.Title,
		Description:  v.Snippet.Description,
		ThumbnailURL: thumb,
		Placeholder:  a.placeholder,
		Duration:     format.ISODuration(v.ContentDetails.Duration),
		Views:        a.formatCount(v.Statistics.ViewCount),
		Likes:        a.formatCount(v.Statistics.LikeCount),
		Dislikes:     a.formatCount(v.Statistics.DislikeCount),
		WatchURL:     videoid.WatchURL(v.ID),
		Play:         Event{VideoID: v.ID, Action: ActionPlay},
		Share:        Event{VideoID: v.ID, Action: ActionShare},
	}
}

// claim marks token as notified and reports whether it was new.
func (a *Adapter) claim(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.notified[token]; ok {
		return false
	}
	a.notified[token] = struct{}{}
	return true
}

func (a *Adapter) alreadyNotified(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.notified[token]
	return ok
}
