// package feed_api streams bound card slots and handles card taps.
package feed_api

import (
	"context"

	"thirdcoast.systems/cardfeed/internal/events"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

// PageSource loads one page of a playlist. An empty token is the first page.
type PageSource interface {
	ListPage(ctx context.Context, playlistID, token string, limit int) (feed.Page, error)
}

// Publisher records dispatched card events.
type Publisher interface {
	Publish(ctx context.Context, rec events.Record) error
}

// Feed holds what the feed handlers share across requests.
type Feed struct {
	Registry    *feed.Registry
	Pages       PageSource
	PageSize    int
	Placement   feed.Placement
	Images      feed.ImageLoader
	Placeholder string
	FormatCount func(uint64) string
}

// Session returns the viewer's session for a playlist, creating its adapter
// with a Pager as the last-item listener.
func (f *Feed) Session(viewerID, playlistID string) *feed.Session {
	return f.Registry.Get(viewerID, playlistID, func(pl *feed.Playlist) *feed.Adapter {
		return feed.NewAdapter(pl, feed.Options{
			Placement:   f.Placement,
			Listener:    NewPager(f.Pages, pl, f.PageSize),
			Images:      f.Images,
			Placeholder: f.Placeholder,
			FormatCount: f.FormatCount,
		})
	})
}

func (f *Feed) firstPage(playlistID string) func(context.Context) (feed.Page, error) {
	return func(ctx context.Context) (feed.Page, error) {
		return f.Pages.ListPage(ctx, playlistID, "", f.PageSize)
	}
}
