package feed_api

import (
	"context"
	"log/slog"

	"thirdcoast.systems/cardfeed/pkg/feed"
)

// Pager loads the next page into a playlist when the adapter reports that the
// last loaded item was bound.
type Pager struct {
	pages    PageSource
	playlist *feed.Playlist
	size     int
}

func NewPager(pages PageSource, playlist *feed.Playlist, size int) *Pager {
	return &Pager{pages: pages, playlist: playlist, size: size}
}

// OnLastItem fetches the page for nextPageToken. Failures are logged only; the
// token has already been used so the page is not retried for this session.
func (p *Pager) OnLastItem(ctx context.Context, position int, nextPageToken string) {
	page, err := p.pages.ListPage(ctx, p.playlist.ID(), nextPageToken, p.size)
	if err != nil {
		slog.Error("failed to load next page", "playlist_id", p.playlist.ID(), "position", position, "error", err)
		return
	}
	p.playlist.Append(page)
	slog.Debug("loaded next page", "playlist_id", p.playlist.ID(), "videos", len(page.Videos), "has_more", page.NextPageToken != "")
}
