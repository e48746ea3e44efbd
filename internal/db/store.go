package db

import (
	"context"
	"fmt"

	"thirdcoast.systems/cardfeed/internal/videoid"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

// PlaylistStore reads and writes playlists as feed pages.
type PlaylistStore struct {
	dbc *DatabaseConnection
}

func NewPlaylistStore(dbc *DatabaseConnection) *PlaylistStore {
	return &PlaylistStore{dbc: dbc}
}

// ListPage returns up to limit videos following token. The returned page has
// an empty NextPageToken when nothing follows it.
func (s *PlaylistStore) ListPage(ctx context.Context, playlistID, token string, limit int) (feed.Page, error) {
	after, err := DecodePageToken(token)
	if err != nil {
		return feed.Page{}, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.dbc.Queries(ctx).ListPlaylistPage(ctx, &ListPlaylistPageParams{
		PlaylistID:    playlistID,
		AfterPosition: after,
		PageLimit:     int32(limit + 1),
	})
	if err != nil {
		return feed.Page{}, fmt.Errorf("list playlist page: %w", err)
	}
	return pageFromRows(rows, limit), nil
}

func pageFromRows(rows []*ListPlaylistPageRow, limit int) feed.Page {
	page := feed.Page{}
	more := len(rows) > limit
	if more {
		rows = rows[:limit]
	}
	page.Videos = make([]*feed.Video, 0, len(rows))
	for _, row := range rows {
		page.Videos = append(page.Videos, VideoToFeed(&row.Video))
	}
	if more && len(rows) > 0 {
		page.NextPageToken = EncodePageToken(rows[len(rows)-1].Position)
	}
	return page
}

// AppendVideos upserts videos and adds them to the end of the playlist in one transaction.
func (s *PlaylistStore) AppendVideos(ctx context.Context, playlistID string, videos []*feed.Video) (int, error) {
	q, tx, err := s.dbc.NewWithTX(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	next, err := q.NextPlaylistPosition(ctx, playlistID)
	if err != nil {
		return 0, fmt.Errorf("next playlist position: %w", err)
	}

	added := 0
	for _, v := range videos {
		if v == nil || v.ID == "" {
			continue
		}
		row, err := q.UpsertVideo(ctx, VideoParams(v))
		if err != nil {
			return 0, fmt.Errorf("upsert video %s: %w", v.ID, err)
		}
		if err := q.UpsertPlaylistItem(ctx, &UpsertPlaylistItemParams{
			PlaylistID: playlistID,
			Position:   next,
			VideoID:    row.ID,
		}); err != nil {
			return 0, fmt.Errorf("add %s to playlist: %w", v.ID, err)
		}
		next++
		added++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return added, nil
}

// VideoParams maps a feed video onto an upsert.
func VideoParams(v *feed.Video) *UpsertVideoParams {
	id := videoid.VideoUUID(v.ID)
	return &UpsertVideoParams{
		ID:                  pgUUID(id),
		YoutubeID:           v.ID,
		Title:               v.Snippet.Title,
		Description:         v.Snippet.Description,
		ThumbnailDefaultUrl: v.Snippet.Thumbnails.Default.URL,
		ThumbnailMediumUrl:  v.Snippet.Thumbnails.Medium.URL,
		ThumbnailHighUrl:    v.Snippet.Thumbnails.High.URL,
		Duration:            v.ContentDetails.Duration,
		ViewCount:           clampCount(v.Statistics.ViewCount),
		LikeCount:           clampCount(v.Statistics.LikeCount),
		DislikeCount:        clampCount(v.Statistics.DislikeCount),
		PublishedAt:         Timestamptz(v.Snippet.PublishedAt),
	}
}

// VideoToFeed maps a stored video onto the feed model.
func VideoToFeed(v *Video) *feed.Video {
	out := &feed.Video{
		ID: v.YoutubeID,
		Snippet: feed.Snippet{
			Title:       v.Title,
			Description: v.Description,
			Thumbnails: feed.Thumbnails{
				Default: feed.Thumbnail{URL: v.ThumbnailDefaultUrl},
				Medium:  feed.Thumbnail{URL: v.ThumbnailMediumUrl},
				High:    feed.Thumbnail{URL: v.ThumbnailHighUrl},
			},
		},
		ContentDetails: feed.ContentDetails{Duration: v.Duration},
		Statistics: feed.Statistics{
			ViewCount:    unsignedCount(v.ViewCount),
			LikeCount:    unsignedCount(v.LikeCount),
			DislikeCount: unsignedCount(v.DislikeCount),
		},
	}
	if t := NilTimePtr(v.PublishedAt); t != nil {
		out.Snippet.PublishedAt = *t
	}
	return out
}
