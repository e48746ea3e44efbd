package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/cardfeed/internal/videoid"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

func row(pos int32, youtubeID string) *ListPlaylistPageRow {
	return &ListPlaylistPageRow{Position: pos, Video: Video{YoutubeID: youtubeID, Title: youtubeID}}
}

func TestPageFromRows_MoreAvailable(t *testing.T) {
	rows := []*ListPlaylistPageRow{row(0, "a"), row(1, "b"), row(2, "c")}
	page := pageFromRows(rows, 2)
	require.Len(t, page.Videos, 2)
	require.Equal(t, "b", page.Videos[1].ID)

	after, err := DecodePageToken(page.NextPageToken)
	require.NoError(t, err)
	require.Equal(t, int32(1), after)
}

func TestPageFromRows_LastPage(t *testing.T) {
	page := pageFromRows([]*ListPlaylistPageRow{row(4, "e")}, 2)
	require.Len(t, page.Videos, 1)
	require.Empty(t, page.NextPageToken)

	page = pageFromRows(nil, 2)
	require.Empty(t, page.Videos)
	require.Empty(t, page.NextPageToken)
}

func TestVideoMapping_RoundTrip(t *testing.T) {
	published := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	in := &feed.Video{
		ID: "ggLajT7aMMk",
		Snippet: feed.Snippet{
			Title:       "Title",
			Description: "Desc",
			PublishedAt: published,
			Thumbnails: feed.Thumbnails{
				Default: feed.Thumbnail{URL: "d"},
				Medium:  feed.Thumbnail{URL: "m"},
				High:    feed.Thumbnail{URL: "h"},
			},
		},
		ContentDetails: feed.ContentDetails{Duration: "PT1M5S"},
		Statistics:     feed.Statistics{ViewCount: 10, LikeCount: 2, DislikeCount: 1},
	}

	p := VideoParams(in)
	require.True(t, p.ID.Valid)
	require.Equal(t, [16]byte(videoid.VideoUUID("ggLajT7aMMk")), p.ID.Bytes)
	require.True(t, p.PublishedAt.Valid)

	out := VideoToFeed(&Video{
		ID:                  p.ID,
		YoutubeID:           p.YoutubeID,
		Title:               p.Title,
		Description:         p.Description,
		ThumbnailDefaultUrl: p.ThumbnailDefaultUrl,
		ThumbnailMediumUrl:  p.ThumbnailMediumUrl,
		ThumbnailHighUrl:    p.ThumbnailHighUrl,
		Duration:            p.Duration,
		ViewCount:           p.ViewCount,
		LikeCount:           p.LikeCount,
		DislikeCount:        p.DislikeCount,
		PublishedAt:         p.PublishedAt,
	})
	require.Equal(t, in, out)
}

func TestVideoParams_ZeroPublishedIsNull(t *testing.T) {
	p := VideoParams(&feed.Video{ID: "x"})
	require.False(t, p.PublishedAt.Valid)
}

func TestCounts(t *testing.T) {
	require.Equal(t, int64(1<<63-1), clampCount(1<<64-1))
	require.Equal(t, uint64(0), unsignedCount(-3))
}
