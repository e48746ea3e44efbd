package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Video struct {
	ID                  pgtype.UUID
	YoutubeID           string
	Title               string
	Description         string
	ThumbnailDefaultUrl string
	ThumbnailMediumUrl  string
	ThumbnailHighUrl    string
	Duration            string
	ViewCount           int64
	LikeCount           int64
	DislikeCount        int64
	PublishedAt         pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

const upsertVideo = `
INSERT INTO videos (
    id, youtube_id, title, description,
    thumbnail_default_url, thumbnail_medium_url, thumbnail_high_url,
    duration, view_count, like_count, dislike_count, published_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (youtube_id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    thumbnail_default_url = EXCLUDED.thumbnail_default_url,
    thumbnail_medium_url = EXCLUDED.thumbnail_medium_url,
    thumbnail_high_url = EXCLUDED.thumbnail_high_url,
    duration = EXCLUDED.duration,
    view_count = EXCLUDED.view_count,
    like_count = EXCLUDED.like_count,
    dislike_count = EXCLUDED.dislike_count,
    published_at = COALESCE(EXCLUDED.published_at, videos.published_at),
    updated_at = now()
RETURNING id, youtube_id, title, description,
    thumbnail_default_url, thumbnail_medium_url, thumbnail_high_url,
    duration, view_count, like_count, dislike_count, published_at, created_at, updated_at
`

type UpsertVideoParams struct {
	ID                  pgtype.UUID
	YoutubeID           string
	Title               string
	Description         string
	ThumbnailDefaultUrl string
	ThumbnailMediumUrl  string
	ThumbnailHighUrl    string
	Duration            string
	ViewCount           int64
	LikeCount           int64
	DislikeCount        int64
	PublishedAt         pgtype.Timestamptz
}

func (q *Queries) UpsertVideo(ctx context.Context, arg *UpsertVideoParams) (*Video, error) {
	row := q.db.QueryRow(ctx, upsertVideo,
		arg.ID,
		arg.YoutubeID,
		arg.Title,
		arg.Description,
		arg.ThumbnailDefaultUrl,
		arg.ThumbnailMediumUrl,
		arg.ThumbnailHighUrl,
		arg.Duration,
		arg.ViewCount,
		arg.LikeCount,
		arg.DislikeCount,
		arg.PublishedAt,
	)
	var i Video
	err := row.Scan(
		&i.ID,
		&i.YoutubeID,
		&i.Title,
		&i.Description,
		&i.ThumbnailDefaultUrl,
		&i.ThumbnailMediumUrl,
		&i.ThumbnailHighUrl,
		&i.Duration,
		&i.ViewCount,
		&i.LikeCount,
		&i.DislikeCount,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const upsertPlaylistItem = `
INSERT INTO playlist_items (playlist_id, position, video_id)
VALUES ($1, $2, $3)
ON CONFLICT (playlist_id, position) DO UPDATE SET video_id = EXCLUDED.video_id
`

type UpsertPlaylistItemParams struct {
	PlaylistID string
	Position   int32
	VideoID    pgtype.UUID
}

func (q *Queries) UpsertPlaylistItem(ctx context.Context, arg *UpsertPlaylistItemParams) error {
	_, err := q.db.Exec(ctx, upsertPlaylistItem, arg.PlaylistID, arg.Position, arg.VideoID)
	return err
}

const nextPlaylistPosition = `
SELECT COALESCE(MAX(position) + 1, 0)::int FROM playlist_items WHERE playlist_id = $1
`

func (q *Queries) NextPlaylistPosition(ctx context.Context, playlistID string) (int32, error) {
	row := q.db.QueryRow(ctx, nextPlaylistPosition, playlistID)
	var next int32
	err := row.Scan(&next)
	return next, err
}

const listPlaylistPage = `
SELECT pi.position, v.id, v.youtube_id, v.title, v.description,
    v.thumbnail_default_url, v.thumbnail_medium_url, v.thumbnail_high_url,
    v.duration, v.view_count, v.like_count, v.dislike_count, v.published_at,
    v.created_at, v.updated_at
FROM playlist_items pi
JOIN videos v ON v.id = pi.video_id
WHERE pi.playlist_id = $1 AND pi.position > $2
ORDER BY pi.position
LIMIT $3
`

type ListPlaylistPageParams struct {
	PlaylistID    string
	AfterPosition int32
	PageLimit     int32
}

type ListPlaylistPageRow struct {
	Position int32
	Video    Video
}

func (q *Queries) ListPlaylistPage(ctx context.Context, arg *ListPlaylistPageParams) ([]*ListPlaylistPageRow, error) {
	rows, err := q.db.Query(ctx, listPlaylistPage, arg.PlaylistID, arg.AfterPosition, arg.PageLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*ListPlaylistPageRow{}
	for rows.Next() {
		var i ListPlaylistPageRow
		if err := rows.Scan(
			&i.Position,
			&i.Video.ID,
			&i.Video.YoutubeID,
			&i.Video.Title,
			&i.Video.Description,
			&i.Video.ThumbnailDefaultUrl,
			&i.Video.ThumbnailMediumUrl,
			&i.Video.ThumbnailHighUrl,
			&i.Video.Duration,
			&i.Video.ViewCount,
			&i.Video.LikeCount,
			&i.Video.DislikeCount,
			&i.Video.PublishedAt,
			&i.Video.CreatedAt,
			&i.Video.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
