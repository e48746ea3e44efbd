package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/araddon/dateparse"
	"thirdcoast.systems/cardfeed/internal/videoid"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

// listing is the envelope of a videos.list response.
type listing struct {
	Items []json.RawMessage `json:"items"`
}

type publishedAt struct {
	Snippet struct {
		PublishedAt string `json:"publishedAt"`
	} `json:"snippet"`
}

// parseListing decodes a videos.list response in item order. Items without a
// valid video ID are skipped.
func parseListing(r io.Reader) ([]*feed.Video, error) {
	var l listing
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	videos := make([]*feed.Video, 0, len(l.Items))
	for i, raw := range l.Items {
		var v feed.Video
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		v.ID = strings.TrimSpace(v.ID)
		if !videoid.IsVideoID(v.ID) {
			slog.Warn("skipping item without a video id", "index", i, "id", v.ID)
			continue
		}

		var p publishedAt
		if err := json.Unmarshal(raw, &p); err == nil && p.Snippet.PublishedAt != "" {
			if t, err := dateparse.ParseAny(p.Snippet.PublishedAt); err == nil {
				v.Snippet.PublishedAt = t.UTC()
			} else {
				slog.Warn("unparseable publishedAt", "video_id", v.ID, "value", p.Snippet.PublishedAt)
			}
		}
		videos = append(videos, &v)
	}
	return videos, nil
}
