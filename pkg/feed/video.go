// Package feed binds a paged playlist of videos to display slots, interleaving
// ad placeholders and dispatching card actions as event records.
package feed

import "time"

// Video mirrors the parts of the YouTube Data API videos resource that a card shows.
type Video struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	ContentDetails ContentDetails `json:"contentDetails"`
	Statistics     Statistics     `json:"statistics"`
}

type Snippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublishedAt time.Time  `json:"-"`
	Thumbnails  Thumbnails `json:"thumbnails"`
}

type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
	High    Thumbnail `json:"high"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ContentDetails carries the machine-readable duration ("PT4M13S").
type ContentDetails struct {
	Duration string `json:"duration"`
}

// Statistics are sent as decimal strings by the API.
type Statistics struct {
	ViewCount    uint64 `json:"viewCount,string,omitempty"`
	LikeCount    uint64 `json:"likeCount,string,omitempty"`
	DislikeCount uint64 `json:"dislikeCount,string,omitempty"`
}

// ThumbnailURL returns the high resolution thumbnail, falling back to smaller ones.
func (v *Video) ThumbnailURL() string {
	t := v.Snippet.Thumbnails
	switch {
	case t.High.URL != "":
		return t.High.URL
	case t.Medium.URL != "":
		return t.Medium.URL
	default:
		return t.Default.URL
	}
}

// Page is one chunk of a playlist. A non-empty NextPageToken means more pages exist.
type Page struct {
	Videos        []*Video
	NextPageToken string
}
