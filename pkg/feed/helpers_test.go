package feed

import (
	"context"
	"fmt"
	"sync"
)

type lastItemCall struct {
	Position int
	Token    string
}

type recordingListener struct {
	mu    sync.Mutex
	calls []lastItemCall
}

func (l *recordingListener) OnLastItem(_ context.Context, position int, token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, lastItemCall{Position: position, Token: token})
}

func (l *recordingListener) Calls() []lastItemCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]lastItemCall(nil), l.calls...)
}

type imageLoad struct {
	URL         string
	Placeholder string
}

type recordingImages struct {
	loads []imageLoad
}

func (r *recordingImages) Load(url, placeholder string) {
	r.loads = append(r.loads, imageLoad{URL: url, Placeholder: placeholder})
}

func testVideo(i int) *Video {
	id := fmt.Sprintf("vid%08d", i)
	return &Video{
		ID: id,
		Snippet: Snippet{
			Title:       fmt.Sprintf("Video %d", i),
			Description: fmt.Sprintf("Description %d", i),
			Thumbnails: Thumbnails{
				Default: Thumbnail{URL: "https://i.ytimg.com/vi/" + id + "/default.jpg"},
				High:    Thumbnail{URL: "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"},
			},
		},
		ContentDetails: ContentDetails{Duration: "PT4M13S"},
		Statistics:     Statistics{ViewCount: 1234567, LikeCount: 4321, DislikeCount: 12},
	}
}

func testPlaylist(n int, token string) *Playlist {
	pl := NewPlaylist("PL-test")
	videos := make([]*Video, 0, n)
	for i := 0; i < n; i++ {
		videos = append(videos, testVideo(i))
	}
	pl.Append(Page{Videos: videos, NextPageToken: token})
	return pl
}
