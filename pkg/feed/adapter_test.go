package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_ItemCount(t *testing.T) {
	for n := 0; n <= 12; n++ {
		a := NewAdapter(testPlaylist(n, ""), Options{})
		require.Equal(t, n+2, a.ItemCount(), "collection size %d", n)
	}
}

func TestAdapter_ContentIndex(t *testing.T) {
	a := NewAdapter(testPlaylist(10, ""), Options{})
	cases := map[int]int{1: 0, 2: 1, 5: 4, 7: 5, 11: 9}
	for pos, want := range cases {
		require.Equal(t, want, a.ContentIndex(pos), "position %d", pos)
	}
}

func TestPass_BindsEveryVideoOnce(t *testing.T) {
	const n = 10
	a := NewAdapter(testPlaylist(n, ""), Options{})
	pass := a.Begin()
	defer pass.End(context.Background())

	seen := map[string]int{}
	ads := 0
	for pos := 0; pos < a.ItemCount(); pos++ {
		slot, ok := pass.Bind(context.Background(), pos)
		require.True(t, ok, "position %d", pos)
		require.Equal(t, pos, slot.Position)
		if slot.Kind == SlotAd {
			require.Nil(t, slot.Card)
			ads++
			continue
		}
		require.NotNil(t, slot.Card)
		seen[slot.Card.VideoID]++
	}
	require.Equal(t, 2, ads)
	require.Len(t, seen, n)
	for id, count := range seen {
		require.Equal(t, 1, count, id)
	}
}

func TestPass_BindIsOrderIndependent(t *testing.T) {
	a := NewAdapter(testPlaylist(9, ""), Options{})
	ctx := context.Background()

	forward := map[int]string{}
	pass := a.Begin()
	for pos := 0; pos < a.ItemCount(); pos++ {
		if slot, ok := pass.Bind(ctx, pos); ok && slot.Card != nil {
			forward[pos] = slot.Card.VideoID
		}
	}
	pass.End(ctx)

	// Scrolling back up and rebinding a recycled view must not shift anything.
	pass = a.Begin()
	for pos := a.ItemCount() - 1; pos >= 0; pos-- {
		if slot, ok := pass.Bind(ctx, pos); ok && slot.Card != nil {
			require.Equal(t, forward[pos], slot.Card.VideoID, "position %d", pos)
		}
	}
	slot, ok := pass.Bind(ctx, 3)
	require.True(t, ok)
	require.Equal(t, forward[3], slot.Card.VideoID)
	pass.End(ctx)
}

func TestPass_CardFields(t *testing.T) {
	images := &recordingImages{}
	a := NewAdapter(testPlaylist(3, ""), Options{Images: images, Placeholder: "/static/placeholder.svg"})
	pass := a.Begin()
	slot, ok := pass.Bind(context.Background(), 1)
	pass.End(context.Background())
	require.True(t, ok)

	c := slot.Card
	require.NotNil(t, c)
	assert.Equal(t, "vid00000000", c.VideoID)
	assert.Equal(t, "Video 0", c.Title)
	assert.Equal(t, "Description 0", c.Description)
	assert.Equal(t, "https://i.ytimg.com/vi/vid00000000/hqdefault.jpg", c.ThumbnailURL)
	assert.Equal(t, "/static/placeholder.svg", c.Placeholder)
	assert.Equal(t, "4:13", c.Duration)
	assert.Equal(t, "1,234,567", c.Views)
	assert.Equal(t, "4,321", c.Likes)
	assert.Equal(t, "12", c.Dislikes)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid00000000", c.WatchURL)
	assert.Equal(t, Event{VideoID: "vid00000000", Action: ActionPlay}, c.Play)
	assert.Equal(t, Event{VideoID: "vid00000000", Action: ActionShare}, c.Share)

	require.Equal(t, []imageLoad{{URL: c.ThumbnailURL, Placeholder: "/static/placeholder.svg"}}, images.loads)
}

func TestPass_CustomCountFormatter(t *testing.T) {
	a := NewAdapter(testPlaylist(1, ""), Options{FormatCount: func(uint64) string { return "n" }})
	slot, ok := a.Begin().Bind(context.Background(), 1)
	require.True(t, ok)
	require.Equal(t, "n", slot.Card.Views)
}

func TestPass_SkipsContentSlotsWithoutVideo(t *testing.T) {
	images := &recordingImages{}

	empty := NewAdapter(testPlaylist(0, "next"), Options{Images: images, Listener: &recordingListener{}})
	pass := empty.Begin()
	slot, ok := pass.Bind(context.Background(), 1)
	require.False(t, ok)
	require.Equal(t, SlotContent, slot.Kind)
	require.Nil(t, slot.Card)
	pass.End(context.Background())

	// Three videos: slots 1..3 are content, slot 4 would be index 3.
	a := NewAdapter(testPlaylist(3, ""), Options{Images: images})
	pass = a.Begin()
	_, ok = pass.Bind(context.Background(), 4)
	require.False(t, ok)
	_, ok = pass.Bind(context.Background(), -5)
	require.False(t, ok)
	pass.End(context.Background())

	require.Empty(t, images.loads)
}

func TestPass_AdSlotStillBindsOnEmptyCollection(t *testing.T) {
	a := NewAdapter(testPlaylist(0, ""), Options{})
	slot, ok := a.Begin().Bind(context.Background(), 0)
	require.True(t, ok)
	require.Equal(t, SlotAd, slot.Kind)
}

func TestPass_LastItemFiresOnceAfterPass(t *testing.T) {
	const n = 8
	listener := &recordingListener{}
	a := NewAdapter(testPlaylist(n, "token-2"), Options{Listener: listener})
	ctx := context.Background()

	pass := a.Begin()
	for pos := 0; pos < a.ItemCount(); pos++ {
		pass.Bind(ctx, pos)
	}
	// Deferred until the pass completes.
	require.Empty(t, listener.Calls())
	pass.End(ctx)
	require.Equal(t, []lastItemCall{{Position: n - 1, Token: "token-2"}}, listener.Calls())

	// Rebinding the same slot, in this pass or a later one, does not refire.
	pass = a.Begin()
	pass.Bind(ctx, n-1)
	pass.Bind(ctx, n-1)
	pass.End(ctx)
	require.Len(t, listener.Calls(), 1)
}

func TestPass_LastItemOnlyAtSizeMinusOne(t *testing.T) {
	listener := &recordingListener{}
	a := NewAdapter(testPlaylist(8, "token-2"), Options{Listener: listener})
	ctx := context.Background()

	pass := a.Begin()
	for _, pos := range []int{1, 2, 3, 8, 9} {
		pass.Bind(ctx, pos)
	}
	pass.End(ctx)
	require.Empty(t, listener.Calls())
}

func TestPass_LastItemNeverFiresWithoutToken(t *testing.T) {
	listener := &recordingListener{}
	a := NewAdapter(testPlaylist(8, ""), Options{Listener: listener})
	ctx := context.Background()

	pass := a.Begin()
	for pos := 0; pos < a.ItemCount(); pos++ {
		pass.Bind(ctx, pos)
	}
	pass.End(ctx)
	require.Empty(t, listener.Calls())
}

func TestPass_LastItemFiresAgainForNextToken(t *testing.T) {
	listener := &recordingListener{}
	pl := testPlaylist(8, "token-2")
	a := NewAdapter(pl, Options{Listener: listener})
	ctx := context.Background()

	pass := a.Begin()
	pass.Bind(ctx, 7)
	pass.End(ctx)

	more := make([]*Video, 0, 4)
	for i := 8; i < 12; i++ {
		more = append(more, testVideo(i))
	}
	pl.Append(Page{Videos: more, NextPageToken: "token-3"})

	pass = a.Begin()
	pass.Bind(ctx, 11)
	pass.End(ctx)

	require.Equal(t, []lastItemCall{
		{Position: 7, Token: "token-2"},
		{Position: 11, Token: "token-3"},
	}, listener.Calls())
}

func TestPass_EndIsIdempotent(t *testing.T) {
	listener := &recordingListener{}
	a := NewAdapter(testPlaylist(4, "t"), Options{Listener: listener})
	ctx := context.Background()

	pass := a.Begin()
	pass.Bind(ctx, 3)
	pass.End(ctx)
	pass.End(ctx)
	require.Len(t, listener.Calls(), 1)
}

func TestLastItemFunc(t *testing.T) {
	var got lastItemCall
	var l LastItemListener = LastItemFunc(func(_ context.Context, position int, token string) {
		got = lastItemCall{Position: position, Token: token}
	})
	l.OnLastItem(context.Background(), 4, "abc")
	require.Equal(t, lastItemCall{Position: 4, Token: "abc"}, got)
}
