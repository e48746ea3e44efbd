package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "feed.events.play", Subject(feed.ActionPlay))
	assert.Equal(t, "feed.events.share", Subject(feed.ActionShare))
}

func TestConnect_EmptyURLIsStub(t *testing.T) {
	p, err := Connect(context.Background(), "")
	require.NoError(t, err)
	defer p.Close()

	assert.True(t, p.Stub())
	require.NoError(t, p.Publish(context.Background(), Record{
		Event:      feed.Event{VideoID: "abc", Action: feed.ActionPlay},
		PlaylistID: "pl",
	}))
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), "nats://127.0.0.1:19999")
	assert.Error(t, err)
}

func TestRecord_JSON(t *testing.T) {
	rec := Record{
		Event:      feed.Event{VideoID: "abc", Action: feed.ActionShare},
		PlaylistID: "pl",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "abc", got["video_id"])
	assert.Equal(t, "share", got["action"])
	assert.Equal(t, "pl", got["playlist_id"])
	assert.NotContains(t, got, "viewer_id")
	assert.Equal(t, "2024-01-02T03:04:05Z", got["occurred_at"])
}
