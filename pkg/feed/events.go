package feed

import (
	"context"
	"errors"
	"fmt"

	"thirdcoast.systems/cardfeed/internal/videoid"
)

var (
	ErrUnknownVideo  = errors.New("feed: unknown video")
	ErrUnknownAction = errors.New("feed: unknown action")
)

// Action is what a viewer did on a card.
type Action string

const (
	ActionPlay  Action = "play"
	ActionShare Action = "share"
)

// ParseAction accepts "play" or "share".
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPlay, ActionShare:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Event is a card action record.
type Event struct {
	VideoID string `json:"video_id"`
	Action  Action `json:"action"`
}

// Navigator opens a watch URL with the platform's default handler.
type Navigator interface {
	Open(ctx context.Context, url string) error
}

// Sharer hands a subject and body to the platform's share chooser.
type Sharer interface {
	Share(ctx context.Context, subject, body string) error
}

// EventHandler consumes card events.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev Event) error
}

// Dispatcher routes card events to a Navigator or a Sharer.
type Dispatcher struct {
	videos    VideoLookup
	navigator Navigator
	sharer    Sharer
}

func NewDispatcher(videos VideoLookup, navigator Navigator, sharer Sharer) *Dispatcher {
	return &Dispatcher{videos: videos, navigator: navigator, sharer: sharer}
}

func (d *Dispatcher) HandleEvent(ctx context.Context, ev Event) error {
	v, ok := d.videos.Lookup(ev.VideoID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVideo, ev.VideoID)
	}
	switch ev.Action {
	case ActionPlay:
		return d.navigator.Open(ctx, videoid.WatchURL(v.ID))
	case ActionShare:
		return d.sharer.Share(ctx, ShareSubject(v.Snippet.Title), videoid.WatchURL(v.ID))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
}

// ShareSubject is the subject line offered when sharing a video.
func ShareSubject(title string) string {
	return "Watch \"" + title + "\" on YouTube"
}
