package feed_api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/cardfeed/cmd/web/handlers/common"
	"thirdcoast.systems/cardfeed/cmd/web/viewer"
	"thirdcoast.systems/cardfeed/internal/events"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// browserNavigator opens the watch URL in a new tab of the requesting browser.
type browserNavigator struct {
	sse *datastar.ServerSentEventGenerator
}

func (n browserNavigator) Open(ctx context.Context, url string) error {
	return n.sse.ExecuteScript("window.open(" + jsString(url) + ", '_blank', 'noopener')")
}

// browserSharer hands the share payload to the page's share helper.
type browserSharer struct {
	sse *datastar.ServerSentEventGenerator
}

func (s browserSharer) Share(ctx context.Context, subject, body string) error {
	return s.sse.ExecuteScript("window.cardfeedShare(" + jsString(subject) + ", " + jsString(body) + ")")
}

// HandleEvent dispatches a Play or Share tap for a card in the viewer's feed.
func HandleEvent(f *Feed, vm *viewer.Manager, pub Publisher) echo.HandlerFunc {
	return func(c echo.Context) error {
		playlistID, err := common.RequireParam(c, "id")
		if err != nil {
			return err
		}
		videoID, err := common.RequireQuery(c, "video")
		if err != nil {
			return err
		}
		action, err := feed.ParseAction(c.QueryParam("action"))
		if err != nil {
			return common.ErrBadRequest("invalid action")
		}

		viewerID, err := vm.ViewerID(c.Request())
		if err != nil {
			return common.ErrNotFound("no feed session")
		}
		session, ok := f.Registry.Lookup(viewerID, playlistID)
		if !ok {
			return common.ErrNotFound("no feed session")
		}
		if _, ok := session.Playlist.Lookup(videoID); !ok {
			return common.ErrNotFound("unknown video")
		}

		ctx := c.Request().Context()
		ev := feed.Event{VideoID: videoID, Action: action}

		common.SetSSEHeaders(c)
		sse := datastar.NewSSE(c.Response().Writer, c.Request())

		d := feed.NewDispatcher(session.Playlist, browserNavigator{sse: sse}, browserSharer{sse: sse})
		if err := d.HandleEvent(ctx, ev); err != nil {
			if errors.Is(err, feed.ErrUnknownVideo) || errors.Is(err, feed.ErrUnknownAction) {
				slog.Warn("event rejected", "playlist_id", playlistID, "video_id", videoID, "action", action, "error", err)
			} else {
				slog.Error("failed to dispatch event", "playlist_id", playlistID, "video_id", videoID, "action", action, "error", err)
			}
			return nil
		}

		if pub != nil {
			rec := events.Record{Event: ev, PlaylistID: playlistID, ViewerID: viewerID}
			if err := pub.Publish(ctx, rec); err != nil {
				slog.Warn("failed to publish event", "subject", events.Subject(action), "error", err)
			}
		}
		return nil
	}
}
