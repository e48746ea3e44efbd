package feed_api

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/cardfeed/cmd/web/handlers/common"
	"thirdcoast.systems/cardfeed/cmd/web/templates"
	"thirdcoast.systems/cardfeed/cmd/web/viewer"
)

// HandleSlots binds slots from the client's rendered count up to the current
// item count, stopping at the first content slot that has no video yet, and
// appends the fragments to the feed. The pass ends
// after the last fragment is sent, which is when a pending next page loads.
func HandleSlots(f *Feed, vm *viewer.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		playlistID, err := common.RequireParam(c, "id")
		if err != nil {
			return err
		}

		// ReadSignals MUST happen before NewSSE.
		type Signals struct {
			Rendered int `json:"rendered"`
		}
		signals := &Signals{}
		if err := datastar.ReadSignals(c.Request(), signals); err != nil {
			if n, err := strconv.Atoi(c.QueryParam("rendered")); err == nil {
				signals.Rendered = n
			}
		}
		start := max(signals.Rendered, 0)

		viewerID, err := vm.Ensure(c.Response(), c.Request())
		if err != nil {
			slog.Error("failed to issue viewer cookie", "error", err)
			return common.ErrInternal("viewer session")
		}

		ctx := c.Request().Context()
		session := f.Session(viewerID, playlistID)
		if err := session.EnsureLoaded(ctx, f.firstPage(playlistID)); err != nil {
			slog.Error("failed to load playlist", "playlist_id", playlistID, "error", err)
			return common.ErrInternal("failed to load playlist")
		}

		common.SetSSEHeaders(c)
		sse := datastar.NewSSE(c.Response().Writer, c.Request())

		adapter := session.Adapter
		pass := adapter.Begin()
		defer pass.End(ctx)

		// next is the first position not yet sent. A content slot with no
		// video behind it ends the pass there, so it is bound again once a
		// later page fills it.
		end := adapter.ItemCount()
		next := start
		for pos := start; pos < end; pos++ {
			slot, ok := pass.Bind(ctx, pos)
			if !ok {
				break
			}
			if err := sse.PatchElementTempl(
				templates.SlotView(playlistID, slot),
				datastar.WithSelectorID(templates.SlotsContainerID),
				datastar.WithModeAppend(),
			); err != nil {
				slog.Error("failed to send slot SSE patch", "position", pos, "error", err)
				return nil
			}
			next = pos + 1
		}
		pass.End(ctx)

		rendered, _ := json.Marshal(map[string]int{"rendered": next})
		if err := sse.PatchSignals(rendered); err != nil {
			slog.Error("failed to send rendered signal", "error", err)
			return nil
		}

		more := adapter.ItemCount() > end
		if err := sse.PatchElementTempl(templates.LoadMore(playlistID, more)); err != nil {
			slog.Error("failed to send load-more SSE patch", "error", err)
		}
		return nil
	}
}
