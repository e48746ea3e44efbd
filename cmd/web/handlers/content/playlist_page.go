package content

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/cardfeed/cmd/web/handlers/common"
	"thirdcoast.systems/cardfeed/cmd/web/templates"
	"thirdcoast.systems/cardfeed/cmd/web/viewer"
)

// HandlePlaylistPage renders the feed shell. Slots are streamed in by the
// shell itself from the slots endpoint.
func HandlePlaylistPage(vm *viewer.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		playlistID, err := common.RequireParam(c, "id")
		if err != nil {
			return err
		}
		if _, err := vm.Ensure(c.Response(), c.Request()); err != nil {
			slog.Error("failed to issue viewer cookie", "error", err)
			return common.ErrInternal("viewer session")
		}

		title := c.QueryParam("title")
		if title == "" {
			title = "Playlist " + playlistID
		}
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		return templates.Shell(playlistID, title).Render(c.Request().Context(), c.Response())
	}
}
