package feed_api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/cardfeed/internal/thumbs"
)

// HandleThumbnail serves a prefetched thumbnail. On a cache miss it queues a
// prefetch and redirects to the source, or to the placeholder when the source
// host is not allowed.
func HandleThumbnail(p *thumbs.Prefetcher, placeholder string) echo.HandlerFunc {
	return func(c echo.Context) error {
		src := c.QueryParam("src")
		if src == "" {
			return c.Redirect(http.StatusFound, placeholder)
		}

		if img, ok := p.Cached(src); ok {
			c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")
			return c.Blob(http.StatusOK, img.ContentType, img.Data)
		}

		if !p.Allowed(src) {
			return c.Redirect(http.StatusFound, placeholder)
		}
		p.Load(src, placeholder)
		return c.Redirect(http.StatusFound, src)
	}
}
