package templates

import (
	"strings"

	"github.com/a-h/templ"

	"thirdcoast.systems/cardfeed/pkg/feed"
)

const (
	SlotsContainerID = "feed-slots"
	LoadMoreID       = "feed-load-more"
)

// action builds a datastar action expression with a single-quoted URL.
func action(verb, u string) string {
	return "@" + verb + "('" + strings.ReplaceAll(u, "'", "%27") + "')"
}

// thumbnailAttrs are the card image attributes. feed.js swaps in
// data-placeholder when the thumbnail fails to load.
func thumbnailAttrs(c *feed.Card) templ.Attributes {
	attrs := templ.Attributes{
		"loading": "lazy",
		"alt":     c.Title,
		"src":     ThumbnailURL(c.ThumbnailURL, c.Placeholder),
	}
	if c.Placeholder != "" {
		attrs["data-placeholder"] = c.Placeholder
	}
	return attrs
}
